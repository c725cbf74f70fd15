package shading

import "github.com/go-gl/mathgl/mgl32"

// Attenuation is the brightness of a point light seen at distance d. It
// falls off as brightness/(1+d²) and is windowed to reach exactly zero at
// radius, so lights culled by their radius never lose visible energy.
func Attenuation(d, brightness, radius float32) float32 {
	if radius <= 0 || d >= radius {
		return 0
	}
	r := d / radius
	r2 := r * r
	w := 1 - r2*r2
	if w < 0 {
		w = 0
	}
	return brightness / (1 + d*d) * w * w
}

// PointLight evaluates the diffuse contribution of one light at a surface
// point. visibility is the shadow occlusion factor (1 = fully lit).
func PointLight(pos, normal, lightPos, color mgl32.Vec3, brightness, radius, visibility float32) mgl32.Vec3 {
	toLight := lightPos.Sub(pos)
	d := toLight.Len()
	if d == 0 {
		return mgl32.Vec3{}
	}
	ndl := normal.Dot(toLight.Mul(1 / d))
	if ndl <= 0 {
		return mgl32.Vec3{}
	}
	return color.Mul(Attenuation(d, brightness, radius) * ndl * visibility)
}
