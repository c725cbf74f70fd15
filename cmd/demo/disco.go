package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/light"
)

const (
	discoSpin       = 0.00001 // radians per frame, times the light index
	discoPulse      = 2000
	discoPulseRate  = 2  // radians per second
	discoOrbitSpeed = 20 // degrees per second
	discoOrbit      = 500
	discoHeight     = 50
	discoRadius     = 50
)

// animateDisco spins every non-caster about the Y axis, odd lights one way
// and even lights the other, and pulses its brightness with time. Casters
// are left alone.
func animateDisco(reg *light.Registry, seconds float64) {
	for h, l := range reg.All() {
		if l.ShadowCaster() {
			continue
		}
		i := float64(h)
		angle := discoSpin * i
		if h%2 == 1 {
			angle = -angle
		}
		_ = reg.SetPosition(h, rotateY(l.Position, angle))

		s := math.Sin(discoPulseRate*seconds + i)
		_ = reg.SetBrightness(h, light.DefaultBrightness+float32(discoPulse*s*s))
	}
}

// rotateY turns p about the world Y axis by angle radians.
func rotateY(p mgl32.Vec3, angle float64) mgl32.Vec3 {
	sin, cos := math.Sincos(angle)
	s, c := float32(sin), float32(cos)
	return mgl32.Vec3{p[2]*s + p[0]*c, p[1], p[2]*c - p[0]*s}
}

// discoSphereModel places the orbiting textured sphere.
func discoSphereModel(seconds float64) mgl32.Mat4 {
	angle := mgl32.DegToRad(float32(discoOrbitSpeed * seconds))
	return mgl32.HomogRotate3DY(angle).Mul4(mgl32.Translate3D(discoOrbit, discoHeight, 0))
}
