package renderer

import "github.com/go-gl/mathgl/mgl32"

// plane is a half-space n·p + d >= 0; the normal points into the frustum.
type plane struct {
	n mgl32.Vec3
	d float32
}

func (p plane) distance(pt mgl32.Vec3) float32 {
	return p.n.Dot(pt) + p.d
}

// frustum holds the six clip planes of a view volume: left, right, bottom,
// top, near, far.
type frustum [6]plane

// frustumFromVP extracts normalized clip planes (Gribb/Hartmann) from a
// column-major view-projection matrix.
func frustumFromVP(vp mgl32.Mat4) frustum {
	r0, r1, r2, r3 := vp.Row(0), vp.Row(1), vp.Row(2), vp.Row(3)
	return frustum{
		normalizePlane(r3.Add(r0)),
		normalizePlane(r3.Sub(r0)),
		normalizePlane(r3.Add(r1)),
		normalizePlane(r3.Sub(r1)),
		normalizePlane(r3.Add(r2)),
		normalizePlane(r3.Sub(r2)),
	}
}

func normalizePlane(v mgl32.Vec4) plane {
	n := v.Vec3()
	l := n.Len()
	if l == 0 {
		return plane{}
	}
	return plane{n: n.Mul(1 / l), d: v.W() / l}
}

// intersectsSphere is false only when the sphere lies entirely outside one
// of the planes.
func (f *frustum) intersectsSphere(center mgl32.Vec3, radius float32) bool {
	for _, p := range f {
		if p.distance(center) < -radius {
			return false
		}
	}
	return true
}
