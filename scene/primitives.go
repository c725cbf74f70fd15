package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CreateSphere generates a UV sphere centred on the origin.
func CreateSphere(radius float32, segments, rings int) *Mesh {
	segments = max(segments, 3)
	rings = max(rings, 2)

	vertices := make([]Vertex, 0, (rings+1)*(segments+1))
	indices := make([]uint32, 0, rings*segments*6)

	for ring := 0; ring <= rings; ring++ {
		phi := float64(ring) * math.Pi / float64(rings)
		sinPhi, cosPhi := math.Sincos(phi)
		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) * 2 * math.Pi / float64(segments)
			sinTheta, cosTheta := math.Sincos(theta)
			n := mgl32.Vec3{float32(sinPhi * cosTheta), float32(cosPhi), float32(sinPhi * sinTheta)}
			vertices = append(vertices, Vertex{
				Position: n.Mul(radius),
				Normal:   n,
				UV:       mgl32.Vec2{float32(seg) / float32(segments), float32(ring) / float32(rings)},
				Color:    White,
			})
		}
	}

	stride := uint32(segments + 1)
	for ring := range rings {
		for seg := range segments {
			a := uint32(ring)*stride + uint32(seg)
			b := a + stride
			indices = append(indices, a, a+1, b, a+1, b+1, b)
		}
	}
	return NewMesh("Sphere", vertices, indices)
}

// boxFaces lists, per face, the outward normal and the two in-plane axes
// whose cross product is the normal.
var boxFaces = [6]struct{ n, u, v mgl32.Vec3 }{
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
}

// CreateBox generates a box with the given full extents, centred on the
// origin, with four vertices per face so normals stay flat.
func CreateBox(width, height, depth float32) *Mesh {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}
	scale := func(v mgl32.Vec3) mgl32.Vec3 {
		return mgl32.Vec3{v[0] * half[0], v[1] * half[1], v[2] * half[2]}
	}

	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	corners := [4]mgl32.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range boxFaces {
		base := uint32(len(vertices))
		for _, c := range corners {
			p := f.n.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1]))
			vertices = append(vertices, Vertex{
				Position: scale(p),
				Normal:   f.n,
				UV:       mgl32.Vec2{(c[0] + 1) / 2, (c[1] + 1) / 2},
				Color:    White,
			})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}
	return NewMesh("Box", vertices, indices)
}

// CreateCube generates a cube with edge length size.
func CreateCube(size float32) *Mesh {
	m := CreateBox(size, size, size)
	m.Name = "Cube"
	return m
}

// CreateTorus generates a torus lying in the XZ plane.
func CreateTorus(majorRadius, minorRadius float32, majorSegments, minorSegments int) *Mesh {
	majorSegments = max(majorSegments, 3)
	minorSegments = max(minorSegments, 3)

	vertices := make([]Vertex, 0, (majorSegments+1)*(minorSegments+1))
	indices := make([]uint32, 0, majorSegments*minorSegments*6)

	for i := 0; i <= majorSegments; i++ {
		sinT, cosT := math.Sincos(float64(i) * 2 * math.Pi / float64(majorSegments))
		for j := 0; j <= minorSegments; j++ {
			sinP, cosP := math.Sincos(float64(j) * 2 * math.Pi / float64(minorSegments))
			n := mgl32.Vec3{float32(cosP * cosT), float32(sinP), float32(cosP * sinT)}
			ring := majorRadius + minorRadius*float32(cosP)
			vertices = append(vertices, Vertex{
				Position: mgl32.Vec3{ring * float32(cosT), minorRadius * float32(sinP), ring * float32(sinT)},
				Normal:   n,
				UV:       mgl32.Vec2{float32(i) / float32(majorSegments), float32(j) / float32(minorSegments)},
				Color:    White,
			})
		}
	}

	stride := uint32(minorSegments + 1)
	for i := range majorSegments {
		for j := range minorSegments {
			a := uint32(i)*stride + uint32(j)
			b := a + stride
			indices = append(indices, a, a+1, b, a+1, b+1, b)
		}
	}
	return NewMesh("Torus", vertices, indices)
}

// CreatePlane generates a +Y facing plane in XZ, subdivided into
// subdivisions² quads so per-vertex attributes interpolate over large
// extents.
func CreatePlane(width, depth float32, subdivisions int) *Mesh {
	subdivisions = max(subdivisions, 1)

	vertices := make([]Vertex, 0, (subdivisions+1)*(subdivisions+1))
	indices := make([]uint32, 0, subdivisions*subdivisions*6)

	for z := 0; z <= subdivisions; z++ {
		for x := 0; x <= subdivisions; x++ {
			u := float32(x) / float32(subdivisions)
			v := float32(z) / float32(subdivisions)
			vertices = append(vertices, Vertex{
				Position: mgl32.Vec3{(u - 0.5) * width, 0, (v - 0.5) * depth},
				Normal:   mgl32.Vec3{0, 1, 0},
				UV:       mgl32.Vec2{u, v},
				Color:    White,
			})
		}
	}

	stride := uint32(subdivisions + 1)
	for z := range subdivisions {
		for x := range subdivisions {
			tl := uint32(z)*stride + uint32(x)
			bl := tl + stride
			indices = append(indices, tl, bl, tl+1, tl+1, bl, bl+1)
		}
	}
	return NewMesh("Plane", vertices, indices)
}
