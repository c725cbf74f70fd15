package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func checkMesh(t *testing.T, m *Mesh, verts, indices int) {
	t.Helper()
	if len(m.Vertices) != verts || m.IndexCount() != indices {
		t.Errorf("%s: %d vertices / %d indices, want %d / %d", m.Name, len(m.Vertices), m.IndexCount(), verts, indices)
	}
	for _, i := range m.Indices {
		if int(i) >= len(m.Vertices) {
			t.Fatalf("%s: index %d out of range", m.Name, i)
		}
	}
	for i, v := range m.Vertices {
		if l := v.Normal.Len(); math.Abs(float64(l-1)) > 1e-4 {
			t.Fatalf("%s: vertex %d normal length %v", m.Name, i, l)
		}
	}
}

func TestCreateBox(t *testing.T) {
	m := CreateBox(1, 3, 1)
	checkMesh(t, m, 24, 36)
	want := AABB{Min: mgl32.Vec3{-0.5, -1.5, -0.5}, Max: mgl32.Vec3{0.5, 1.5, 0.5}}
	if m.Bounds != want {
		t.Errorf("Bounds = %+v, want %+v", m.Bounds, want)
	}

	// Every triangle winds counter-clockwise seen from outside.
	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]
		n := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
		if n.Dot(a.Normal) <= 0 {
			t.Fatalf("triangle %d winds inwards", i/3)
		}
	}
}

func TestCreateSphere(t *testing.T) {
	m := CreateSphere(2, 16, 8)
	checkMesh(t, m, 17*9, 16*8*6)
	for _, v := range m.Vertices {
		if d := v.Position.Len(); math.Abs(float64(d-2)) > 1e-4 {
			t.Fatalf("vertex at distance %v, want 2", d)
		}
	}
	// Degenerate arguments are raised to the minimum.
	checkMesh(t, CreateSphere(1, 1, 1), 4*3, 3*2*6)
}

func TestCreateTorus(t *testing.T) {
	checkMesh(t, CreateTorus(1, 0.25, 24, 12), 25*13, 24*12*6)
}

func TestCreatePlane(t *testing.T) {
	m := CreatePlane(6000, 6000, 4)
	checkMesh(t, m, 25, 4*4*6)
	if m.Bounds.Min != (mgl32.Vec3{-3000, 0, -3000}) || m.Bounds.Max != (mgl32.Vec3{3000, 0, 3000}) {
		t.Errorf("Bounds = %+v", m.Bounds)
	}
}

func TestUnitTransform(t *testing.T) {
	m := CreateBox(4, 2, 1)
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Add(mgl32.Vec3{10, 0, 0})
	}
	m.Bounds = boundsOf(m.Vertices)

	xf := m.UnitTransform(2)
	lo := mgl32.TransformCoordinate(m.Bounds.Min, xf)
	hi := mgl32.TransformCoordinate(m.Bounds.Max, xf)
	if !near(lo, mgl32.Vec3{-1, -0.5, -0.25}) || !near(hi, mgl32.Vec3{1, 0.5, 0.25}) {
		t.Errorf("transformed bounds = %v .. %v", lo, hi)
	}
}
