// Package scene holds the host-side collaborators of the renderer: cameras,
// CPU meshes and their loaders, and textures.
package scene

import "github.com/go-gl/mathgl/mgl32"

// Vertex is the interleaved layout shared by every mesh.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
	Color    mgl32.Vec4
}

// VertexStride is the size of a Vertex in bytes.
const VertexStride = (3 + 3 + 2 + 4) * 4

// White is the default vertex colour.
var White = mgl32.Vec4{1, 1, 1, 1}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 { return b.Min.Add(b.Max).Mul(0.5) }

// Size returns the box extents along each axis.
func (b AABB) Size() mgl32.Vec3 { return b.Max.Sub(b.Min) }

// Mesh holds CPU-side vertex and index data. The GL backend uploads it on
// first draw and keeps the handle in GPUData.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   AABB
	Material *Material

	GPUData any
}

// NewMesh builds a mesh and computes its bounds.
func NewMesh(name string, vertices []Vertex, indices []uint32) *Mesh {
	m := &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
		Material: DefaultMaterial(),
	}
	if len(vertices) > 0 {
		m.Bounds = boundsOf(vertices)
	}
	return m
}

// IndexCount returns the number of indices to draw.
func (m *Mesh) IndexCount() int { return len(m.Indices) }

// UnitTransform returns a model matrix that centres the mesh on the origin
// and scales its largest extent to size.
func (m *Mesh) UnitTransform(size float32) mgl32.Mat4 {
	ext := m.Bounds.Size()
	largest := max(ext[0], ext[1], ext[2])
	if largest <= 0 {
		return mgl32.Ident4()
	}
	s := size / largest
	c := m.Bounds.Center()
	return mgl32.Scale3D(s, s, s).Mul4(mgl32.Translate3D(-c[0], -c[1], -c[2]))
}

func boundsOf(vertices []Vertex) AABB {
	b := AABB{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		for i := range 3 {
			b.Min[i] = min(b.Min[i], v.Position[i])
			b.Max[i] = max(b.Max[i], v.Position[i])
		}
	}
	return b
}
