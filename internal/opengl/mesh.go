package opengl

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"deferred-engine/scene"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

// Meshes uploads scene meshes on first draw and keeps them until Destroy.
type Meshes struct {
	gpu map[*scene.Mesh]*GPUMesh
}

func NewMeshes() *Meshes {
	return &Meshes{gpu: make(map[*scene.Mesh]*GPUMesh)}
}

// Draw issues mesh with whatever program is bound. Vertex attributes are
// bound at locations 0 position, 1 normal, 2 uv, 3 colour.
func (ms *Meshes) Draw(mesh *scene.Mesh) {
	gpu := ms.upload(mesh)
	if gpu == nil {
		return
	}
	gl.BindVertexArray(gpu.VAO)
	gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
}

func (ms *Meshes) upload(mesh *scene.Mesh) *GPUMesh {
	if gpu, ok := ms.gpu[mesh]; ok {
		return gpu
	}
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return nil
	}

	gpu := &GPUMesh{IndexCount: int32(len(mesh.Indices))}
	gl.GenVertexArrays(1, &gpu.VAO)
	gl.BindVertexArray(gpu.VAO)

	gl.GenBuffers(1, &gpu.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*scene.VertexStride, gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)

	var v scene.Vertex
	attribs := []struct {
		size   int32
		offset uintptr
	}{
		{3, unsafe.Offsetof(v.Position)},
		{3, unsafe.Offsetof(v.Normal)},
		{2, unsafe.Offsetof(v.UV)},
		{4, unsafe.Offsetof(v.Color)},
	}
	for i, a := range attribs {
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointerWithOffset(uint32(i), a.size, gl.FLOAT, false, scene.VertexStride, a.offset)
	}

	gl.GenBuffers(1, &gpu.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	ms.gpu[mesh] = gpu
	mesh.GPUData = gpu
	return gpu
}

// Release frees one mesh's buffers.
func (ms *Meshes) Release(mesh *scene.Mesh) {
	gpu, ok := ms.gpu[mesh]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &gpu.VAO)
	gl.DeleteBuffers(1, &gpu.VBO)
	gl.DeleteBuffers(1, &gpu.EBO)
	delete(ms.gpu, mesh)
	mesh.GPUData = nil
}

func (ms *Meshes) Destroy() {
	for m := range ms.gpu {
		ms.Release(m)
	}
}
