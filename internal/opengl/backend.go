// Package opengl implements the deferred pipeline's passes on an OpenGL 4.1
// core context. Every call must be made from the goroutine that owns the
// context.
package opengl

import (
	"fmt"
	"log/slog"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"deferred-engine/renderer"
	"deferred-engine/scene"
)

// Backend allocates GL passes for a renderer.Renderer and uploads the
// meshes drawables issue.
type Backend struct {
	meshes  *Meshes
	quadVAO uint32
	shadow  *shadowProgram
	overlay *Overlay
}

var _ renderer.Backend = (*Backend)(nil)

// NewBackend loads GL entry points for the current context.
func NewBackend() (*Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	renderer.Logger().Info("opengl: context ready",
		slog.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		slog.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	b := &Backend{meshes: NewMeshes()}
	// Fullscreen passes take their vertices from gl_VertexID.
	gl.GenVertexArrays(1, &b.quadVAO)
	return b, nil
}

// DrawMesh issues mesh with the program the current pass has bound.
func (b *Backend) DrawMesh(mesh *scene.Mesh) { b.meshes.Draw(mesh) }

// ReleaseMesh frees the GPU copy of mesh.
func (b *Backend) ReleaseMesh(mesh *scene.Mesh) { b.meshes.Release(mesh) }

func (b *Backend) NewGeometryPass(width, height int) (renderer.GeometryPass, error) {
	p, err := newGeometryPass(width, height)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (b *Backend) NewShadowMap(size int) (renderer.ShadowMap, error) {
	if b.shadow == nil {
		prog, err := newShadowProgram()
		if err != nil {
			return nil, err
		}
		b.shadow = prog
	}
	s, err := newCubeShadow(size, b.shadow)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (b *Backend) NewOcclusionPass(width, height int, p renderer.SSAOParams) (renderer.OcclusionPass, error) {
	o, err := newOcclusionPass(width, height, p, b.quadVAO)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (b *Backend) NewLightingPass(width, height int, p renderer.LightingParams) (renderer.LightingPass, error) {
	l, err := newLightingPass(width, height, p, b.meshes)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (b *Backend) NewCompositor(width, height int) (renderer.Compositor, error) {
	c, err := newCompositor(width, height, b.quadVAO)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Overlay returns the backend's HUD overlay, creating it on first use.
func (b *Backend) Overlay() (*Overlay, error) {
	if b.overlay == nil {
		o, err := newOverlay(b.quadVAO)
		if err != nil {
			return nil, err
		}
		b.overlay = o
	}
	return b.overlay, nil
}

// Destroy frees everything the backend owns. Passes handed to a renderer
// are destroyed by the renderer.
func (b *Backend) Destroy() {
	if b.overlay != nil {
		b.overlay.Destroy()
		b.overlay = nil
	}
	if b.shadow != nil {
		b.shadow.Destroy()
		b.shadow = nil
	}
	b.meshes.Destroy()
	if b.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &b.quadVAO)
		b.quadVAO = 0
	}
}
