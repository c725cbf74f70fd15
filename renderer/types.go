package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/shading"
)

// Texture is a backend texture name. Zero means "no texture".
type Texture uint32

// Shader is the program a pass has bound while a Drawable issues geometry.
// Passes that do not shade (the shadow capture) ignore colour and texture.
type Shader interface {
	SetModel(model mgl32.Mat4)
	SetColor(color mgl32.Vec3)
	// SetTexture binds an albedo texture; zero returns to flat colour.
	SetTexture(tex Texture)
}

// Drawable issues scene geometry. Implementations set their own per-object
// state through sh, and never bind render targets or clear. A nil sh means
// no pass program is bound and the drawable should use its default material.
type Drawable interface {
	Draw(sh Shader)
}

// DrawFunc adapts an ordinary function to Drawable.
type DrawFunc func(sh Shader)

// Draw calls f(sh).
func (f DrawFunc) Draw(sh Shader) { f(sh) }

// Camera supplies the view each frame.
type Camera interface {
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
	ClipPlanes() (near, far float32)
	Eye() mgl32.Vec3
}

// FrameView is the camera state captured once at the start of a frame and
// shared by every pass.
type FrameView struct {
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	ViewProjection mgl32.Mat4
	InvProjection  mgl32.Mat4
	Eye            mgl32.Vec3
	Near, Far      float32
}

// NewFrameView snapshots c.
func NewFrameView(c Camera) FrameView {
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix()
	near, far := c.ClipPlanes()
	return FrameView{
		View:           view,
		Projection:     proj,
		ViewProjection: proj.Mul4(view),
		InvProjection:  proj.Inv(),
		Eye:            c.Eye(),
		Near:           near,
		Far:            far,
	}
}

// GBuffer names the geometry-pass attachments.
//
//	Albedo    RGB surface colour
//	Normal    RGB view-space normal, A linear depth
//	Position  RGB view-space position, A coverage
//	Attribute R textured flag, G 1 for geometry drawn by the casters drawable
type GBuffer struct {
	Albedo    Texture
	Normal    Texture
	Position  Texture
	Attribute Texture
	Width     int
	Height    int
}

// LightDraw is one light as handed to the accumulation pass.
type LightDraw struct {
	Position   mgl32.Vec3
	Color      mgl32.Vec3
	Brightness float32
	Radius     float32
	// Shadow is the light's cube map, or nil when the light is not a caster
	// or shadows are disabled for the frame.
	Shadow ShadowMap
}

// ShadowFar is the far plane the light's cube map was captured with.
func (l LightDraw) ShadowFar() float32 { return shading.ShadowFar(l.Radius) }

// CompositeInputs are the buffers combined in the final view.
type CompositeInputs struct {
	Albedo    Texture
	Light     Texture
	AO        Texture
	AOEnabled bool
	Exposure  float32
}
