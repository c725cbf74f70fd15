package renderer

import "github.com/go-gl/mathgl/mgl32"

// Backend allocates the passes of the pipeline. All allocation happens here;
// passes only re-render into what they were given.
type Backend interface {
	NewGeometryPass(width, height int) (GeometryPass, error)
	NewShadowMap(size int) (ShadowMap, error)
	NewOcclusionPass(width, height int, p SSAOParams) (OcclusionPass, error)
	NewLightingPass(width, height int, p LightingParams) (LightingPass, error)
	NewCompositor(width, height int) (Compositor, error)
}

// GeometryPass fills the G-buffer from the scene.
type GeometryPass interface {
	Render(view FrameView, casters, nonCasters Drawable)
	Targets() GBuffer
	Destroy()
}

// ShadowMap is a depth cube map captured from a point light.
type ShadowMap interface {
	// Update re-renders all six faces from lightPos, with the far plane
	// derived from radius, drawing only casters.
	Update(lightPos mgl32.Vec3, radius float32, casters Drawable)
	Texture() Texture
	Destroy()
}

// OcclusionPass computes screen-space ambient occlusion from the G-buffer.
type OcclusionPass interface {
	Compute(g GBuffer, view FrameView)
	Blur(g GBuffer)
	// Fill sets both occlusion targets to a constant; used when SSAO is off.
	Fill(value float32)
	Raw() Texture
	Blurred() Texture
	Destroy()
}

// LightingPass accumulates light contributions into an HDR target.
type LightingPass interface {
	Accumulate(lights []LightDraw, g GBuffer, view FrameView)
	Light() Texture
	// Shadow holds, per pixel, the summed shadowing of the caster lights.
	Shadow() Texture
	Destroy()
}

// Compositor writes the selected view to the default framebuffer.
type Compositor interface {
	Present(v View, in CompositeInputs)
	Destroy()
}

// SSAOParams configures the occlusion pass.
type SSAOParams struct {
	KernelSize    int
	Radius        float32
	Bias          float32
	BlurThreshold float32
	// Scale is the resolution of the occlusion targets relative to the
	// output, in (0, 1].
	Scale float32
}

// LightingParams configures the accumulation pass.
type LightingParams struct {
	Ambient    mgl32.Vec3
	ShadowBias float32
}
