package renderer

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/shading"
)

const (
	DefaultWidth         = 1024
	DefaultHeight        = 768
	DefaultShadowMapSize = 1024

	// MaxTargetSize bounds every render-target dimension.
	MaxTargetSize = 8192
)

// Config holds the setup-time parameters of a Renderer. Resolutions are
// fixed for the renderer's lifetime.
type Config struct {
	Width         int
	Height        int
	ShadowMapSize int

	SSAO       SSAOParams
	ShadowBias float32
	Ambient    mgl32.Vec3
	Exposure   float32
}

// DefaultConfig returns the configuration used by the demo.
func DefaultConfig() Config {
	return Config{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		ShadowMapSize: DefaultShadowMapSize,
		SSAO: SSAOParams{
			KernelSize:    shading.DefaultKernelSize,
			Radius:        shading.DefaultSSAORadius,
			Bias:          shading.DefaultSSAOBias,
			BlurThreshold: shading.DefaultBlurDepthThreshold,
			Scale:         1,
		},
		ShadowBias: shading.DefaultShadowBias,
		Ambient:    mgl32.Vec3{0.05, 0.05, 0.05},
		Exposure:   shading.DefaultExposure,
	}
}

// Normalize returns a copy of c with out-of-range values clamped to usable
// ones. Every correction is logged at warn level.
func (c Config) Normalize() Config {
	d := DefaultConfig()
	warn := func(field string, got, used any) {
		Logger().Warn("renderer: config value clamped", slog.String("field", field), slog.Any("got", got), slog.Any("used", used))
	}

	clampSize := func(field string, v *int, def int) {
		switch {
		case *v <= 0:
			warn(field, *v, def)
			*v = def
		case *v > MaxTargetSize:
			warn(field, *v, MaxTargetSize)
			*v = MaxTargetSize
		}
	}
	clampSize("Width", &c.Width, d.Width)
	clampSize("Height", &c.Height, d.Height)
	clampSize("ShadowMapSize", &c.ShadowMapSize, d.ShadowMapSize)

	if k := shading.ClampKernelSize(c.SSAO.KernelSize); k != c.SSAO.KernelSize {
		warn("SSAO.KernelSize", c.SSAO.KernelSize, k)
		c.SSAO.KernelSize = k
	}
	if c.SSAO.Radius <= 0 {
		warn("SSAO.Radius", c.SSAO.Radius, d.SSAO.Radius)
		c.SSAO.Radius = d.SSAO.Radius
	}
	if c.SSAO.Bias < 0 {
		warn("SSAO.Bias", c.SSAO.Bias, d.SSAO.Bias)
		c.SSAO.Bias = d.SSAO.Bias
	}
	if c.SSAO.BlurThreshold <= 0 {
		warn("SSAO.BlurThreshold", c.SSAO.BlurThreshold, d.SSAO.BlurThreshold)
		c.SSAO.BlurThreshold = d.SSAO.BlurThreshold
	}
	if c.SSAO.Scale <= 0 || c.SSAO.Scale > 1 {
		warn("SSAO.Scale", c.SSAO.Scale, float32(1))
		c.SSAO.Scale = 1
	}
	if c.ShadowBias < 0 || c.ShadowBias >= 1 {
		warn("ShadowBias", c.ShadowBias, d.ShadowBias)
		c.ShadowBias = d.ShadowBias
	}
	if c.Exposure <= 0 {
		warn("Exposure", c.Exposure, d.Exposure)
		c.Exposure = d.Exposure
	}
	for i := range c.Ambient {
		if c.Ambient[i] < 0 {
			warn("Ambient", c.Ambient, mgl32.Vec3{})
			c.Ambient = mgl32.Vec3{max(c.Ambient[0], 0), max(c.Ambient[1], 0), max(c.Ambient[2], 0)}
			break
		}
	}
	return c
}

// SSAOSize returns the occlusion target resolution.
func (c Config) SSAOSize() (width, height int) {
	width = max(int(float32(c.Width)*c.SSAO.Scale), 1)
	height = max(int(float32(c.Height)*c.SSAO.Scale), 1)
	return width, height
}
