package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/shading"
)

func TestDefaultConfigIsNormal(t *testing.T) {
	d := DefaultConfig()
	if n := d.Normalize(); n != d {
		t.Errorf("Normalize changed the default config:\n got %+v\nwant %+v", n, d)
	}
	if d.SSAO.KernelSize != 32 || d.ShadowBias != shading.DefaultShadowBias {
		t.Errorf("defaults = %+v", d)
	}
}

func TestConfigNormalize(t *testing.T) {
	c := Config{
		Width:         -5,
		Height:        MaxTargetSize * 2,
		ShadowMapSize: 0,
		SSAO: SSAOParams{
			KernelSize:    500,
			Radius:        -1,
			Bias:          -1,
			BlurThreshold: 0,
			Scale:         3,
		},
		ShadowBias: -0.1,
		Ambient:    mgl32.Vec3{-1, 0.2, 0},
		Exposure:   0,
	}
	n := c.Normalize()
	d := DefaultConfig()

	if n.Width != DefaultWidth || n.Height != MaxTargetSize || n.ShadowMapSize != DefaultShadowMapSize {
		t.Errorf("sizes = %dx%d shadow %d", n.Width, n.Height, n.ShadowMapSize)
	}
	if n.SSAO.KernelSize != shading.MaxKernelSize {
		t.Errorf("KernelSize = %d, want %d", n.SSAO.KernelSize, shading.MaxKernelSize)
	}
	if n.SSAO.Radius != d.SSAO.Radius || n.SSAO.Bias != d.SSAO.Bias || n.SSAO.BlurThreshold != d.SSAO.BlurThreshold {
		t.Errorf("SSAO = %+v", n.SSAO)
	}
	if n.SSAO.Scale != 1 {
		t.Errorf("Scale = %v, want 1", n.SSAO.Scale)
	}
	if n.ShadowBias != d.ShadowBias || n.Exposure != d.Exposure {
		t.Errorf("ShadowBias=%v Exposure=%v", n.ShadowBias, n.Exposure)
	}
	if want := (mgl32.Vec3{0, 0.2, 0}); n.Ambient != want {
		t.Errorf("Ambient = %v, want %v", n.Ambient, want)
	}
}

func TestSSAOSize(t *testing.T) {
	c := DefaultConfig()
	c.SSAO.Scale = 0.5
	if w, h := c.SSAOSize(); w != 512 || h != 384 {
		t.Errorf("SSAOSize = %dx%d, want 512x384", w, h)
	}
	c.Width, c.Height, c.SSAO.Scale = 1, 1, 0.1
	if w, h := c.SSAOSize(); w != 1 || h != 1 {
		t.Errorf("SSAOSize = %dx%d, want 1x1", w, h)
	}
}

func TestConfigNormalizeShadowBiasFraction(t *testing.T) {
	c := DefaultConfig()
	c.ShadowBias = 1.5
	if n := c.Normalize(); n.ShadowBias != shading.DefaultShadowBias {
		t.Errorf("ShadowBias = %v, want %v", n.ShadowBias, shading.DefaultShadowBias)
	}
}
