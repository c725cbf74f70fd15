package opengl

import (
	"math"
	"testing"

	"deferred-engine/renderer"
)

func TestPresentModeFollowsView(t *testing.T) {
	b := renderer.Buffers{
		GBuffer:   renderer.GBuffer{Albedo: 1, Normal: 2, Position: 3, Attribute: 4},
		RawAO:     5,
		BlurredAO: 6,
		Light:     7,
		Shadow:    8,
	}
	want := map[renderer.RenderMode]int32{
		renderer.ModeFinal:       presentComposite,
		renderer.ModeAlbedo:      presentRGB,
		renderer.ModeNormal:      presentRGB,
		renderer.ModeDepth:       presentA,
		renderer.ModePosition:    presentRGB,
		renderer.ModeAttribute:   presentRGB,
		renderer.ModeSSAO:        presentR,
		renderer.ModeSSAOBlurred: presentR,
		renderer.ModeLight:       presentRGB,
		renderer.ModeShadow:      presentR,
	}
	for mode, w := range want {
		if got := presentMode(renderer.ViewFor(mode, b)); got != w {
			t.Errorf("%v: got present mode %d, want %d", mode, got, w)
		}
	}
}

func TestLightVolumeEnclosesSphere(t *testing.T) {
	c := math.Cos(math.Pi / volumeSegments)
	inner := float64(volumeScale) * c * c
	if inner < 1-1e-6 {
		t.Errorf("volume facets reach %v of the light radius, want >= 1", inner)
	}
}
