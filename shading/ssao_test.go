package shading

import (
	"math"
	"testing"
)

func TestKernelInHemisphere(t *testing.T) {
	for _, n := range []int{1, 16, 32, 64} {
		k := Kernel(n)
		if len(k) != n {
			t.Fatalf("Kernel(%d): got %d samples", n, len(k))
		}
		for i, s := range k {
			if s.Z() < 0 {
				t.Errorf("Kernel(%d)[%d] = %v below the hemisphere", n, i, s)
			}
			if s.Len() > 1+1e-5 {
				t.Errorf("Kernel(%d)[%d] = %v outside the unit sphere", n, i, s)
			}
		}
	}
}

func TestKernelDeterministicAndClamped(t *testing.T) {
	a, b := Kernel(32), Kernel(32)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Kernel not deterministic at %d: %v vs %v", i, a[i], b[i])
		}
	}
	if got := len(Kernel(0)); got != 1 {
		t.Errorf("Kernel(0): got %d samples, want 1", got)
	}
	if got := len(Kernel(500)); got != MaxKernelSize {
		t.Errorf("Kernel(500): got %d samples, want %d", got, MaxKernelSize)
	}
}

func TestNoiseTile(t *testing.T) {
	n := Noise()
	if len(n) != NoiseSize*NoiseSize {
		t.Fatalf("Noise: got %d vectors", len(n))
	}
	for i, v := range n {
		if v.Z() != 0 {
			t.Errorf("Noise[%d] = %v has non-zero Z", i, v)
		}
	}
}

func TestOcclusion(t *testing.T) {
	tests := []struct {
		occluded float32
		samples  int
		want     float32
	}{
		{0, 32, 1},
		{32, 32, 0},
		{8, 32, 0.75},
		{3, 0, 1},
		{40, 32, 0},
	}
	for _, tt := range tests {
		if got := Occlusion(tt.occluded, tt.samples); got != tt.want {
			t.Errorf("Occlusion(%v, %d): got %v, want %v", tt.occluded, tt.samples, got, tt.want)
		}
	}
}

func TestRangeCheck(t *testing.T) {
	if got := RangeCheck(0.5, 0.1); got != 1 {
		t.Errorf("close geometry: got %v, want 1", got)
	}
	if got := RangeCheck(0.5, 500); got > 1e-5 {
		t.Errorf("distant geometry: got %v, want ~0", got)
	}
}

func TestBlurKeepsDepthEdges(t *testing.T) {
	// Left half is a near surface fully occluded, right half a far surface
	// fully open. The blur must not bleed across the depth step.
	const w, h = 8, 4
	ao := make([]float32, w*h)
	depth := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if x < w/2 {
				ao[i], depth[i] = 0, 0.1
			} else {
				ao[i], depth[i] = 1, 0.9
			}
		}
	}
	out := BlurOcclusion(ao, depth, w, h, DefaultBlurDepthThreshold)
	for i := range out {
		if out[i] != ao[i] {
			t.Errorf("pixel %d: got %v, want %v", i, out[i], ao[i])
		}
	}
}

func TestBlurSmoothsNoise(t *testing.T) {
	const w, h = 6, 6
	ao := make([]float32, w*h)
	depth := make([]float32, w*h)
	for i := range ao {
		if i%2 == 0 {
			ao[i] = 1
		}
		depth[i] = 0.5
	}
	out := BlurOcclusion(ao, depth, w, h, DefaultBlurDepthThreshold)
	centre := out[3*w+3]
	if math.Abs(float64(centre-0.5)) > 0.26 {
		t.Errorf("blurred checkerboard centre: got %v, want near 0.5", centre)
	}
}

func TestBlurKeepsEdgesAtLongRange(t *testing.T) {
	// A sphere edge 30 units away in front of ground 60 units away, with the
	// far plane of the demo camera. Both depths are tiny fractions of far.
	const w, h, far = 8, 1, 10000
	near, back := LinearDepth(-30, far), LinearDepth(-60, far)
	ao := make([]float32, w*h)
	depth := make([]float32, w*h)
	for x := 0; x < w; x++ {
		if x < w/2 {
			ao[x], depth[x] = 1, near
		} else {
			ao[x], depth[x] = 0, back
		}
	}
	out := BlurOcclusion(ao, depth, w, h, DefaultBlurDepthThreshold)
	for i := range out {
		if out[i] != ao[i] {
			t.Errorf("pixel %d: got %v, want %v", i, out[i], ao[i])
		}
	}
}

func TestBlurJoinsGentleSlope(t *testing.T) {
	// Ground receding from 100 to 101 units: one surface, so the blur mixes.
	const w, h, far = 8, 1, 10000
	ao := make([]float32, w*h)
	depth := make([]float32, w*h)
	for x := 0; x < w; x++ {
		depth[x] = LinearDepth(-(100 + float32(x)/8), far)
		if x >= w/2 {
			ao[x] = 1
		}
	}
	out := BlurOcclusion(ao, depth, w, h, DefaultBlurDepthThreshold)
	if got := out[w/2-1]; got <= 0 || got >= 1 {
		t.Errorf("pixel %d: got %v, want a blend of 0 and 1", w/2-1, got)
	}
}
