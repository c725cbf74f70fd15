package shading

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCompositeIgnoresOcclusionWhenDisabled(t *testing.T) {
	albedo := mgl32.Vec3{0.8, 0.6, 0.4}
	accum := mgl32.Vec3{1.5, 0.9, 2.0}
	want := Composite(albedo, accum, 1, true, DefaultExposure)
	for _, ao := range []float32{0, 0.25, 0.5, 1, 7} {
		got := Composite(albedo, accum, ao, false, DefaultExposure)
		if got != want {
			t.Errorf("ao=%v disabled: got %v, want %v", ao, got, want)
		}
	}
}

func TestCompositeAppliesOcclusion(t *testing.T) {
	albedo := mgl32.Vec3{1, 1, 1}
	accum := mgl32.Vec3{1, 1, 1}
	open := Composite(albedo, accum, 1, true, DefaultExposure)
	closed := Composite(albedo, accum, 0.2, true, DefaultExposure)
	for i := 0; i < 3; i++ {
		if closed[i] >= open[i] {
			t.Errorf("channel %d: occluded %v not darker than open %v", i, closed[i], open[i])
		}
	}
}

func TestToneMapRange(t *testing.T) {
	for _, v := range []float32{-1, 0, 0.1, 1, 10, 1e6} {
		out := ToneMap(mgl32.Vec3{v, v, v}, DefaultExposure)
		for i := 0; i < 3; i++ {
			if out[i] < 0 || out[i] > 1 {
				t.Errorf("ToneMap(%v)[%d] = %v outside [0,1]", v, i, out[i])
			}
		}
	}
	if out := ToneMap(mgl32.Vec3{}, DefaultExposure); out != (mgl32.Vec3{}) {
		t.Errorf("ToneMap(black) = %v, want black", out)
	}
}

func TestLinearDepth(t *testing.T) {
	tests := []struct{ z, far, want float32 }{
		{0, 100, 0},
		{-50, 100, 0.5},
		{-100, 100, 1},
		{-500, 100, 1},
		{5, 100, 0},
		{-1, 0, BackgroundDepth},
	}
	for _, tt := range tests {
		if got := LinearDepth(tt.z, tt.far); got != tt.want {
			t.Errorf("LinearDepth(%v, %v): got %v, want %v", tt.z, tt.far, got, tt.want)
		}
	}
}
