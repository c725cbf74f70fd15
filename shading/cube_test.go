package shading

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCubeFaceViewsLookAlongAxis(t *testing.T) {
	eye := mgl32.Vec3{-2, 4, 6}
	vps := CubeViewProjections(eye, ShadowNear, 50)
	for f := 0; f < CubeFaceCount; f++ {
		face := CubeFace(f)
		p := eye.Add(face.Axis().Mul(10))
		clip := vps[f].Mul4x1(p.Vec4(1))
		ndc := clip.Vec3().Mul(1 / clip.W())
		if math.Abs(float64(ndc.X())) > 1e-4 || math.Abs(float64(ndc.Y())) > 1e-4 {
			t.Errorf("face %d: axis point projects to %v, want screen centre", f, ndc)
		}
		if ndc.Z() < -1 || ndc.Z() > 1 {
			t.Errorf("face %d: axis point depth %v outside clip range", f, ndc.Z())
		}
	}
}

func TestMajorAxisFace(t *testing.T) {
	tests := []struct {
		dir  mgl32.Vec3
		want CubeFace
	}{
		{mgl32.Vec3{3, 1, -2}, FacePosX},
		{mgl32.Vec3{-3, 1, -2}, FaceNegX},
		{mgl32.Vec3{0.1, 5, 0}, FacePosY},
		{mgl32.Vec3{0.1, -5, 0}, FaceNegY},
		{mgl32.Vec3{1, 1, 2}, FacePosZ},
		{mgl32.Vec3{1, 1, -2}, FaceNegZ},
	}
	for _, tt := range tests {
		if got := MajorAxisFace(tt.dir); got != tt.want {
			t.Errorf("MajorAxisFace(%v): got %d, want %d", tt.dir, got, tt.want)
		}
	}
}

// CubeDepth must agree with what the capture's own projection writes.
func TestCubeDepthMatchesCapture(t *testing.T) {
	eye := mgl32.Vec3{1, 2, 3}
	near, far := ShadowNear, float32(40)
	vps := CubeViewProjections(eye, near, far)

	for _, offset := range []mgl32.Vec3{
		{5, 1, -2},
		{-0.5, 7, 3},
		{2, -2, -9},
		{0.3, 0.2, 12},
		{-20, 4, 4},
	} {
		face := MajorAxisFace(offset)
		clip := vps[face].Mul4x1(eye.Add(offset).Vec4(1))
		want := clip.Z()/clip.W()*0.5 + 0.5
		got := CubeDepth(offset, near, far)
		if math.Abs(float64(got-want)) > 1e-5 {
			t.Errorf("CubeDepth(%v): got %v, want %v (face %d)", offset, got, want, face)
		}
	}
}

func TestShadowVisibility(t *testing.T) {
	near, far := ShadowNear, float32(30)
	occluder := CubeDepth(mgl32.Vec3{0, -3, 0}, near, far)
	behind := CubeDepth(mgl32.Vec3{0, -6, 0}, near, far)

	if v := ShadowVisibility(occluder, behind, near, far, DefaultShadowBias); v != 0 {
		t.Errorf("surface behind occluder: got visibility %v, want 0", v)
	}
	if v := ShadowVisibility(occluder, occluder, near, far, DefaultShadowBias); v != 1 {
		t.Errorf("occluder itself: got visibility %v, want 1 (no acne)", v)
	}
	if v := ShadowVisibility(1, behind, near, far, DefaultShadowBias); v != 1 {
		t.Errorf("empty cube texel: got visibility %v, want 1", v)
	}
}

func TestShadowFarNeverCollapses(t *testing.T) {
	for _, r := range []float32{0, 0.05, ShadowNear} {
		if f := ShadowFar(r); f <= ShadowNear {
			t.Errorf("ShadowFar(%v) = %v, want > near", r, f)
		}
	}
	if f := ShadowFar(77); f != 77 {
		t.Errorf("ShadowFar(77) = %v, want 77", f)
	}
}

func TestShadowPCF(t *testing.T) {
	near, far := ShadowNear, float32(30)
	point := mgl32.Vec3{0, -6, 0}
	occluder := CubeDepth(mgl32.Vec3{0, -3, 0}, near, far)

	tests := []struct {
		name   string
		lookup func(dir mgl32.Vec3) float32
		want   float32
	}{
		{"empty map", func(mgl32.Vec3) float32 { return 1 }, 1},
		{"fully covered", func(mgl32.Vec3) float32 { return occluder }, 0},
		{"half covered", func(dir mgl32.Vec3) float32 {
			if dir.X() > 0 {
				return occluder
			}
			return 1
		}, 0.5},
	}
	for _, tt := range tests {
		if got := ShadowPCF(tt.lookup, point, near, far, DefaultShadowBias); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPCFDirectionsStayOnFace(t *testing.T) {
	for _, p := range []mgl32.Vec3{{8, 0.5, -1}, {0, -12, 2}, {0.2, 0.1, 25}} {
		want := MajorAxisFace(p)
		for i, dir := range PCFDirections(p) {
			if got := MajorAxisFace(dir); got != want {
				t.Errorf("%v tap %d: face %d, want %d", p, i, got, want)
			}
		}
	}
}

func TestLinearizeCubeDepthInvertsCubeDepth(t *testing.T) {
	near, far := ShadowNear, float32(77)
	for _, z := range []float32{0.5, 3, 15, 40, 76} {
		got := LinearizeCubeDepth(CubeDepth(mgl32.Vec3{0, 0, -z}, near, far), near, far)
		if math.Abs(float64(got-z)) > 1e-3*float64(z) {
			t.Errorf("LinearizeCubeDepth(CubeDepth(%v)): got %v", z, got)
		}
	}
}

// The bias must stay small in world units far from the light: an occluder
// one unit in front of a receiver 15 units away still shadows it.
func TestShadowBiasScalesWithDistance(t *testing.T) {
	near, far := ShadowNear, float32(77)
	for _, tt := range []struct{ occluder, receiver float32 }{
		{14, 15},
		{29, 30},
		{2, 2.2},
	} {
		stored := CubeDepth(mgl32.Vec3{tt.occluder, 0, 0}, near, far)
		surface := CubeDepth(mgl32.Vec3{tt.receiver, 0, 0}, near, far)
		if v := ShadowVisibility(stored, surface, near, far, DefaultShadowBias); v != 0 {
			t.Errorf("occluder at %v, receiver at %v: got visibility %v, want 0", tt.occluder, tt.receiver, v)
		}
	}
}
