package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFrustumSphere(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1, 1, 100)
	f := frustumFromVP(proj.Mul4(view))

	tests := []struct {
		name   string
		center mgl32.Vec3
		radius float32
		want   bool
	}{
		{"inside", mgl32.Vec3{0, 0, -50}, 1, true},
		{"behind", mgl32.Vec3{0, 0, 10}, 1, false},
		{"behind overlapping near", mgl32.Vec3{0, 0, 10}, 20, true},
		{"beyond far", mgl32.Vec3{0, 0, -200}, 50, false},
		{"straddles far", mgl32.Vec3{0, 0, -120}, 50, true},
		{"left of view", mgl32.Vec3{-100, 0, -10}, 5, false},
		{"touches left plane", mgl32.Vec3{-12, 0, -10}, 5, true},
		{"above", mgl32.Vec3{0, 100, -10}, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.intersectsSphere(tt.center, tt.radius); got != tt.want {
				t.Errorf("intersectsSphere(%v, %v) = %v, want %v", tt.center, tt.radius, got, tt.want)
			}
		})
	}
}
