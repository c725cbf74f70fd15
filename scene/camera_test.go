package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b mgl32.Vec3) bool { return a.ApproxEqualThreshold(b, 1e-3) }

func TestOrbitCameraAtKeepsEye(t *testing.T) {
	eye := mgl32.Vec3{-21, 10.5, -21}
	c := NewOrbitCameraAt(eye, mgl32.Vec3{}, mgl32.DegToRad(45), 4.0/3.0, 0.1, 10000)
	if !near(c.Eye(), eye) {
		t.Errorf("Eye = %v, want %v", c.Eye(), eye)
	}
	if got := float64(c.Distance); math.Abs(got-31.5) > 1e-3 {
		t.Errorf("Distance = %v, want 31.5", got)
	}

	// The target projects to the centre of the screen.
	vp := c.ProjectionMatrix().Mul4(c.ViewMatrix())
	clip := vp.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if x, y := clip[0]/clip[3], clip[1]/clip[3]; math.Abs(float64(x)) > 1e-4 || math.Abs(float64(y)) > 1e-4 {
		t.Errorf("target at NDC (%v, %v), want centre", x, y)
	}
}

func TestOrbitCameraClamps(t *testing.T) {
	c := NewOrbitCamera(mgl32.Vec3{}, 10, 1, 1, 0.1, 100)
	c.Orbit(0, 10)
	if c.Pitch != maxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, maxPitch)
	}
	c.Dolly(-100)
	if c.Distance != minDistance {
		t.Errorf("Distance = %v, want %v", c.Distance, minDistance)
	}
	if d := c.Eye().Len(); math.Abs(float64(d-minDistance)) > 1e-5 {
		t.Errorf("|Eye| = %v, want %v", d, minDistance)
	}
}

func TestOrbitPreservesDistance(t *testing.T) {
	target := mgl32.Vec3{1, 2, 3}
	c := NewOrbitCamera(target, 5, 1, 1, 0.1, 100)
	for i := range 20 {
		c.Orbit(0.3, float32(i%3-1)*0.2)
		if d := c.Eye().Sub(target).Len(); math.Abs(float64(d-5)) > 1e-4 {
			t.Fatalf("step %d: distance %v, want 5", i, d)
		}
	}
}

func TestCameraClipPlanes(t *testing.T) {
	c := NewCamera(1, 1, 0.5, 250)
	n, f := c.ClipPlanes()
	if n != 0.5 || f != 250 {
		t.Errorf("ClipPlanes = %v, %v", n, f)
	}
	c.SetPosition(mgl32.Vec3{0, 0, 5})
	c.LookAt(mgl32.Vec3{})
	if !near(c.Forward(), mgl32.Vec3{0, 0, -1}) {
		t.Errorf("Forward = %v", c.Forward())
	}
	// A point in front of the camera has negative view-space z.
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if math.Abs(float64(p[2]+5)) > 1e-5 {
		t.Errorf("view z = %v, want -5", p[2])
	}
}
