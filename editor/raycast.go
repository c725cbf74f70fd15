// Package editor turns mouse positions into world rays for picking lights
// in the demo.
package editor

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/light"
	"deferred-engine/renderer"
)

// Ray represents a ray in 3D space
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) mgl32.Vec3 { return r.Origin.Add(r.Direction.Mul(t)) }

// ScreenToRay converts a window position (origin top-left) to a world-space
// ray leaving the camera eye.
func ScreenToRay(mouseX, mouseY, screenWidth, screenHeight float32, cam renderer.Camera) Ray {
	ndcX := (2.0*mouseX)/screenWidth - 1.0
	ndcY := 1.0 - (2.0*mouseY)/screenHeight // flip Y

	invVP := cam.ProjectionMatrix().Mul4(cam.ViewMatrix()).Inv()
	near := mgl32.TransformCoordinate(mgl32.Vec3{ndcX, ndcY, -1}, invVP)
	eye := cam.Eye()
	return Ray{Origin: eye, Direction: near.Sub(eye).Normalize()}
}

// raySphere returns the nearest non-negative hit distance of ray with a
// sphere. A ray starting inside the sphere hits at 0.
func raySphere(ray Ray, center mgl32.Vec3, radius float32) (float32, bool) {
	oc := ray.Origin.Sub(center)
	b := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius
	if c <= 0 {
		return 0, true
	}
	disc := b*b - c
	if b > 0 || disc < 0 {
		return 0, false
	}
	return -b - float32(math.Sqrt(float64(disc))), true
}

// PickLight returns the light whose pick sphere of pickRadius the ray hits
// first. Lights that cannot contribute are skipped.
func PickLight(ray Ray, reg *light.Registry, pickRadius float32) (light.Handle, bool) {
	best := float32(math.MaxFloat32)
	var picked light.Handle
	found := false
	for h, l := range reg.All() {
		if l.Radius() <= 0 {
			continue
		}
		t, hit := raySphere(ray, l.Position, pickRadius)
		if hit && t < best {
			best, picked, found = t, h, true
		}
	}
	return picked, found
}
