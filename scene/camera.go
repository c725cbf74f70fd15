package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera looking from Position towards Target.
// FOV is the vertical field of view in radians.
type Camera struct {
	Position    mgl32.Vec3
	Target      mgl32.Vec3
	Up          mgl32.Vec3
	FOV         float32
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32

	viewMatrix       mgl32.Mat4
	projectionMatrix mgl32.Mat4
	dirty            bool
}

func NewCamera(fov, aspectRatio, nearPlane, farPlane float32) *Camera {
	return &Camera{
		Target:      mgl32.Vec3{0, 0, -1},
		Up:          mgl32.Vec3{0, 1, 0},
		FOV:         fov,
		AspectRatio: aspectRatio,
		NearPlane:   nearPlane,
		FarPlane:    farPlane,
		dirty:       true,
	}
}

func (c *Camera) UpdateAspectRatio(width, height float32) {
	if height > 0 {
		c.AspectRatio = width / height
		c.dirty = true
	}
}

func (c *Camera) SetPosition(pos mgl32.Vec3) {
	c.Position = pos
	c.dirty = true
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target mgl32.Vec3) {
	c.Target = target
	c.dirty = true
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	c.update()
	return c.viewMatrix
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	c.update()
	return c.projectionMatrix
}

func (c *Camera) ClipPlanes() (near, far float32) { return c.NearPlane, c.FarPlane }

func (c *Camera) Eye() mgl32.Vec3 { return c.Position }

// Forward returns the unit view direction.
func (c *Camera) Forward() mgl32.Vec3 { return c.Target.Sub(c.Position).Normalize() }

func (c *Camera) update() {
	if !c.dirty {
		return
	}
	c.viewMatrix = mgl32.LookAtV(c.Position, c.Target, c.Up)
	c.projectionMatrix = mgl32.Perspective(c.FOV, c.AspectRatio, c.NearPlane, c.FarPlane)
	c.dirty = false
}

const (
	maxPitch    = 1.5
	minDistance = 0.1
)

// OrbitCamera circles a target at a given distance. Yaw is measured about
// +Y from +Z, pitch upwards from the XZ plane.
type OrbitCamera struct {
	Camera
	Distance float32
	Yaw      float32
	Pitch    float32
}

func NewOrbitCamera(target mgl32.Vec3, distance, fov, aspectRatio, near, far float32) *OrbitCamera {
	c := &OrbitCamera{Distance: distance, Pitch: 0.3}
	c.Camera = *NewCamera(fov, aspectRatio, near, far)
	c.Target = target
	c.UpdatePosition()
	return c
}

// NewOrbitCameraAt returns an orbit camera placed at eye looking at target.
func NewOrbitCameraAt(eye, target mgl32.Vec3, fov, aspectRatio, near, far float32) *OrbitCamera {
	off := eye.Sub(target)
	dist := off.Len()
	c := &OrbitCamera{Distance: dist}
	if dist > 0 {
		c.Yaw = float32(math.Atan2(float64(off[0]), float64(off[2])))
		c.Pitch = float32(math.Asin(float64(off[1] / dist)))
	}
	c.Camera = *NewCamera(fov, aspectRatio, near, far)
	c.Target = target
	c.UpdatePosition()
	return c
}

// UpdatePosition recomputes Position from the spherical coordinates.
func (c *OrbitCamera) UpdatePosition() {
	c.Pitch = mgl32.Clamp(c.Pitch, -maxPitch, maxPitch)
	c.Distance = max(c.Distance, minDistance)

	sinP, cosP := math.Sincos(float64(c.Pitch))
	sinY, cosY := math.Sincos(float64(c.Yaw))
	off := mgl32.Vec3{
		c.Distance * float32(cosP*sinY),
		c.Distance * float32(sinP),
		c.Distance * float32(cosP*cosY),
	}
	c.SetPosition(c.Target.Add(off))
}

func (c *OrbitCamera) Orbit(deltaYaw, deltaPitch float32) {
	c.Yaw += deltaYaw
	c.Pitch += deltaPitch
	c.UpdatePosition()
}

// Dolly moves the camera along its view direction; positive delta moves
// away from the target.
func (c *OrbitCamera) Dolly(delta float32) {
	c.Distance += delta
	c.UpdatePosition()
}
