package shading

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// ShadowNear is the near plane of every cube shadow capture.
	ShadowNear float32 = 0.1
	// DefaultShadowBias is the fraction of its distance from the light a
	// surface may lie behind the stored occluder and still count as lit.
	DefaultShadowBias float32 = 0.005
	// CubeFOV is the field of view of one cube face, in radians.
	CubeFOV = math.Pi / 2
)

// CubeFace indexes the six faces in OpenGL cube-map order, so that
// gl.TEXTURE_CUBE_MAP_POSITIVE_X + face names the matching texture target.
type CubeFace int

const (
	FacePosX CubeFace = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// CubeFaceCount is the number of faces in a cube map.
const CubeFaceCount = 6

var cubeFaceAxes = [CubeFaceCount]struct{ dir, up mgl32.Vec3 }{
	FacePosX: {mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	FaceNegX: {mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	FacePosY: {mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
	FaceNegY: {mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, -1}},
	FacePosZ: {mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, -1, 0}},
	FaceNegZ: {mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, -1, 0}},
}

// Axis returns the direction the face looks along.
func (f CubeFace) Axis() mgl32.Vec3 { return cubeFaceAxes[f].dir }

// ShadowFar returns the far plane used for a light of the given radius.
// It never falls to or below the near plane.
func ShadowFar(radius float32) float32 {
	if radius <= ShadowNear*2 {
		return ShadowNear * 2
	}
	return radius
}

// CubeProjection is the 90° square projection shared by all six faces.
func CubeProjection(near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(CubeFOV, 1, near, far)
}

// CubeFaceView returns the view matrix for one face of a capture at eye.
func CubeFaceView(eye mgl32.Vec3, face CubeFace) mgl32.Mat4 {
	a := cubeFaceAxes[face]
	return mgl32.LookAtV(eye, eye.Add(a.dir), a.up)
}

// CubeViewProjections returns projection × view for all six faces.
func CubeViewProjections(eye mgl32.Vec3, near, far float32) [CubeFaceCount]mgl32.Mat4 {
	proj := CubeProjection(near, far)
	var out [CubeFaceCount]mgl32.Mat4
	for f := range out {
		out[f] = proj.Mul4(CubeFaceView(eye, CubeFace(f)))
	}
	return out
}

// MajorAxisFace returns the face a cube-map lookup along dir reads from.
func MajorAxisFace(dir mgl32.Vec3) CubeFace {
	ax, ay, az := abs32(dir.X()), abs32(dir.Y()), abs32(dir.Z())
	switch {
	case ax >= ay && ax >= az:
		if dir.X() >= 0 {
			return FacePosX
		}
		return FaceNegX
	case ay >= az:
		if dir.Y() >= 0 {
			return FacePosY
		}
		return FaceNegY
	default:
		if dir.Z() >= 0 {
			return FacePosZ
		}
		return FaceNegZ
	}
}

// CubeDepth reconstructs the window-space depth a capture with the given
// near/far planes stored for a point at lightToPoint from the light. The
// view-space depth of the point on its face is its major-axis distance.
func CubeDepth(lightToPoint mgl32.Vec3, near, far float32) float32 {
	z := max(abs32(lightToPoint.X()), abs32(lightToPoint.Y()), abs32(lightToPoint.Z()))
	if z <= 0 {
		return 0
	}
	ndc := (far+near)/(far-near) - (2*far*near)/((far-near)*z)
	return ndc*0.5 + 0.5
}

// LinearizeCubeDepth inverts CubeDepth: it returns the major-axis distance
// of a stored window-space depth.
func LinearizeCubeDepth(depth, near, far float32) float32 {
	ndc := depth*2 - 1
	return 2 * far * near / (far + near - ndc*(far-near))
}

// ShadowVisibility is the single-tap depth comparison: 1 when the surface
// is at or in front of the stored occluder, 0 otherwise. Both depths are
// linearized first, so bias is a fraction of the surface distance.
func ShadowVisibility(storedDepth, surfaceDepth, near, far, bias float32) float32 {
	stored := LinearizeCubeDepth(storedDepth, near, far)
	surface := LinearizeCubeDepth(surfaceDepth, near, far)
	if surface*(1-bias) <= stored {
		return 1
	}
	return 0
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// PCFTaps is the number of cube lookups averaged per shadow test.
const PCFTaps = 4

// PCFSpread scales the tap offsets with the light→point distance, so the
// filter covers roughly the same solid angle everywhere.
const PCFSpread float32 = 0.01

// pcfOffsets point at the corners of a tetrahedron, giving four taps that
// are well separated on every cube face.
var pcfOffsets = [PCFTaps]mgl32.Vec3{
	{1, 1, 1},
	{1, -1, -1},
	{-1, 1, -1},
	{-1, -1, 1},
}

// PCFOffsets returns the unscaled tap offsets.
func PCFOffsets() [PCFTaps]mgl32.Vec3 { return pcfOffsets }

// PCFDirections returns the lookup directions for a point at lightToPoint.
func PCFDirections(lightToPoint mgl32.Vec3) [PCFTaps]mgl32.Vec3 {
	spread := lightToPoint.Len() * PCFSpread
	var dirs [PCFTaps]mgl32.Vec3
	for i, o := range pcfOffsets {
		dirs[i] = lightToPoint.Add(o.Mul(spread))
	}
	return dirs
}

// ShadowPCF averages ShadowVisibility over the PCF taps. lookup returns the
// depth stored in the cube map along a direction. The result is 1 for a
// fully lit point and 0 for a fully shadowed one.
func ShadowPCF(lookup func(dir mgl32.Vec3) float32, lightToPoint mgl32.Vec3, near, far, bias float32) float32 {
	depth := CubeDepth(lightToPoint, near, far)
	var vis float32
	for _, dir := range PCFDirections(lightToPoint) {
		vis += ShadowVisibility(lookup(dir), depth, near, far, bias)
	}
	return vis / PCFTaps
}
