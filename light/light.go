// Package light owns the point lights of a deferred scene.
//
// The registry has no GPU dependency: it stores positions, colours and
// brightness, hands out stable handles, and tracks the light currently
// selected by host input. Shadow-map allocation for casters is done by the
// renderer that owns the registry.
package light

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultBrightness is the brightness given to every new light.
	DefaultBrightness float32 = 60
	// DefaultCutoff is the attenuated intensity at which a light is
	// considered to stop contributing. It bounds the light radius.
	DefaultCutoff float32 = 0.01
)

// PointLight is an omnidirectional light with a finite radius of influence.
// The shadow-caster flag is fixed when the light is created.
type PointLight struct {
	Position   mgl32.Vec3
	Color      mgl32.Vec3
	Brightness float32
	Cutoff     float32

	caster bool
}

func newPointLight(pos, color mgl32.Vec3, caster bool) PointLight {
	return PointLight{
		Position:   pos,
		Color:      color,
		Brightness: DefaultBrightness,
		Cutoff:     DefaultCutoff,
		caster:     caster,
	}
}

// ShadowCaster reports whether the light renders a cube shadow map.
func (l PointLight) ShadowCaster() bool { return l.caster }

// Radius is the distance at which the light's attenuated brightness falls
// to its cutoff. It sizes the light volume and the shadow far plane.
func (l PointLight) Radius() float32 {
	return Radius(l.Brightness, l.Cutoff)
}

// Radius returns sqrt(brightness/cutoff), or 0 for a light that cannot
// contribute (non-positive brightness or cutoff).
func Radius(brightness, cutoff float32) float32 {
	if brightness <= 0 || cutoff <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(brightness / cutoff)))
}
