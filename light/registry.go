package light

import (
	"errors"
	"fmt"
	"iter"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrInvalidHandle is returned when a handle does not name a light.
	ErrInvalidHandle = errors.New("light: invalid handle")
	// ErrNoLights is returned by selection queries on an empty registry.
	ErrNoLights = errors.New("light: registry is empty")
)

// Handle is a stable index into a Registry. Lights are never removed, so a
// handle stays valid for the lifetime of the registry that issued it.
type Handle int

// Registry is the ordered set of point lights. Lights are appended and never
// removed; mutation goes through accessor methods so the registry remains
// the single owner of light state.
type Registry struct {
	lights   []PointLight
	casters  int
	selected int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a light and returns its handle.
func (r *Registry) Add(pos, color mgl32.Vec3, shadowCaster bool) Handle {
	r.lights = append(r.lights, newPointLight(pos, color, shadowCaster))
	if shadowCaster {
		r.casters++
	}
	return Handle(len(r.lights) - 1)
}

// Len returns the number of lights.
func (r *Registry) Len() int { return len(r.lights) }

// ShadowCasterCount returns the number of lights created as shadow casters.
func (r *Registry) ShadowCasterCount() int { return r.casters }

// Get returns a copy of the light named by h.
func (r *Registry) Get(h Handle) (PointLight, bool) {
	if !r.valid(h) {
		return PointLight{}, false
	}
	return r.lights[h], true
}

// All yields every light in insertion order.
func (r *Registry) All() iter.Seq2[Handle, PointLight] {
	return func(yield func(Handle, PointLight) bool) {
		for i := range r.lights {
			if !yield(Handle(i), r.lights[i]) {
				return
			}
		}
	}
}

// SetPosition moves the light named by h.
func (r *Registry) SetPosition(h Handle, pos mgl32.Vec3) error {
	if !r.valid(h) {
		return fmt.Errorf("set position of light %d: %w", h, ErrInvalidHandle)
	}
	r.lights[h].Position = pos
	return nil
}

// Translate offsets the light named by h.
func (r *Registry) Translate(h Handle, delta mgl32.Vec3) error {
	if !r.valid(h) {
		return fmt.Errorf("translate light %d: %w", h, ErrInvalidHandle)
	}
	r.lights[h].Position = r.lights[h].Position.Add(delta)
	return nil
}

// SetBrightness changes the brightness, and with it the radius, of the light
// named by h. Negative values are clamped to zero.
func (r *Registry) SetBrightness(h Handle, brightness float32) error {
	if !r.valid(h) {
		return fmt.Errorf("set brightness of light %d: %w", h, ErrInvalidHandle)
	}
	if brightness < 0 {
		brightness = 0
	}
	r.lights[h].Brightness = brightness
	return nil
}

// SetColor changes the colour of the light named by h.
func (r *Registry) SetColor(h Handle, color mgl32.Vec3) error {
	if !r.valid(h) {
		return fmt.Errorf("set color of light %d: %w", h, ErrInvalidHandle)
	}
	r.lights[h].Color = color
	return nil
}

// ── Selection ─────────────────────────────────────────────────────────────────

// Selected returns the currently selected light.
func (r *Registry) Selected() (Handle, error) {
	if len(r.lights) == 0 {
		return 0, ErrNoLights
	}
	return Handle(r.selected), nil
}

// Select makes h the selected light. Out-of-range values wrap modulo the
// light count; on an empty registry Select does nothing.
func (r *Registry) Select(h Handle) {
	n := len(r.lights)
	if n == 0 {
		return
	}
	i := int(h) % n
	if i < 0 {
		i += n
	}
	r.selected = i
}

// SelectNext advances the selection, wrapping from the last light to the first.
func (r *Registry) SelectNext() {
	r.Select(Handle(r.selected + 1))
}

// SelectPrev moves the selection back, wrapping from the first light to the last.
func (r *Registry) SelectPrev() {
	r.Select(Handle(r.selected - 1))
}

// MoveSelected translates the selected light. It is a no-op on an empty registry.
func (r *Registry) MoveSelected(delta mgl32.Vec3) {
	h, err := r.Selected()
	if err != nil {
		return
	}
	_ = r.Translate(h, delta)
}

func (r *Registry) valid(h Handle) bool {
	return h >= 0 && int(h) < len(r.lights)
}
