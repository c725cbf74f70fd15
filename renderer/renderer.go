// Package renderer drives the deferred-shading pipeline.
//
// A frame runs, in order: cube shadow maps for every caster light, the
// G-buffer pass, SSAO and its blur, per-light accumulation, and the final
// composite or debug blit. The GPU work is done by a Backend; this package
// owns ordering, resource lifetime and the light registry.
package renderer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/light"
)

// ErrShadowCastersFrozen is returned by AddLight when a shadow caster is
// added after the first frame has been rendered.
var ErrShadowCastersFrozen = errors.New("renderer: shadow casters are fixed after the first frame")

// Palette is the set of colours given to randomly generated lights.
var Palette = []mgl32.Vec3{
	{0.99, 0.67, 0.23}, // orange
	{0.97, 0.24, 0.85}, // pink
	{0.00, 0.93, 0.30}, // green
	{0.98, 0.96, 0.32}, // yellow
	{0.10, 0.69, 0.93}, // blue
	{0.94, 0.15, 0.23}, // red
}

// Bounds is an axis-aligned box used to place random lights.
type Bounds struct {
	Min, Max mgl32.Vec3
}

// FrameStats describes the most recent frame.
type FrameStats struct {
	Frame          uint64
	Mode           RenderMode
	LightsDrawn    int
	LightsCulled   int
	ShadowUpdates  int
	SSAOEnabled    bool
	ShadowsEnabled bool
}

// Renderer is a deferred-shading pipeline bound to one scene and camera.
type Renderer struct {
	cfg     Config
	backend Backend

	casters    Drawable
	nonCasters Drawable
	camera     Camera

	lights  *light.Registry
	shadows map[light.Handle]ShadowMap
	// casterOrder lists caster handles in insertion order, so shadow maps
	// are refreshed deterministically.
	casterOrder []light.Handle
	frozen      bool

	geometry   GeometryPass
	occlusion  OcclusionPass
	lighting   LightingPass
	compositor Compositor

	drawList []LightDraw
	stats    FrameStats
}

// New allocates every fixed-size target of the pipeline. casters are drawn
// into the G-buffer and every shadow map; nonCasters only into the G-buffer.
// Any allocation failure is fatal: resources created so far are released
// and the error is returned.
func New(backend Backend, casters, nonCasters Drawable, cam Camera, cfg Config) (*Renderer, error) {
	if backend == nil {
		return nil, errors.New("renderer: nil backend")
	}
	if cam == nil {
		return nil, errors.New("renderer: nil camera")
	}
	if casters == nil {
		casters = DrawFunc(func(Shader) {})
	}
	if nonCasters == nil {
		nonCasters = DrawFunc(func(Shader) {})
	}
	cfg = cfg.Normalize()

	r := &Renderer{
		cfg:        cfg,
		backend:    backend,
		casters:    casters,
		nonCasters: nonCasters,
		camera:     cam,
		lights:     light.NewRegistry(),
		shadows:    make(map[light.Handle]ShadowMap),
	}

	var err error
	if r.geometry, err = backend.NewGeometryPass(cfg.Width, cfg.Height); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("geometry pass: %w", err)
	}
	aoW, aoH := cfg.SSAOSize()
	if r.occlusion, err = backend.NewOcclusionPass(aoW, aoH, cfg.SSAO); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("ssao pass: %w", err)
	}
	lp := LightingParams{Ambient: cfg.Ambient, ShadowBias: cfg.ShadowBias}
	if r.lighting, err = backend.NewLightingPass(cfg.Width, cfg.Height, lp); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("lighting pass: %w", err)
	}
	if r.compositor, err = backend.NewCompositor(cfg.Width, cfg.Height); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("compositor: %w", err)
	}

	Logger().Info("renderer: pipeline ready",
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height),
		slog.Int("shadowMapSize", cfg.ShadowMapSize),
		slog.Int("ssaoKernel", cfg.SSAO.KernelSize))
	return r, nil
}

// Config returns the normalized configuration the renderer was built with.
func (r *Renderer) Config() Config { return r.cfg }

// AddLight appends a point light. Shadow casters get a cube shadow map; they
// can only be added before the first Render.
func (r *Renderer) AddLight(pos, color mgl32.Vec3, shadowCaster bool) (light.Handle, error) {
	if !shadowCaster {
		return r.lights.Add(pos, color, false), nil
	}
	if r.frozen {
		return 0, ErrShadowCastersFrozen
	}
	sm, err := r.backend.NewShadowMap(r.cfg.ShadowMapSize)
	if err != nil {
		return 0, fmt.Errorf("shadow map: %w", err)
	}
	h := r.lights.Add(pos, color, true)
	r.shadows[h] = sm
	r.casterOrder = append(r.casterOrder, h)
	Logger().Debug("renderer: shadow caster added", slog.Int("light", int(h)), slog.Int("casters", len(r.casterOrder)))
	return h, nil
}

// AddRandomLight appends a non-caster at a random position inside b with a
// random colour from Palette.
func (r *Renderer) AddRandomLight(rng *rand.Rand, b Bounds) light.Handle {
	var pos mgl32.Vec3
	for i := range pos {
		pos[i] = b.Min[i] + rng.Float32()*(b.Max[i]-b.Min[i])
	}
	color := Palette[rng.Intn(len(Palette))]
	h, _ := r.AddLight(pos, color, false)
	return h
}

// Lights returns the registry for between-frame mutation.
func (r *Renderer) Lights() *light.Registry { return r.lights }

// ShadowMapCount returns the number of allocated cube shadow maps.
func (r *Renderer) ShadowMapCount() int { return len(r.shadows) }

// Stats returns statistics about the last rendered frame.
func (r *Renderer) Stats() FrameStats { return r.stats }

// Render runs the whole pipeline once and leaves the selected view in the
// default framebuffer. Disabled stages are skipped, never deallocated.
func (r *Renderer) Render(mode RenderMode, shadowsEnabled, ssaoEnabled bool) {
	if !mode.Valid() {
		mode = ModeFinal
	}
	r.frozen = true

	view := NewFrameView(r.camera)
	stats := FrameStats{
		Frame:          r.stats.Frame + 1,
		Mode:           mode,
		SSAOEnabled:    ssaoEnabled,
		ShadowsEnabled: shadowsEnabled,
	}

	if shadowsEnabled {
		for _, h := range r.casterOrder {
			l, _ := r.lights.Get(h)
			r.shadows[h].Update(l.Position, l.Radius(), r.casters)
			stats.ShadowUpdates++
		}
	}

	r.geometry.Render(view, r.casters, r.nonCasters)
	g := r.geometry.Targets()

	if ssaoEnabled {
		r.occlusion.Compute(g, view)
		r.occlusion.Blur(g)
	} else {
		r.occlusion.Fill(1)
	}

	r.drawList = r.cullLights(r.drawList[:0], view, shadowsEnabled, &stats)
	r.lighting.Accumulate(r.drawList, g, view)

	buffers := Buffers{
		GBuffer:   g,
		RawAO:     r.occlusion.Raw(),
		BlurredAO: r.occlusion.Blurred(),
		Light:     r.lighting.Light(),
		Shadow:    r.lighting.Shadow(),
	}
	r.compositor.Present(ViewFor(mode, buffers), CompositeInputs{
		Albedo:    g.Albedo,
		Light:     buffers.Light,
		AO:        buffers.BlurredAO,
		AOEnabled: ssaoEnabled,
		Exposure:  r.cfg.Exposure,
	})

	r.stats = stats
	if lg := Logger(); lg.Enabled(context.Background(), slog.LevelDebug) {
		lg.Debug("renderer: frame",
			slog.Uint64("frame", stats.Frame),
			slog.String("mode", mode.String()),
			slog.Int("lights", stats.LightsDrawn),
			slog.Int("culled", stats.LightsCulled),
			slog.Int("shadowUpdates", stats.ShadowUpdates))
	}
}

// cullLights appends to dst every light whose sphere of influence touches
// the view frustum.
func (r *Renderer) cullLights(dst []LightDraw, view FrameView, shadowsEnabled bool, stats *FrameStats) []LightDraw {
	f := frustumFromVP(view.ViewProjection)
	for h, l := range r.lights.All() {
		radius := l.Radius()
		if radius <= 0 || !f.intersectsSphere(l.Position, radius) {
			stats.LightsCulled++
			continue
		}
		d := LightDraw{
			Position:   l.Position,
			Color:      l.Color,
			Brightness: l.Brightness,
			Radius:     radius,
		}
		if shadowsEnabled && l.ShadowCaster() {
			d.Shadow = r.shadows[h]
		}
		dst = append(dst, d)
		stats.LightsDrawn++
	}
	return dst
}

// Destroy releases every pass and shadow map.
func (r *Renderer) Destroy() {
	for _, h := range r.casterOrder {
		r.shadows[h].Destroy()
	}
	r.shadows = make(map[light.Handle]ShadowMap)
	r.casterOrder = nil
	if r.compositor != nil {
		r.compositor.Destroy()
		r.compositor = nil
	}
	if r.lighting != nil {
		r.lighting.Destroy()
		r.lighting = nil
	}
	if r.occlusion != nil {
		r.occlusion.Destroy()
		r.occlusion = nil
	}
	if r.geometry != nil {
		r.geometry.Destroy()
		r.geometry = nil
	}
}
