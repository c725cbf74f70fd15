package renderer

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// fakeBackend records every allocation and pass invocation.
type fakeBackend struct {
	next   Texture
	allocs int
	calls  []string

	failShadow bool
	failLight  bool

	destroyed int

	geometry  *fakeGeometry
	occlusion *fakeOcclusion
	lighting  *fakeLighting
	composite *fakeCompositor
	shadows   []*fakeShadow
}

func (b *fakeBackend) tex() Texture {
	b.next++
	return b.next
}

func (b *fakeBackend) NewGeometryPass(w, h int) (GeometryPass, error) {
	b.allocs++
	b.geometry = &fakeGeometry{b: b, g: GBuffer{
		Albedo: b.tex(), Normal: b.tex(), Position: b.tex(), Attribute: b.tex(),
		Width: w, Height: h,
	}}
	return b.geometry, nil
}

func (b *fakeBackend) NewShadowMap(size int) (ShadowMap, error) {
	if b.failShadow {
		return nil, errors.New("no cube maps today")
	}
	b.allocs++
	s := &fakeShadow{b: b, tex: b.tex(), size: size}
	b.shadows = append(b.shadows, s)
	return s, nil
}

func (b *fakeBackend) NewOcclusionPass(w, h int, p SSAOParams) (OcclusionPass, error) {
	b.allocs++
	b.occlusion = &fakeOcclusion{b: b, raw: b.tex(), blurred: b.tex(), w: w, h: h, p: p}
	return b.occlusion, nil
}

func (b *fakeBackend) NewLightingPass(w, h int, p LightingParams) (LightingPass, error) {
	if b.failLight {
		return nil, errors.New("incomplete framebuffer")
	}
	b.allocs++
	b.lighting = &fakeLighting{b: b, light: b.tex(), shadow: b.tex(), p: p}
	return b.lighting, nil
}

func (b *fakeBackend) NewCompositor(w, h int) (Compositor, error) {
	b.allocs++
	b.composite = &fakeCompositor{b: b}
	return b.composite, nil
}

type fakeGeometry struct {
	b *fakeBackend
	g GBuffer
}

func (f *fakeGeometry) Render(view FrameView, casters, nonCasters Drawable) {
	f.b.calls = append(f.b.calls, "geometry")
	casters.Draw(nil)
	nonCasters.Draw(nil)
}
func (f *fakeGeometry) Targets() GBuffer { return f.g }
func (f *fakeGeometry) Destroy()         { f.b.destroyed++ }

type fakeShadow struct {
	b       *fakeBackend
	tex     Texture
	size    int
	updates int
	lastPos mgl32.Vec3
	lastR   float32
}

func (f *fakeShadow) Update(pos mgl32.Vec3, radius float32, casters Drawable) {
	f.b.calls = append(f.b.calls, "shadow")
	f.updates++
	f.lastPos, f.lastR = pos, radius
}
func (f *fakeShadow) Texture() Texture { return f.tex }
func (f *fakeShadow) Destroy()         { f.b.destroyed++ }

type fakeOcclusion struct {
	b            *fakeBackend
	raw, blurred Texture
	w, h         int
	p            SSAOParams
	fill         []float32
}

func (f *fakeOcclusion) Compute(GBuffer, FrameView) { f.b.calls = append(f.b.calls, "ssao") }
func (f *fakeOcclusion) Blur(GBuffer)               { f.b.calls = append(f.b.calls, "blur") }
func (f *fakeOcclusion) Fill(v float32) {
	f.b.calls = append(f.b.calls, "fill")
	f.fill = append(f.fill, v)
}
func (f *fakeOcclusion) Raw() Texture     { return f.raw }
func (f *fakeOcclusion) Blurred() Texture { return f.blurred }
func (f *fakeOcclusion) Destroy()         { f.b.destroyed++ }

type fakeLighting struct {
	b             *fakeBackend
	light, shadow Texture
	p             LightingParams
	last          []LightDraw
}

func (f *fakeLighting) Accumulate(lights []LightDraw, g GBuffer, view FrameView) {
	f.b.calls = append(f.b.calls, "lighting")
	f.last = append(f.last[:0], lights...)
}
func (f *fakeLighting) Light() Texture  { return f.light }
func (f *fakeLighting) Shadow() Texture { return f.shadow }
func (f *fakeLighting) Destroy()        { f.b.destroyed++ }

type fakeCompositor struct {
	b     *fakeBackend
	view  View
	in    CompositeInputs
	count int
}

func (f *fakeCompositor) Present(v View, in CompositeInputs) {
	f.b.calls = append(f.b.calls, "present")
	f.view, f.in = v, in
	f.count++
}
func (f *fakeCompositor) Destroy() { f.b.destroyed++ }

// fixedCamera looks down -Z from the origin.
type fixedCamera struct {
	eye, target mgl32.Vec3
}

func newFixedCamera() *fixedCamera {
	return &fixedCamera{eye: mgl32.Vec3{0, 0, 0}, target: mgl32.Vec3{0, 0, -1}}
}

func (c *fixedCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.eye, c.target, mgl32.Vec3{0, 1, 0})
}
func (c *fixedCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(60), 4.0/3.0, 0.1, 100)
}
func (c *fixedCamera) ClipPlanes() (float32, float32) { return 0.1, 100 }
func (c *fixedCamera) Eye() mgl32.Vec3               { return c.eye }
