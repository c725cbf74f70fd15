package light

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAddPreservesInsertionOrder(t *testing.T) {
	r := NewRegistry()
	const n = 25
	for i := 0; i < n; i++ {
		h := r.Add(mgl32.Vec3{float32(i), 0, 0}, mgl32.Vec3{1, 1, 1}, i%7 == 0)
		if int(h) != i {
			t.Fatalf("Add #%d: got handle %d, want %d", i, h, i)
		}
	}
	if r.Len() != n {
		t.Fatalf("Len: got %d, want %d", r.Len(), n)
	}

	want := 0
	for h, l := range r.All() {
		if int(h) != want {
			t.Errorf("All: got handle %d at position %d", h, want)
		}
		if l.Position.X() != float32(want) {
			t.Errorf("All: light %d has x=%v, want %v", h, l.Position.X(), want)
		}
		want++
	}
	if want != n {
		t.Errorf("All: yielded %d lights, want %d", want, n)
	}
}

func TestShadowCasterCount(t *testing.T) {
	r := NewRegistry()
	r.Add(mgl32.Vec3{-2, 4, 6}, mgl32.Vec3{0.10, 0.69, 0.93}, true)
	r.Add(mgl32.Vec3{4, 6, -4}, mgl32.Vec3{0.94, 0.15, 0.23}, true)
	for i := 0; i < 10; i++ {
		r.Add(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, false)
	}
	if got := r.ShadowCasterCount(); got != 2 {
		t.Errorf("ShadowCasterCount: got %d, want 2", got)
	}
	l, ok := r.Get(0)
	if !ok || !l.ShadowCaster() {
		t.Errorf("Get(0): got caster=%v ok=%v, want caster", l.ShadowCaster(), ok)
	}
	l, _ = r.Get(5)
	if l.ShadowCaster() {
		t.Errorf("Get(5): non-caster reported as caster")
	}
}

func TestSelectionWraps(t *testing.T) {
	for _, n := range []int{1, 2, 3, 503} {
		r := NewRegistry()
		for i := 0; i < n; i++ {
			r.Add(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, false)
		}

		r.Select(Handle(n - 1))
		r.SelectNext()
		if h, _ := r.Selected(); h != 0 {
			t.Errorf("n=%d: next from last: got %d, want 0", n, h)
		}

		r.Select(0)
		r.SelectPrev()
		if h, _ := r.Selected(); int(h) != n-1 {
			t.Errorf("n=%d: prev from 0: got %d, want %d", n, h, n-1)
		}
	}
}

func TestSelectClampsOutOfRange(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 4; i++ {
		r.Add(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, false)
	}
	tests := []struct {
		in   Handle
		want Handle
	}{
		{0, 0},
		{3, 3},
		{4, 0},
		{9, 1},
		{-1, 3},
		{-6, 2},
	}
	for _, tt := range tests {
		r.Select(tt.in)
		if got, _ := r.Selected(); got != tt.want {
			t.Errorf("Select(%d): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEmptyRegistryIsGuarded(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Selected(); !errors.Is(err, ErrNoLights) {
		t.Errorf("Selected on empty: got %v, want ErrNoLights", err)
	}
	r.SelectNext()
	r.SelectPrev()
	r.Select(12)
	r.MoveSelected(mgl32.Vec3{1, 0, 0})
	if r.Len() != 0 {
		t.Errorf("Len: got %d, want 0", r.Len())
	}
	if _, ok := r.Get(0); ok {
		t.Errorf("Get(0) on empty registry reported ok")
	}
}

func TestMutationThroughRegistry(t *testing.T) {
	r := NewRegistry()
	h := r.Add(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{1, 1, 1}, false)

	if err := r.Translate(h, mgl32.Vec3{0, 0.1, 0}); err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if err := r.SetBrightness(h, 240); err != nil {
		t.Fatalf("SetBrightness: %v", err)
	}
	l, _ := r.Get(h)
	if !l.Position.ApproxEqual(mgl32.Vec3{1, 2.1, 3}) {
		t.Errorf("position: got %v", l.Position)
	}
	if l.Brightness != 240 {
		t.Errorf("brightness: got %v, want 240", l.Brightness)
	}

	r.Select(h)
	r.MoveSelected(mgl32.Vec3{-1, 0, 0})
	l, _ = r.Get(h)
	if !l.Position.ApproxEqual(mgl32.Vec3{0, 2.1, 3}) {
		t.Errorf("MoveSelected: got %v", l.Position)
	}

	if err := r.SetBrightness(h, -5); err != nil {
		t.Fatalf("SetBrightness: %v", err)
	}
	if l, _ = r.Get(h); l.Brightness != 0 || l.Radius() != 0 {
		t.Errorf("negative brightness: got brightness=%v radius=%v, want 0, 0", l.Brightness, l.Radius())
	}

	for _, bad := range []Handle{-1, 1, 100} {
		if err := r.SetPosition(bad, mgl32.Vec3{}); !errors.Is(err, ErrInvalidHandle) {
			t.Errorf("SetPosition(%d): got %v, want ErrInvalidHandle", bad, err)
		}
	}
}

func TestRadius(t *testing.T) {
	tests := []struct {
		brightness, cutoff float32
		want               float64
	}{
		{DefaultBrightness, DefaultCutoff, math.Sqrt(6000)},
		{1, 1, 1},
		{0, DefaultCutoff, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		got := Radius(tt.brightness, tt.cutoff)
		if math.Abs(float64(got)-tt.want) > 1e-3 {
			t.Errorf("Radius(%v, %v): got %v, want %v", tt.brightness, tt.cutoff, got, tt.want)
		}
	}
}
