package main

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/light"
)

func TestAnimateDiscoSkipsCasters(t *testing.T) {
	reg := light.NewRegistry()
	caster := reg.Add(mgl32.Vec3{3, 1, 4}, mgl32.Vec3{1, 0, 0}, true)
	var others []light.Handle
	for i := 0; i < 4; i++ {
		others = append(others, reg.Add(mgl32.Vec3{100, 5, 0}, mgl32.Vec3{0, 1, 0}, false))
	}

	for frame := 0; frame < 10; frame++ {
		animateDisco(reg, float64(frame)/60)
	}

	c, _ := reg.Get(caster)
	if c.Position != (mgl32.Vec3{3, 1, 4}) || c.Brightness != light.DefaultBrightness {
		t.Errorf("caster changed: %+v", c)
	}
	for _, h := range others {
		l, _ := reg.Get(h)
		if l.Brightness < light.DefaultBrightness || l.Brightness > light.DefaultBrightness+discoPulse {
			t.Errorf("light %d brightness %v outside pulse range", h, l.Brightness)
		}
		if l.Position.Y() != 5 {
			t.Errorf("light %d left its height: %v", h, l.Position)
		}
		r := math.Hypot(float64(l.Position.X()), float64(l.Position.Z()))
		if math.Abs(r-100) > 1e-3 {
			t.Errorf("light %d orbit radius %v, want 100", h, r)
		}
	}
}

func TestAnimateDiscoAlternatesDirection(t *testing.T) {
	reg := light.NewRegistry()
	for i := 0; i < 3; i++ {
		reg.Add(mgl32.Vec3{100, 0, 0}, mgl32.Vec3{1, 1, 1}, false)
	}
	animateDisco(reg, 0)

	l1, _ := reg.Get(1)
	l2, _ := reg.Get(2)
	if l1.Position.Z()*l2.Position.Z() >= 0 {
		t.Errorf("lights 1 and 2 turned the same way: %v, %v", l1.Position, l2.Position)
	}
	l0, _ := reg.Get(0)
	if l0.Position != (mgl32.Vec3{100, 0, 0}) {
		t.Errorf("light 0 moved: %v", l0.Position)
	}
}

func TestDiscoSphereOrbit(t *testing.T) {
	for _, sec := range []float64{0, 1.5, 9} {
		p := discoSphereModel(sec).Col(3).Vec3()
		r := math.Hypot(float64(p.X()), float64(p.Z()))
		if math.Abs(r-discoOrbit) > 1e-2 || p.Y() != discoHeight {
			t.Errorf("t=%v: sphere at %v, want radius %v height %v", sec, p, discoOrbit, discoHeight)
		}
	}
}
