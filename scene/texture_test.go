package scene

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDecodeTexture(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	tex, err := DecodeTexture("px", &buf)
	if err != nil {
		t.Fatal(err)
	}
	if tex.Width != 3 || tex.Height != 2 || len(tex.Pixels) != 3*2*4 {
		t.Fatalf("texture %dx%d with %d bytes", tex.Width, tex.Height, len(tex.Pixels))
	}
	i := (1*3 + 2) * 4
	if got := tex.Pixels[i : i+4]; !bytes.Equal(got, []byte{10, 20, 30, 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestTextureDownscale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, MaxTextureSize*2, 8))
	tex := NewTextureFromImage("wide", img)
	if tex.Width != MaxTextureSize || tex.Height != 4 {
		t.Errorf("size = %dx%d, want %dx4", tex.Width, tex.Height, MaxTextureSize)
	}
}

func TestNoiseTexture(t *testing.T) {
	a := mgl32.Vec3{0, 0, 0}
	b := mgl32.Vec3{1, 0.5, 0}
	tex := NewNoiseTexture("marble", 32, 9, a, b)
	if tex.Width != 32 || len(tex.Pixels) != 32*32*4 {
		t.Fatalf("texture %dx%d with %d bytes", tex.Width, tex.Height, len(tex.Pixels))
	}
	varied := false
	for i := 0; i < len(tex.Pixels); i += 4 {
		r, g, bl, al := tex.Pixels[i], tex.Pixels[i+1], tex.Pixels[i+2], tex.Pixels[i+3]
		if bl != 0 || al != 255 || g > r {
			t.Fatalf("pixel %d = %v outside the a..b ramp", i/4, tex.Pixels[i:i+4])
		}
		if r != tex.Pixels[0] {
			varied = true
		}
	}
	if !varied {
		t.Error("noise texture is flat")
	}

	again := NewNoiseTexture("marble", 32, 9, a, b)
	if !bytes.Equal(tex.Pixels, again.Pixels) {
		t.Error("same seed produced different pixels")
	}
}
