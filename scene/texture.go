package scene

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ojrac/opensimplex-go"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

// MaxTextureSize bounds the larger side of loaded textures; bigger images
// are downscaled on load.
const MaxTextureSize = 2048

// Texture holds CPU-side RGBA8 pixels, rows top to bottom.
// GLID is set by the GL backend after upload.
type Texture struct {
	Name   string
	Width  int
	Height int
	Pixels []byte

	GLID uint32
}

// LoadTexture reads a PNG, JPEG or BMP file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	tex, err := DecodeTexture(path, f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	return tex, nil
}

// DecodeTexture decodes an encoded image from r.
func DecodeTexture(name string, r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return NewTextureFromImage(name, img), nil
}

func decodeImageBytes(name string, data []byte) (*Texture, error) {
	return DecodeTexture(name, bytes.NewReader(data))
}

// NewTextureFromImage converts img to RGBA8, downscaling it with a
// Catmull-Rom filter when a side exceeds MaxTextureSize.
func NewTextureFromImage(name string, img image.Image) *Texture {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > MaxTextureSize || h > MaxTextureSize {
		s := float64(MaxTextureSize) / float64(max(w, h))
		w, h = max(int(float64(w)*s), 1), max(int(float64(h)*s), 1)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	} else {
		xdraw.CatmullRom.Scale(rgba, rgba.Bounds(), img, b, xdraw.Src, nil)
	}
	return &Texture{Name: name, Width: w, Height: h, Pixels: rgba.Pix}
}

// NewSolidTexture creates a 1x1 texture.
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	return &Texture{Name: name, Width: 1, Height: 1, Pixels: []byte{r, g, b, a}}
}

// NewNoiseTexture generates a marble-like texture by blending
// from a to b with four octaves of simplex noise.
func NewNoiseTexture(name string, size int, seed int64, a, b mgl32.Vec3) *Texture {
	size = max(size, 1)
	noise := opensimplex.New32(seed)
	pix := make([]byte, size*size*4)

	const octaves = 4
	for y := range size {
		for x := range size {
			fx := float32(x) / float32(size) * 8
			fy := float32(y) / float32(size) * 8

			var v, amp, norm float32 = 0, 1, 0
			freq := float32(1)
			for range octaves {
				v += noise.Eval2(fx*freq, fy*freq) * amp
				norm += amp
				amp *= 0.5
				freq *= 2
			}
			t := mgl32.Clamp(v/norm*0.5+0.5, 0, 1)

			c := a.Mul(1 - t).Add(b.Mul(t))
			i := (y*size + x) * 4
			pix[i+0] = toByte(c[0])
			pix[i+1] = toByte(c[1])
			pix[i+2] = toByte(c[2])
			pix[i+3] = 255
		}
	}
	return &Texture{Name: name, Width: size, Height: size, Pixels: pix}
}

func toByte(v float32) byte {
	return byte(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}
