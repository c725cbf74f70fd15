package shading

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultExposure float32 = 1.0
	DisplayGamma    float32 = 2.2
)

// ToneMap maps an HDR colour into [0,1] with exponential exposure and
// gamma 2.2, as the composite shader does.
func ToneMap(hdr mgl32.Vec3, exposure float32) mgl32.Vec3 {
	var out mgl32.Vec3
	for i := range out {
		v := hdr[i]
		if v < 0 {
			v = 0
		}
		m := 1 - math.Exp(-float64(v*exposure))
		out[i] = float32(math.Pow(m, 1/float64(DisplayGamma)))
	}
	return out
}

// Composite combines albedo, occlusion and accumulated light into a display
// colour. With aoEnabled false the occlusion input is ignored entirely.
func Composite(albedo, light mgl32.Vec3, ao float32, aoEnabled bool, exposure float32) mgl32.Vec3 {
	if !aoEnabled {
		ao = 1
	}
	hdr := mgl32.Vec3{albedo[0] * light[0], albedo[1] * light[1], albedo[2] * light[2]}.Mul(ao)
	return ToneMap(hdr, exposure)
}
