package shading

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MaxKernelSize     = 64
	DefaultKernelSize = 32
	NoiseSize         = 4

	DefaultSSAORadius = float32(0.5)
	DefaultSSAOBias   = float32(0.025)

	// DefaultBlurDepthThreshold is the linear-depth difference, as a fraction
	// of the centre depth, above which a neighbour is left out of the
	// occlusion blur.
	DefaultBlurDepthThreshold = float32(0.02)
	// BlurExtent is the side of the square occlusion blur window.
	BlurExtent = 4

	kernelSeed = 42
	noiseSeed  = 123
)

// ClampKernelSize keeps a sample count inside [1, MaxKernelSize].
func ClampKernelSize(n int) int {
	switch {
	case n < 1:
		return 1
	case n > MaxKernelSize:
		return MaxKernelSize
	}
	return n
}

// Kernel returns n hemisphere sample offsets around +Z. Samples are
// deterministic and cluster towards the origin (scale lerp(0.1, 1, t²)) so
// that contact occlusion gets most of the budget.
func Kernel(n int) []mgl32.Vec3 {
	n = ClampKernelSize(n)
	rng := rand.New(rand.NewSource(kernelSeed))

	kernel := make([]mgl32.Vec3, n)
	for i := range kernel {
		v := mgl32.Vec3{
			rng.Float32()*2 - 1,
			rng.Float32()*2 - 1,
			rng.Float32(),
		}
		if v.Len() == 0 {
			v = mgl32.Vec3{0, 0, 1}
		}
		v = v.Normalize().Mul(rng.Float32())

		t := float32(i) / float32(n)
		v = v.Mul(0.1 + 0.9*t*t)
		kernel[i] = v
	}
	return kernel
}

// Noise returns the NoiseSize×NoiseSize tile of random XY rotation vectors
// (Z = 0) that is repeated over the screen to decorrelate neighbouring
// pixels' kernels.
func Noise() []mgl32.Vec3 {
	rng := rand.New(rand.NewSource(noiseSeed))
	noise := make([]mgl32.Vec3, NoiseSize*NoiseSize)
	for i := range noise {
		noise[i] = mgl32.Vec3{rng.Float32()*2 - 1, rng.Float32()*2 - 1, 0}
	}
	return noise
}

// Occlusion turns a count of occluding kernel samples into the value the
// SSAO pass writes: 1 means unoccluded.
func Occlusion(occluded float32, samples int) float32 {
	if samples <= 0 {
		return 1
	}
	ao := 1 - occluded/float32(samples)
	if ao < 0 {
		return 0
	}
	return ao
}

// RangeCheck fades out occlusion from geometry much further away than the
// sampling radius, matching smoothstep(0, 1, radius/|Δz|) in the shader.
func RangeCheck(radius, dz float32) float32 {
	if dz < 0 {
		dz = -dz
	}
	if dz < 1e-4 {
		dz = 1e-4
	}
	x := radius / dz
	if x >= 1 {
		return 1
	}
	return x * x * (3 - 2*x)
}

// BlurOcclusion is the depth-aware box blur applied to the raw occlusion
// buffer. ao and depth are row-major w×h images; depth is linear. For each
// pixel, the BlurExtent×BlurExtent window is averaged, skipping neighbours
// whose depth differs from the centre by more than threshold times the
// centre depth.
func BlurOcclusion(ao, depth []float32, w, h int, threshold float32) []float32 {
	out := make([]float32, len(ao))
	lo := -BlurExtent / 2
	hi := lo + BlurExtent
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := depth[y*w+x]
			limit := threshold * c
			var sum, weight float32
			for dy := lo; dy < hi; dy++ {
				for dx := lo; dx < hi; dx++ {
					sx := clampInt(x+dx, 0, w-1)
					sy := clampInt(y+dy, 0, h-1)
					i := sy*w + sx
					if abs32(depth[i]-c) > limit {
						continue
					}
					sum += ao[i]
					weight++
				}
			}
			out[y*w+x] = sum / weight
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
