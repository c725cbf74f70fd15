package opengl

import (
	"fmt"
	"log/slog"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"deferred-engine/renderer"
	"deferred-engine/shading"
)

// ssaoFragSrc samples a hemisphere kernel around each G-buffer position and
// counts samples that land behind stored geometry.
const ssaoFragSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outAO;

uniform sampler2D gPosition;  // unit 0, view pos + coverage
uniform sampler2D gNormal;    // unit 1, view normal + linear depth
uniform sampler2D noiseTex;   // unit 2, 4x4 XY rotations
uniform vec3  kernel[64];
uniform int   kernelSize;
uniform mat4  proj;
uniform float radius;
uniform float bias;
uniform vec2  noiseScale;

void main() {
    vec4 p = texture(gPosition, fragUV);
    if (p.a == 0.0) { outAO = vec4(1.0); return; }

    vec3 pos = p.xyz;
    vec3 N   = normalize(texture(gNormal, fragUV).xyz);
    vec3 rnd = vec3(texture(noiseTex, fragUV * noiseScale).xy, 0.0);

    vec3 T   = normalize(rnd - N * dot(rnd, N));
    vec3 B   = cross(N, T);
    mat3 TBN = mat3(T, B, N);

    float occ = 0.0;
    for (int i = 0; i < kernelSize; i++) {
        vec3 s = pos + TBN * kernel[i] * radius;

        vec4 off = proj * vec4(s, 1.0);
        off.xyz /= off.w;
        vec2 suv = off.xy * 0.5 + 0.5;

        vec4 g = texture(gPosition, suv);
        if (g.a == 0.0) continue;

        float rng = smoothstep(0.0, 1.0, radius / max(abs(pos.z - g.z), 0.0001));
        occ += (g.z >= s.z + bias ? 1.0 : 0.0) * rng;
    }

    outAO = vec4(max(1.0 - occ / float(kernelSize), 0.0), 0.0, 0.0, 1.0);
}
` + "\x00"

// ssaoBlurFragSrc is a 4x4 box blur that drops neighbours across depth
// discontinuities. threshold is relative to the centre depth.
const ssaoBlurFragSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outAO;

uniform sampler2D aoTex;    // unit 0
uniform sampler2D gNormal;  // unit 1, linear depth in a
uniform float threshold;

void main() {
    vec2  texel  = 1.0 / vec2(textureSize(aoTex, 0));
    float centre = texture(gNormal, fragUV).a;
    float limit  = threshold * centre;
    float sum    = 0.0;
    float weight = 0.0;
    for (int y = -2; y < 2; y++) {
        for (int x = -2; x < 2; x++) {
            vec2 uv = fragUV + vec2(x, y) * texel;
            if (abs(texture(gNormal, uv).a - centre) > limit) continue;
            sum    += texture(aoTex, uv).r;
            weight += 1.0;
        }
    }
    outAO = vec4(sum / max(weight, 1.0), 0.0, 0.0, 1.0);
}
` + "\x00"

// occlusionPass computes raw and blurred SSAO at its own resolution.
type occlusionPass struct {
	rawFBO  uint32
	rawTex  uint32
	blurFBO uint32
	blurTex uint32
	width   int32
	height  int32

	ssaoProg      uint32
	kernelSizeLoc int32
	projLoc       int32
	radiusLoc     int32
	biasLoc       int32
	noiseScaleLoc int32

	blurProg  uint32
	threshLoc int32
	noiseTex  uint32
	quadVAO   uint32
	params    renderer.SSAOParams
}

func newOcclusionPass(width, height int, p renderer.SSAOParams, quadVAO uint32) (*occlusionPass, error) {
	s := &occlusionPass{width: int32(width), height: int32(height), params: p, quadVAO: quadVAO}

	prog, err := newProgram(fullscreenVertSrc, ssaoFragSrc)
	if err != nil {
		return nil, fmt.Errorf("ssao shader: %w", err)
	}
	s.ssaoProg = prog
	s.kernelSizeLoc = uniform(prog, "kernelSize")
	s.projLoc = uniform(prog, "proj")
	s.radiusLoc = uniform(prog, "radius")
	s.biasLoc = uniform(prog, "bias")
	s.noiseScaleLoc = uniform(prog, "noiseScale")

	kernel := shading.Kernel(p.KernelSize)
	gl.UseProgram(prog)
	gl.Uniform1i(uniform(prog, "gPosition"), 0)
	gl.Uniform1i(uniform(prog, "gNormal"), 1)
	gl.Uniform1i(uniform(prog, "noiseTex"), 2)
	gl.Uniform3fv(uniform(prog, "kernel"), int32(len(kernel)), &kernel[0][0])
	gl.Uniform1i(s.kernelSizeLoc, int32(len(kernel)))

	blur, err := newProgram(fullscreenVertSrc, ssaoBlurFragSrc)
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("ssao blur shader: %w", err)
	}
	s.blurProg = blur
	s.threshLoc = uniform(blur, "threshold")
	gl.UseProgram(blur)
	gl.Uniform1i(uniform(blur, "aoTex"), 0)
	gl.Uniform1i(uniform(blur, "gNormal"), 1)
	gl.UseProgram(0)

	s.noiseTex = newNoiseTexture()

	s.rawTex = colorTarget(width, height, gl.R16F, gl.RED, gl.FLOAT)
	s.blurTex = colorTarget(width, height, gl.R16F, gl.RED, gl.FLOAT)
	if s.rawFBO, err = newFramebuffer("ssao", 0, s.rawTex); err != nil {
		s.Destroy()
		return nil, err
	}
	if s.blurFBO, err = newFramebuffer("ssao blur", 0, s.blurTex); err != nil {
		s.Destroy()
		return nil, err
	}

	renderer.Logger().Debug("opengl: ssao targets allocated",
		slog.Int("width", width), slog.Int("height", height), slog.Int("kernel", len(kernel)))
	return s, nil
}

func newNoiseTexture() uint32 {
	noise := shading.Noise()
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB32F, shading.NoiseSize, shading.NoiseSize, 0, gl.RGB, gl.FLOAT, gl.Ptr(&noise[0][0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func (s *occlusionPass) begin(fbo uint32) savedState {
	saved := saveState()
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, fbo)
	gl.Viewport(0, 0, s.width, s.height)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.BindVertexArray(s.quadVAO)
	return saved
}

func (s *occlusionPass) Compute(g renderer.GBuffer, view renderer.FrameView) {
	saved := s.begin(s.rawFBO)
	defer saved.restore()

	gl.UseProgram(s.ssaoProg)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(g.Position))
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, uint32(g.Normal))
	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, s.noiseTex)

	setMat4(s.projLoc, view.Projection)
	gl.Uniform1f(s.radiusLoc, s.params.Radius)
	gl.Uniform1f(s.biasLoc, s.params.Bias)
	gl.Uniform2f(s.noiseScaleLoc, float32(s.width)/shading.NoiseSize, float32(s.height)/shading.NoiseSize)

	gl.DrawArrays(gl.TRIANGLES, 0, 3)
}

func (s *occlusionPass) Blur(g renderer.GBuffer) {
	saved := s.begin(s.blurFBO)
	defer saved.restore()

	gl.UseProgram(s.blurProg)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, s.rawTex)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, uint32(g.Normal))
	gl.Uniform1f(s.threshLoc, s.params.BlurThreshold)

	gl.DrawArrays(gl.TRIANGLES, 0, 3)
}

func (s *occlusionPass) Fill(value float32) {
	saved := saveState()
	defer saved.restore()

	c := [4]float32{value, value, value, value}
	for _, fbo := range [...]uint32{s.rawFBO, s.blurFBO} {
		gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, fbo)
		gl.ClearBufferfv(gl.COLOR, 0, &c[0])
	}
}

func (s *occlusionPass) Raw() renderer.Texture     { return renderer.Texture(s.rawTex) }
func (s *occlusionPass) Blurred() renderer.Texture { return renderer.Texture(s.blurTex) }

func (s *occlusionPass) Destroy() {
	deleteFramebuffers(&s.rawFBO, &s.blurFBO)
	deleteTextures(&s.rawTex, &s.blurTex, &s.noiseTex)
	deletePrograms(&s.ssaoProg, &s.blurProg)
}
