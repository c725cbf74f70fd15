package opengl

import (
	"fmt"
	"log/slog"
	"math"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/renderer"
	"deferred-engine/scene"
	"deferred-engine/shading"
)

const lightVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;

uniform mat4 model;
uniform mat4 viewProj;

void main() {
    gl_Position = viewProj * model * vec4(inPosition, 1.0);
}
` + "\x00"

// lightFragSrc shades one point light from the G-buffer. Outputs are
// blended additively: light colour into 0, shadowing into 1.
const lightFragSrc = `
#version 410 core
layout(location = 0) out vec4 outLight;
layout(location = 1) out vec4 outShadow;

uniform sampler2D   gPosition;  // unit 0
uniform sampler2D   gNormal;    // unit 1
uniform samplerCube shadowMap;  // unit 2

uniform vec2  screenSize;
uniform mat4  invView;
uniform vec3  lightViewPos;
uniform vec3  lightWorldPos;
uniform vec3  color;
uniform float brightness;
uniform float radius;

uniform bool  hasShadow;
uniform float shadowNear;
uniform float shadowFar;
uniform float shadowBias;
uniform float pcfSpread;

const vec3 pcfOffsets[4] = vec3[4](
    vec3( 1.0,  1.0,  1.0),
    vec3( 1.0, -1.0, -1.0),
    vec3(-1.0,  1.0, -1.0),
    vec3(-1.0, -1.0,  1.0)
);

float attenuation(float d) {
    if (d >= radius) return 0.0;
    float r = d / radius;
    float w = clamp(1.0 - r * r * r * r, 0.0, 1.0);
    return brightness / (1.0 + d * d) * w * w;
}

float cubeDepth(vec3 v) {
    float z   = max(max(abs(v.x), abs(v.y)), abs(v.z));
    float ndc = (shadowFar + shadowNear) / (shadowFar - shadowNear)
              - (2.0 * shadowFar * shadowNear) / ((shadowFar - shadowNear) * z);
    return ndc * 0.5 + 0.5;
}

float linearizeCubeDepth(float depth) {
    float ndc = depth * 2.0 - 1.0;
    return 2.0 * shadowFar * shadowNear / (shadowFar + shadowNear - ndc * (shadowFar - shadowNear));
}

float visibility(vec3 worldPos) {
    vec3  v       = worldPos - lightWorldPos;
    float surface = linearizeCubeDepth(cubeDepth(v));
    float spread  = length(v) * pcfSpread;
    float vis     = 0.0;
    for (int i = 0; i < 4; i++) {
        float stored = linearizeCubeDepth(texture(shadowMap, v + pcfOffsets[i] * spread).r);
        vis += (surface * (1.0 - shadowBias) <= stored) ? 1.0 : 0.0;
    }
    return vis / 4.0;
}

void main() {
    vec2 uv = gl_FragCoord.xy / screenSize;
    vec4 p  = texture(gPosition, uv);
    if (p.a == 0.0) discard;

    vec3  L = lightViewPos - p.xyz;
    float d = length(L);
    float a = attenuation(d);
    if (d <= 0.0 || a <= 0.0) discard;

    vec3  N   = normalize(texture(gNormal, uv).xyz);
    float ndl = max(dot(N, L / d), 0.0);

    float vis = 1.0;
    if (hasShadow) {
        vis = visibility((invView * vec4(p.xyz, 1.0)).xyz);
    }

    outLight  = vec4(color * (a * ndl * vis), 1.0);
    outShadow = vec4(hasShadow ? 1.0 - vis : 0.0, 0.0, 0.0, 1.0);
}
` + "\x00"

// volumeSegments tessellates the light volume. A facet centre sits at
// cos² of half a step from the centre, so the mesh is scaled by the inverse
// to enclose the whole sphere.
const volumeSegments = 16

var volumeScale = float32(1 / (math.Cos(math.Pi/volumeSegments) * math.Cos(math.Pi/volumeSegments)))

// lightingPass accumulates every drawn light into an HDR target by
// rasterising one bounding sphere per light.
type lightingPass struct {
	fbo       uint32
	lightTex  uint32
	shadowTex uint32
	width     int32
	height    int32
	params    renderer.LightingParams

	prog          uint32
	modelLoc      int32
	viewProjLoc   int32
	screenLoc     int32
	invViewLoc    int32
	lightViewLoc  int32
	lightWorldLoc int32
	colorLoc      int32
	brightLoc     int32
	radiusLoc     int32
	hasShadowLoc  int32
	nearLoc       int32
	farLoc        int32
	biasLoc       int32

	meshes *Meshes
	volume *scene.Mesh
}

func newLightingPass(width, height int, p renderer.LightingParams, meshes *Meshes) (*lightingPass, error) {
	l := &lightingPass{
		width:  int32(width),
		height: int32(height),
		params: p,
		meshes: meshes,
		volume: scene.CreateSphere(1, volumeSegments, volumeSegments/2),
	}

	prog, err := newProgram(lightVertSrc, lightFragSrc)
	if err != nil {
		return nil, fmt.Errorf("lighting shader: %w", err)
	}
	l.prog = prog
	l.modelLoc = uniform(prog, "model")
	l.viewProjLoc = uniform(prog, "viewProj")
	l.screenLoc = uniform(prog, "screenSize")
	l.invViewLoc = uniform(prog, "invView")
	l.lightViewLoc = uniform(prog, "lightViewPos")
	l.lightWorldLoc = uniform(prog, "lightWorldPos")
	l.colorLoc = uniform(prog, "color")
	l.brightLoc = uniform(prog, "brightness")
	l.radiusLoc = uniform(prog, "radius")
	l.hasShadowLoc = uniform(prog, "hasShadow")
	l.nearLoc = uniform(prog, "shadowNear")
	l.farLoc = uniform(prog, "shadowFar")
	l.biasLoc = uniform(prog, "shadowBias")

	gl.UseProgram(prog)
	gl.Uniform1i(uniform(prog, "gPosition"), 0)
	gl.Uniform1i(uniform(prog, "gNormal"), 1)
	gl.Uniform1i(uniform(prog, "shadowMap"), 2)
	gl.Uniform1f(uniform(prog, "pcfSpread"), shading.PCFSpread)
	gl.Uniform1f(l.nearLoc, shading.ShadowNear)
	gl.Uniform1f(l.biasLoc, p.ShadowBias)
	gl.UseProgram(0)

	l.lightTex = colorTarget(width, height, gl.RGBA16F, gl.RGBA, gl.FLOAT)
	l.shadowTex = colorTarget(width, height, gl.R16F, gl.RED, gl.FLOAT)
	if l.fbo, err = newFramebuffer("lighting", 0, l.lightTex, l.shadowTex); err != nil {
		l.Destroy()
		return nil, err
	}

	renderer.Logger().Debug("opengl: light accumulation allocated", slog.Int("width", width), slog.Int("height", height))
	return l, nil
}

func (l *lightingPass) Accumulate(lights []renderer.LightDraw, g renderer.GBuffer, view renderer.FrameView) {
	saved := saveState()
	defer saved.restore()

	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, l.fbo)
	gl.Viewport(0, 0, l.width, l.height)

	ambient := [4]float32{l.params.Ambient[0], l.params.Ambient[1], l.params.Ambient[2], 1}
	gl.ClearBufferfv(gl.COLOR, 0, &ambient[0])
	gl.ClearBufferfv(gl.COLOR, 1, &clearZero[0])
	if len(lights) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.DEPTH_CLAMP)
	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.ONE, gl.ONE)
	// Back faces only, so a camera inside a volume still covers the screen.
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.FRONT)

	gl.UseProgram(l.prog)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(g.Position))
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, uint32(g.Normal))

	gl.Uniform2f(l.screenLoc, float32(l.width), float32(l.height))
	setMat4(l.viewProjLoc, view.ViewProjection)
	setMat4(l.invViewLoc, view.View.Inv())

	for i := range lights {
		ld := &lights[i]
		model := mgl32.Translate3D(ld.Position[0], ld.Position[1], ld.Position[2]).
			Mul4(mgl32.Scale3D(ld.Radius*volumeScale, ld.Radius*volumeScale, ld.Radius*volumeScale))
		setMat4(l.modelLoc, model)
		setVec3(l.lightViewLoc, view.View.Mul4x1(ld.Position.Vec4(1)).Vec3())
		setVec3(l.lightWorldLoc, ld.Position)
		setVec3(l.colorLoc, ld.Color)
		gl.Uniform1f(l.brightLoc, ld.Brightness)
		gl.Uniform1f(l.radiusLoc, ld.Radius)

		gl.Uniform1i(l.hasShadowLoc, boolToInt32(ld.Shadow != nil))
		if ld.Shadow != nil {
			gl.Uniform1f(l.farLoc, ld.ShadowFar())
			gl.ActiveTexture(gl.TEXTURE2)
			gl.BindTexture(gl.TEXTURE_CUBE_MAP, uint32(ld.Shadow.Texture()))
		}

		l.meshes.Draw(l.volume)
	}
}

func (l *lightingPass) Light() renderer.Texture  { return renderer.Texture(l.lightTex) }
func (l *lightingPass) Shadow() renderer.Texture { return renderer.Texture(l.shadowTex) }

func (l *lightingPass) Destroy() {
	if l.meshes != nil && l.volume != nil {
		l.meshes.Release(l.volume)
	}
	deleteFramebuffers(&l.fbo)
	deleteTextures(&l.lightTex, &l.shadowTex)
	deletePrograms(&l.prog)
}
