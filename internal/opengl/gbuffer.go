package opengl

import (
	"fmt"
	"log/slog"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/renderer"
)

const gbufferVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;
layout(location = 3) in vec4 inColor;

uniform mat4 model;
uniform mat4 view;
uniform mat4 proj;

out vec3 vViewPos;
out vec3 vViewNormal;
out vec2 vUV;
out vec3 vColor;

void main() {
    mat4 modelView = view * model;
    vec4 vp     = modelView * vec4(inPosition, 1.0);
    vViewPos    = vp.xyz;
    vViewNormal = mat3(transpose(inverse(modelView))) * inNormal;
    vUV         = inUV;
    vColor      = inColor.rgb;
    gl_Position = proj * vp;
}
` + "\x00"

const gbufferFragSrc = `
#version 410 core
in vec3 vViewPos;
in vec3 vViewNormal;
in vec2 vUV;
in vec3 vColor;

layout(location = 0) out vec4 outAlbedo;
layout(location = 1) out vec4 outNormal;
layout(location = 2) out vec4 outPosition;
layout(location = 3) out vec4 outAttribute;

uniform vec3      albedo;
uniform bool      textured;
uniform sampler2D albedoTex;  // unit 0
uniform float     far;
uniform float     caster;

void main() {
    vec3 c = albedo * vColor;
    if (textured) {
        c *= texture(albedoTex, vUV).rgb;
    }
    outAlbedo    = vec4(c, 1.0);
    outNormal    = vec4(normalize(vViewNormal), clamp(-vViewPos.z / far, 0.0, 1.0));
    outPosition  = vec4(vViewPos, 1.0);
    outAttribute = vec4(textured ? 1.0 : 0.0, caster, 0.0, 1.0);
}
` + "\x00"

// geometryPass renders both drawables into a four-target G-buffer.
type geometryPass struct {
	fbo      uint32
	albedo   uint32
	normal   uint32
	position uint32
	attrib   uint32
	depth    uint32
	width    int32
	height   int32

	prog      uint32
	viewLoc   int32
	projLoc   int32
	farLoc    int32
	casterLoc int32
	shader    *passShader
}

func newGeometryPass(width, height int) (*geometryPass, error) {
	p := &geometryPass{width: int32(width), height: int32(height)}

	prog, err := newProgram(gbufferVertSrc, gbufferFragSrc)
	if err != nil {
		return nil, fmt.Errorf("gbuffer shader: %w", err)
	}
	p.prog = prog
	p.viewLoc = uniform(prog, "view")
	p.projLoc = uniform(prog, "proj")
	p.farLoc = uniform(prog, "far")
	p.casterLoc = uniform(prog, "caster")
	p.shader = newPassShader(prog, 0)
	gl.UseProgram(prog)
	gl.Uniform1i(uniform(prog, "albedoTex"), 0)
	gl.UseProgram(0)

	p.albedo = colorTarget(width, height, gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE)
	p.normal = colorTarget(width, height, gl.RGBA16F, gl.RGBA, gl.FLOAT)
	p.position = colorTarget(width, height, gl.RGBA32F, gl.RGBA, gl.FLOAT)
	p.attrib = colorTarget(width, height, gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE)
	p.depth = colorTarget(width, height, gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT)

	p.fbo, err = newFramebuffer("gbuffer", p.depth, p.albedo, p.normal, p.position, p.attrib)
	if err != nil {
		p.Destroy()
		return nil, err
	}

	renderer.Logger().Debug("opengl: gbuffer allocated", slog.Int("width", width), slog.Int("height", height))
	return p, nil
}

var (
	clearZero   = [4]float32{0, 0, 0, 0}
	clearNormal = [4]float32{0, 0, 0, 1}
	clearDepth  = float32(1)
)

func (p *geometryPass) Render(view renderer.FrameView, casters, nonCasters renderer.Drawable) {
	saved := saveState()
	defer saved.restore()

	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, p.fbo)
	gl.Viewport(0, 0, p.width, p.height)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)

	gl.ClearBufferfv(gl.COLOR, 0, &clearZero[0])
	gl.ClearBufferfv(gl.COLOR, 1, &clearNormal[0])
	gl.ClearBufferfv(gl.COLOR, 2, &clearZero[0])
	gl.ClearBufferfv(gl.COLOR, 3, &clearZero[0])
	gl.ClearBufferfv(gl.DEPTH, 0, &clearDepth)

	gl.UseProgram(p.prog)
	setMat4(p.viewLoc, view.View)
	setMat4(p.projLoc, view.Projection)
	gl.Uniform1f(p.farLoc, view.Far)

	gl.Uniform1f(p.casterLoc, 1)
	p.resetMaterial()
	casters.Draw(p.shader)

	gl.Uniform1f(p.casterLoc, 0)
	p.resetMaterial()
	nonCasters.Draw(p.shader)
}

func (p *geometryPass) resetMaterial() {
	p.shader.SetModel(mgl32.Ident4())
	p.shader.SetColor(mgl32.Vec3{1, 1, 1})
	p.shader.SetTexture(0)
}

func (p *geometryPass) Targets() renderer.GBuffer {
	return renderer.GBuffer{
		Albedo:    renderer.Texture(p.albedo),
		Normal:    renderer.Texture(p.normal),
		Position:  renderer.Texture(p.position),
		Attribute: renderer.Texture(p.attrib),
		Width:     int(p.width),
		Height:    int(p.height),
	}
}

func (p *geometryPass) Destroy() {
	deleteFramebuffers(&p.fbo)
	deleteTextures(&p.albedo, &p.normal, &p.position, &p.attrib, &p.depth)
	deletePrograms(&p.prog)
}
