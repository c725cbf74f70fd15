package opengl

import (
	"fmt"
	"log/slog"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/renderer"
	"deferred-engine/shading"
)

const shadowVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;

uniform mat4 model;
uniform mat4 faceViewProj;

void main() {
    gl_Position = faceViewProj * model * vec4(inPosition, 1.0);
}
` + "\x00"

// Depth only; the fixed-function depth write is what the lighting pass
// compares against.
const shadowFragSrc = `
#version 410 core
void main() {}
` + "\x00"

// shadowProgram is shared by every cube map of a backend.
type shadowProgram struct {
	prog      uint32
	faceVPLoc int32
	shader    *passShader
}

func newShadowProgram() (*shadowProgram, error) {
	prog, err := newProgram(shadowVertSrc, shadowFragSrc)
	if err != nil {
		return nil, fmt.Errorf("shadow shader: %w", err)
	}
	return &shadowProgram{
		prog:      prog,
		faceVPLoc: uniform(prog, "faceViewProj"),
		shader:    newPassShader(prog, 0),
	}, nil
}

func (p *shadowProgram) Destroy() {
	deletePrograms(&p.prog)
}

// cubeShadow is a depth cube map captured from a point light. The depth
// texture is sampled without hardware comparison so the lighting shader can
// do its own biased PCF.
type cubeShadow struct {
	fbo  uint32
	cube uint32
	size int32
	prog *shadowProgram
}

func newCubeShadow(size int, prog *shadowProgram) (*cubeShadow, error) {
	s := &cubeShadow{size: int32(size), prog: prog}

	gl.GenTextures(1, &s.cube)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, s.cube)
	for f := 0; f < shading.CubeFaceCount; f++ {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(f), 0, gl.DEPTH_COMPONENT32F,
			int32(size), int32(size), 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	gl.GenFramebuffers(1, &s.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_CUBE_MAP_POSITIVE_X, s.cube, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		s.Destroy()
		return nil, fmt.Errorf("shadow framebuffer incomplete: status=0x%X", status)
	}

	renderer.Logger().Debug("opengl: cube shadow map allocated", slog.Int("size", size))
	return s, nil
}

func (s *cubeShadow) Update(lightPos mgl32.Vec3, radius float32, casters renderer.Drawable) {
	saved := saveState()
	defer saved.restore()

	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, s.fbo)
	gl.Viewport(0, 0, s.size, s.size)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.UseProgram(s.prog.prog)

	vps := shading.CubeViewProjections(lightPos, shading.ShadowNear, shading.ShadowFar(radius))
	for f, vp := range vps {
		gl.FramebufferTexture2D(gl.DRAW_FRAMEBUFFER, gl.DEPTH_ATTACHMENT,
			gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(f), s.cube, 0)
		gl.Clear(gl.DEPTH_BUFFER_BIT)
		setMat4(s.prog.faceVPLoc, vp)
		s.prog.shader.SetModel(mgl32.Ident4())
		casters.Draw(s.prog.shader)
	}
}

func (s *cubeShadow) Texture() renderer.Texture { return renderer.Texture(s.cube) }

func (s *cubeShadow) Destroy() {
	deleteFramebuffers(&s.fbo)
	deleteTextures(&s.cube)
}
