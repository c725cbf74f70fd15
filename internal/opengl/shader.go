package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/renderer"
)

// passShader is the renderer.Shader handed to drawables. Uniforms the
// bound program lacks have location -1 and are skipped.
type passShader struct {
	modelLoc    int32
	colorLoc    int32
	texturedLoc int32
	textureUnit uint32
}

func newPassShader(prog uint32, textureUnit uint32) *passShader {
	return &passShader{
		modelLoc:    uniform(prog, "model"),
		colorLoc:    uniform(prog, "albedo"),
		texturedLoc: uniform(prog, "textured"),
		textureUnit: textureUnit,
	}
}

func (s *passShader) SetModel(model mgl32.Mat4) {
	setMat4(s.modelLoc, model)
}

func (s *passShader) SetColor(color mgl32.Vec3) {
	if s.colorLoc >= 0 {
		setVec3(s.colorLoc, color)
	}
}

func (s *passShader) SetTexture(tex renderer.Texture) {
	if s.texturedLoc < 0 {
		return
	}
	gl.Uniform1i(s.texturedLoc, boolToInt32(tex != 0))
	if tex != 0 {
		gl.ActiveTexture(gl.TEXTURE0 + s.textureUnit)
		gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
	}
}
