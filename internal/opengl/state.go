package opengl

import gl "github.com/go-gl/gl/v4.1-core/gl"

// savedTextureUnits is how many texture units passes bind (0..3).
const savedTextureUnits = 4

// savedCapabilities are the gl.Enable flags passes toggle.
var savedCapabilities = [...]uint32{gl.DEPTH_TEST, gl.DEPTH_CLAMP, gl.BLEND, gl.CULL_FACE}

// savedState is the GL state every pass may change. Passes capture it on
// entry and put it back on exit, so callers never see a pass's bindings.
type savedState struct {
	fbo      int32
	viewport [4]int32
	program  int32
	vao      int32

	activeTexture int32
	tex2D         [savedTextureUnits]int32
	texCube       [savedTextureUnits]int32

	blendSrcRGB   int32
	blendDstRGB   int32
	blendSrcAlpha int32
	blendDstAlpha int32
	blendEqRGB    int32
	blendEqAlpha  int32

	depthFunc int32
	depthMask bool
	cullMode  int32

	enabled [len(savedCapabilities)]bool
}

func saveState() savedState {
	var s savedState
	gl.GetIntegerv(gl.DRAW_FRAMEBUFFER_BINDING, &s.fbo)
	gl.GetIntegerv(gl.VIEWPORT, &s.viewport[0])
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &s.program)
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &s.vao)

	gl.GetIntegerv(gl.ACTIVE_TEXTURE, &s.activeTexture)
	for i := range savedTextureUnits {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &s.tex2D[i])
		gl.GetIntegerv(gl.TEXTURE_BINDING_CUBE_MAP, &s.texCube[i])
	}
	gl.ActiveTexture(uint32(s.activeTexture))

	gl.GetIntegerv(gl.BLEND_SRC_RGB, &s.blendSrcRGB)
	gl.GetIntegerv(gl.BLEND_DST_RGB, &s.blendDstRGB)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &s.blendSrcAlpha)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &s.blendDstAlpha)
	gl.GetIntegerv(gl.BLEND_EQUATION_RGB, &s.blendEqRGB)
	gl.GetIntegerv(gl.BLEND_EQUATION_ALPHA, &s.blendEqAlpha)

	gl.GetIntegerv(gl.DEPTH_FUNC, &s.depthFunc)
	gl.GetBooleanv(gl.DEPTH_WRITEMASK, &s.depthMask)
	gl.GetIntegerv(gl.CULL_FACE_MODE, &s.cullMode)

	for i, c := range savedCapabilities {
		s.enabled[i] = gl.IsEnabled(c)
	}
	return s
}

func (s savedState) restore() {
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, uint32(s.fbo))
	gl.Viewport(s.viewport[0], s.viewport[1], s.viewport[2], s.viewport[3])
	gl.UseProgram(uint32(s.program))
	gl.BindVertexArray(uint32(s.vao))

	for i := range savedTextureUnits {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, uint32(s.tex2D[i]))
		gl.BindTexture(gl.TEXTURE_CUBE_MAP, uint32(s.texCube[i]))
	}
	gl.ActiveTexture(uint32(s.activeTexture))

	gl.BlendFuncSeparate(uint32(s.blendSrcRGB), uint32(s.blendDstRGB), uint32(s.blendSrcAlpha), uint32(s.blendDstAlpha))
	gl.BlendEquationSeparate(uint32(s.blendEqRGB), uint32(s.blendEqAlpha))

	gl.DepthFunc(uint32(s.depthFunc))
	gl.DepthMask(s.depthMask)
	gl.CullFace(uint32(s.cullMode))

	for i, c := range savedCapabilities {
		setEnabled(c, s.enabled[i])
	}
}

func setEnabled(flag uint32, on bool) {
	if on {
		gl.Enable(flag)
	} else {
		gl.Disable(flag)
	}
}
