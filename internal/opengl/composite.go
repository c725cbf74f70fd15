package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"deferred-engine/renderer"
	"deferred-engine/shading"
)

const (
	presentComposite int32 = iota
	presentRGB
	presentR
	presentA
)

// compositeFragSrc either tone-maps albedo × ao × light or shows one
// intermediate buffer with a channel swizzle.
const compositeFragSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform int       mode;      // 0 composite, 1 rgb, 2 red, 3 alpha
uniform sampler2D source;    // unit 0
uniform sampler2D albedo;    // unit 1
uniform sampler2D lightTex;  // unit 2
uniform sampler2D aoTex;     // unit 3
uniform bool      aoEnabled;
uniform float     exposure;
uniform float     gamma;

void main() {
    if (mode == 0) {
        vec3  c  = texture(albedo, fragUV).rgb * texture(lightTex, fragUV).rgb;
        float ao = aoEnabled ? texture(aoTex, fragUV).r : 1.0;
        vec3  m  = 1.0 - exp(-max(c * ao, 0.0) * exposure);
        outColor = vec4(pow(m, vec3(1.0 / gamma)), 1.0);
        return;
    }
    vec4 s = texture(source, fragUV);
    if (mode == 2) {
        outColor = vec4(s.rrr, 1.0);
    } else if (mode == 3) {
        outColor = vec4(s.aaa, 1.0);
    } else {
        outColor = vec4(s.rgb, 1.0);
    }
}
` + "\x00"

// compositor writes the final image or a debug view to the default
// framebuffer.
type compositor struct {
	width  int32
	height int32

	prog        uint32
	modeLoc     int32
	aoEnLoc     int32
	exposureLoc int32
	quadVAO     uint32
}

func newCompositor(width, height int, quadVAO uint32) (*compositor, error) {
	prog, err := newProgram(fullscreenVertSrc, compositeFragSrc)
	if err != nil {
		return nil, fmt.Errorf("composite shader: %w", err)
	}
	c := &compositor{
		width:       int32(width),
		height:      int32(height),
		prog:        prog,
		modeLoc:     uniform(prog, "mode"),
		aoEnLoc:     uniform(prog, "aoEnabled"),
		exposureLoc: uniform(prog, "exposure"),
		quadVAO:     quadVAO,
	}
	gl.UseProgram(prog)
	gl.Uniform1i(uniform(prog, "source"), 0)
	gl.Uniform1i(uniform(prog, "albedo"), 1)
	gl.Uniform1i(uniform(prog, "lightTex"), 2)
	gl.Uniform1i(uniform(prog, "aoTex"), 3)
	gl.Uniform1f(uniform(prog, "gamma"), shading.DisplayGamma)
	gl.UseProgram(0)
	return c, nil
}

func presentMode(v renderer.View) int32 {
	if v.Composite() {
		return presentComposite
	}
	switch v.Channel {
	case renderer.ChannelR:
		return presentR
	case renderer.ChannelA:
		return presentA
	}
	return presentRGB
}

func (c *compositor) Present(v renderer.View, in renderer.CompositeInputs) {
	saved := saveState()
	defer saved.restore()

	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.Viewport(0, 0, c.width, c.height)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.UseProgram(c.prog)
	gl.BindVertexArray(c.quadVAO)

	gl.Uniform1i(c.modeLoc, presentMode(v))
	gl.Uniform1i(c.aoEnLoc, boolToInt32(in.AOEnabled))
	gl.Uniform1f(c.exposureLoc, in.Exposure)

	for unit, tex := range [...]renderer.Texture{v.Source, in.Albedo, in.Light, in.AO} {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
	}

	gl.DrawArrays(gl.TRIANGLES, 0, 3)
}

func (c *compositor) Destroy() {
	deletePrograms(&c.prog)
}
