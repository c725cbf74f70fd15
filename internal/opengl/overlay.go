package opengl

import (
	"fmt"
	"image"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

const overlayVertSrc = `
#version 410 core
out vec2 fragUV;

uniform vec4 rect;  // x0, y0, x1, y1 in NDC

void main() {
    const vec2 corners[4] = vec2[4](
        vec2(0.0, 0.0), vec2(1.0, 0.0), vec2(0.0, 1.0), vec2(1.0, 1.0)
    );
    vec2 c      = corners[gl_VertexID];
    fragUV      = vec2(c.x, 1.0 - c.y);
    gl_Position = vec4(mix(rect.xy, rect.zw, c), 0.0, 1.0);
}
` + "\x00"

const overlayFragSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform sampler2D panel;

void main() {
    outColor = texture(panel, fragUV);
}
` + "\x00"

// Overlay blits a CPU-rendered RGBA image over the default framebuffer.
// Image row 0 is drawn at the top.
type Overlay struct {
	prog    uint32
	rectLoc int32
	tex     uint32
	quadVAO uint32
	w, h    int32
}

func newOverlay(quadVAO uint32) (*Overlay, error) {
	prog, err := newProgram(overlayVertSrc, overlayFragSrc)
	if err != nil {
		return nil, fmt.Errorf("overlay shader: %w", err)
	}
	o := &Overlay{prog: prog, rectLoc: uniform(prog, "rect"), quadVAO: quadVAO}
	gl.UseProgram(prog)
	gl.Uniform1i(uniform(prog, "panel"), 0)
	gl.UseProgram(0)

	gl.GenTextures(1, &o.tex)
	gl.BindTexture(gl.TEXTURE_2D, o.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return o, nil
}

// Upload replaces the overlay image. Same-sized uploads reuse the storage.
func (o *Overlay) Upload(img *image.RGBA) {
	b := img.Bounds()
	w, h := int32(b.Dx()), int32(b.Dy())
	if w == 0 || h == 0 {
		return
	}
	saved := saveState()
	defer saved.restore()

	gl.BindTexture(gl.TEXTURE_2D, o.tex)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	if w != o.w || h != o.h {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		o.w, o.h = w, h
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
}

// Draw blends the overlay at pixel position (x, y) from the top-left of a
// screenW×screenH framebuffer, unscaled.
func (o *Overlay) Draw(x, y, screenW, screenH int) {
	if o.w == 0 || screenW <= 0 || screenH <= 0 {
		return
	}
	saved := saveState()
	defer saved.restore()

	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(screenW), int32(screenH))
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	toX := func(px int) float32 { return float32(px)/float32(screenW)*2 - 1 }
	toY := func(py int) float32 { return 1 - float32(py)/float32(screenH)*2 }

	gl.UseProgram(o.prog)
	gl.Uniform4f(o.rectLoc, toX(x), toY(y+int(o.h)), toX(x+int(o.w)), toY(y))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, o.tex)
	gl.BindVertexArray(o.quadVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
}

func (o *Overlay) Destroy() {
	deleteTextures(&o.tex)
	deletePrograms(&o.prog)
}
