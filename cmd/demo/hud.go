package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	hudFontSize   = 14
	hudLineHeight = 18
	hudPadding    = 8
	hudWidth      = 340
)

var hudBackground = color.RGBA{0, 0, 0, 160}

// hudPanel collects lines of status text and rasterises them into an RGBA
// image for the overlay.
type hudPanel struct {
	lines []string
	ctx   *freetype.Context
	img   *image.RGBA
}

func newHUDPanel() (*hudPanel, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("hud font: %w", err)
	}
	ctx := freetype.NewContext()
	ctx.SetFont(f)
	ctx.SetFontSize(hudFontSize)
	ctx.SetDPI(72)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)
	return &hudPanel{ctx: ctx}, nil
}

func (h *hudPanel) AddLine(format string, args ...any) {
	h.lines = append(h.lines, fmt.Sprintf(format, args...))
}

func (h *hudPanel) Clear() {
	h.lines = h.lines[:0]
}

// Render draws the collected lines over a translucent background. The
// image is reused while the line count stays the same.
func (h *hudPanel) Render() (*image.RGBA, error) {
	height := hudPadding*2 + hudLineHeight*len(h.lines)
	if h.img == nil || h.img.Bounds().Dy() != height {
		h.img = image.NewRGBA(image.Rect(0, 0, hudWidth, height))
	}
	draw.Draw(h.img, h.img.Bounds(), &image.Uniform{C: hudBackground}, image.Point{}, draw.Src)

	h.ctx.SetDst(h.img)
	h.ctx.SetClip(h.img.Bounds())
	for i, line := range h.lines {
		pt := freetype.Pt(hudPadding, hudPadding+hudLineHeight*(i+1)-4)
		if _, err := h.ctx.DrawString(line, pt); err != nil {
			return nil, fmt.Errorf("hud text: %w", err)
		}
	}
	return h.img, nil
}
