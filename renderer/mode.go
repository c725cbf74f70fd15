package renderer

import (
	"fmt"
	"strings"
)

// RenderMode selects what Render leaves in the default framebuffer. Modes
// only change the final blit; every pass runs identically in all modes.
type RenderMode int

const (
	ModeFinal RenderMode = iota
	ModeAlbedo
	ModeNormal
	ModeDepth
	ModePosition
	ModeAttribute
	ModeSSAO
	ModeSSAOBlurred
	ModeLight
	ModeShadow

	modeCount
)

// RenderModeCount is the number of render modes, final view included.
const RenderModeCount = int(modeCount)

var modeNames = [modeCount]string{
	ModeFinal:       "final",
	ModeAlbedo:      "albedo",
	ModeNormal:      "normal",
	ModeDepth:       "depth",
	ModePosition:    "position",
	ModeAttribute:   "attribute",
	ModeSSAO:        "ssao",
	ModeSSAOBlurred: "ssao-blurred",
	ModeLight:       "light",
	ModeShadow:      "shadow",
}

// Valid reports whether m is one of the defined modes.
func (m RenderMode) Valid() bool { return m >= 0 && m < modeCount }

func (m RenderMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseRenderMode maps a mode name (as returned by String) or its key digit
// to a RenderMode.
func ParseRenderMode(s string) (RenderMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if s == name || s == fmt.Sprint(i) {
			return RenderMode(i), nil
		}
	}
	return ModeFinal, fmt.Errorf("unknown render mode %q", s)
}

// Channel selects how a debug source is displayed.
type Channel int

const (
	// ChannelRGB shows the texture's colour channels as stored.
	ChannelRGB Channel = iota
	// ChannelR broadcasts the red channel to grey.
	ChannelR
	// ChannelA broadcasts the alpha channel to grey.
	ChannelA
)

// View is the resolved output of a frame: either the composite or one raw
// intermediate buffer.
type View struct {
	Mode    RenderMode
	Source  Texture
	Channel Channel
}

// Composite reports whether the view is the lit final image.
func (v View) Composite() bool { return v.Mode == ModeFinal }

// Buffers is every intermediate target produced by a frame.
type Buffers struct {
	GBuffer   GBuffer
	RawAO     Texture
	BlurredAO Texture
	Light     Texture
	Shadow    Texture
}

// ViewFor resolves mode against the frame's buffers. It reads nothing but
// its arguments, so selecting a mode cannot affect how buffers are produced.
// Invalid modes resolve to the final view.
func ViewFor(mode RenderMode, b Buffers) View {
	switch mode {
	case ModeAlbedo:
		return View{Mode: mode, Source: b.GBuffer.Albedo, Channel: ChannelRGB}
	case ModeNormal:
		return View{Mode: mode, Source: b.GBuffer.Normal, Channel: ChannelRGB}
	case ModeDepth:
		return View{Mode: mode, Source: b.GBuffer.Normal, Channel: ChannelA}
	case ModePosition:
		return View{Mode: mode, Source: b.GBuffer.Position, Channel: ChannelRGB}
	case ModeAttribute:
		return View{Mode: mode, Source: b.GBuffer.Attribute, Channel: ChannelRGB}
	case ModeSSAO:
		return View{Mode: mode, Source: b.RawAO, Channel: ChannelR}
	case ModeSSAOBlurred:
		return View{Mode: mode, Source: b.BlurredAO, Channel: ChannelR}
	case ModeLight:
		return View{Mode: mode, Source: b.Light, Channel: ChannelRGB}
	case ModeShadow:
		return View{Mode: mode, Source: b.Shadow, Channel: ChannelR}
	}
	return View{Mode: ModeFinal}
}
