package main

import "testing"

func TestHUDPanelRendersText(t *testing.T) {
	h, err := newHUDPanel()
	if err != nil {
		t.Fatal(err)
	}
	h.AddLine("Mode: %s", "final")
	h.AddLine("Lights: %d", 503)

	img, err := h.Render()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := img.Bounds().Dy(), hudPadding*2+hudLineHeight*2; got != want {
		t.Errorf("height: got %d, want %d", got, want)
	}

	// Glyph pixels are brighter than the background.
	var lit int
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] > hudBackground.R+64 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("no text pixels were drawn")
	}

	h.Clear()
	if len(h.lines) != 0 {
		t.Errorf("Clear left %d lines", len(h.lines))
	}
}
