package shading

// BackgroundDepth is the linear depth stored where no geometry was drawn.
const BackgroundDepth float32 = 1

// LinearDepth maps a view-space z (negative in front of the camera) to the
// [0,1] linear depth kept in the G-buffer.
func LinearDepth(viewZ, far float32) float32 {
	if far <= 0 {
		return BackgroundDepth
	}
	d := -viewZ / far
	switch {
	case d < 0:
		return 0
	case d > 1:
		return 1
	}
	return d
}
