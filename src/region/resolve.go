package region

// Clamp shrinks or moves r inward so it lies within bounds. It never grows r.
func Clamp(r Rect, bounds Monitor) Rect {
	if r.X < bounds.X {
		r.W -= bounds.X - r.X
		r.X = bounds.X
	}
	if r.Y < bounds.Y {
		r.H -= bounds.Y - r.Y
		r.Y = bounds.Y
	}
	if r.X+r.W > bounds.X+bounds.W {
		r.W = bounds.X + bounds.W - r.X
	}
	if r.Y+r.H > bounds.Y+bounds.H {
		r.H = bounds.Y + bounds.H - r.Y
	}
	return r
}

// SnapBottom extends r down to the bottom of bounds when the remaining gap
// is positive and no larger than margin.
func SnapBottom(r Rect, bounds Monitor, margin int) Rect {
	bottom := bounds.Y + bounds.H
	gap := bottom - (r.Y + r.H)
	if gap > 0 && gap <= margin {
		r.H = bottom - r.Y
	}
	return r
}

// EvenDimensions rounds odd widths and heights down; x264 with yuv420p
// rejects odd frame sizes.
func EvenDimensions(r Rect) Rect {
	if r.W%2 != 0 {
		r.W--
	}
	if r.H%2 != 0 {
		r.H--
	}
	return r
}

// Resolve turns a raw selection into a capture rectangle inside bounds.
func Resolve(selected Rect, bounds Monitor, snapMargin int) (Rect, error) {
	r := Clamp(selected, bounds)
	r = SnapBottom(r, bounds, snapMargin)
	r = EvenDimensions(r)
	if r.W <= 0 || r.H <= 0 {
		return r, &InvalidRegionError{W: r.W, H: r.H}
	}
	return r, nil
}
