package scene

// Rect is an axis-aligned rectangle in screen space (device pixels, y down).
type Rect struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// RectAround returns a rectangle of the given half size centred on (x, y).
func RectAround(x, y, halfW, halfH float64) Rect {
	return Rect{Left: x - halfW, Right: x + halfW, Top: y - halfH, Bottom: y + halfH}
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Right <= r.Left || r.Bottom <= r.Top }

// Overlaps reports whether r and o share any area. Touching edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right && r.Top < o.Bottom && o.Top < r.Bottom
}

// Inside reports whether r lies fully within v.
func (r Rect) Inside(v Rect) bool {
	return r.Left >= v.Left && r.Right <= v.Right && r.Top >= v.Top && r.Bottom <= v.Bottom
}

// Contains reports whether the point (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Right: r.Right + dx, Top: r.Top + dy, Bottom: r.Bottom + dy}
}

// Intersect returns the common area of r and o, or the zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Left:   max(r.Left, o.Left),
		Right:  min(r.Right, o.Right),
		Top:    max(r.Top, o.Top),
		Bottom: min(r.Bottom, o.Bottom),
	}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// Penetration returns how far r and o overlap along each axis. Both values
// are zero when the rectangles do not overlap.
func (r Rect) Penetration(o Rect) (dx, dy float64) {
	if !r.Overlaps(o) {
		return 0, 0
	}
	dx = min(r.Right, o.Right) - max(r.Left, o.Left)
	dy = min(r.Bottom, o.Bottom) - max(r.Top, o.Top)
	return dx, dy
}
