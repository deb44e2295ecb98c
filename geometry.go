package dpl

// Pt is an integer coordinate in design units, relative to the core origin.
type Pt struct {
	X, Y int
}

// Rect is an axis-aligned rectangle in design units, [XMin,XMax) x [YMin,YMax).
type Rect struct {
	XMin, YMin, XMax, YMax int
}

// NewRect builds a rectangle from its corners.
func NewRect(xMin, yMin, xMax, yMax int) Rect {
	return Rect{XMin: xMin, YMin: yMin, XMax: xMax, YMax: yMax}
}

// Dx returns the horizontal span.
func (r Rect) Dx() int { return r.XMax - r.XMin }

// Dy returns the vertical span.
func (r Rect) Dy() int { return r.YMax - r.YMin }

// Contains reports whether pt lies within the rectangle (half-open).
func (r Rect) Contains(pt Pt) bool {
	return pt.X >= r.XMin && pt.X < r.XMax && pt.Y >= r.YMin && pt.Y < r.YMax
}

// ContainsRect reports whether rect lies entirely within the receiver.
func (r Rect) ContainsRect(rect Rect) bool {
	return rect.XMin >= r.XMin && rect.XMax <= r.XMax &&
		rect.YMin >= r.YMin && rect.YMax <= r.YMax
}

// Overlaps reports whether the receiver and rect share any positive area.
func (r Rect) Overlaps(rect Rect) bool {
	return rect.XMin < r.XMax && rect.XMax > r.XMin &&
		rect.YMin < r.YMax && rect.YMax > r.YMin
}

// ClosestPtInside clamps each coordinate of pt to [Min, Max]. Unlike
// Contains, the Max edges count as inside here.
func (r Rect) ClosestPtInside(pt Pt) Pt {
	return Pt{
		X: clampInt(pt.X, r.XMin, r.XMax),
		Y: clampInt(pt.Y, r.YMin, r.YMax),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// divFloor divides two ints, rounding toward negative infinity. divisor is
// always a positive site width or row height in this module.
func divFloor(dividend, divisor int) int {
	q := dividend / divisor
	if dividend%divisor != 0 && dividend < 0 {
		q--
	}
	return q
}

// divCeil divides two ints, rounding toward positive infinity.
func divCeil(dividend, divisor int) int {
	q := dividend / divisor
	if dividend%divisor != 0 && dividend > 0 {
		q++
	}
	return q
}

// divRound divides two ints, rounding half-away-from-zero, as the spec
// requires ("standard round-half-away-from-zero is sufficient and must be
// used consistently" -- §4.1).
func divRound(dividend, divisor int) int {
	if dividend < 0 {
		return -divRound(-dividend, divisor)
	}
	return (2*dividend + divisor) / (2 * divisor)
}

// l1Dist returns the L1 (Manhattan) distance between two points.
func l1Dist(a, b Pt) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}
