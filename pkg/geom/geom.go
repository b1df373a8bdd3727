package geom

import "fmt"

// Unit is a length in database units.
type Unit int64

// Point is a location in die coordinates (origin at the lower-left, y up).
type Point struct {
	X, Y Unit
}

// String formats the point as "(x, y)".
func (p Point) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Rect is an axis-aligned rectangle covering [X0, X1) × [Y0, Y1).
type Rect struct {
	X0, Y0 Unit
	X1, Y1 Unit
}

// R builds a rectangle from its lower-left and upper-right corners.
func R(x0, y0, x1, y1 Unit) Rect { return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1} }

// RectFromPoints returns the rectangle spanned by two opposite corners,
// given in any order.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		X0: min(a.X, b.X), Y0: min(a.Y, b.Y),
		X1: max(a.X, b.X), Y1: max(a.Y, b.Y),
	}
}

// RectAt builds a rectangle from its lower-left corner and size.
func RectAt(p Point, w, h Unit) Rect { return Rect{X0: p.X, Y0: p.Y, X1: p.X + w, Y1: p.Y + h} }

// Width returns the horizontal extent.
func (r Rect) Width() Unit { return r.X1 - r.X0 }

// Height returns the vertical extent.
func (r Rect) Height() Unit { return r.Y1 - r.Y0 }

// Min returns the lower-left corner.
func (r Rect) Min() Point { return Point{r.X0, r.Y0} }

// Max returns the upper-right corner.
func (r Rect) Max() Point { return Point{r.X1, r.Y1} }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.X1 <= r.X0 || r.Y1 <= r.Y0 }

// Overlaps reports whether r and o share a region of positive area.
// Rectangles touching along an edge or at a corner do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X0 < o.X1 && o.X0 < r.X1 && r.Y0 < o.Y1 && o.Y0 < r.Y1
}

// Contains reports whether o lies entirely inside r (edges may coincide).
func (r Rect) Contains(o Rect) bool {
	return o.X0 >= r.X0 && o.X1 <= r.X1 && o.Y0 >= r.Y0 && o.Y1 <= r.Y1
}

// StrictlyContains reports whether o lies inside r without touching any of
// its edges.
func (r Rect) StrictlyContains(o Rect) bool {
	return o.X0 > r.X0 && o.X1 < r.X1 && o.Y0 > r.Y0 && o.Y1 < r.Y1
}

// Intersect returns the common region of r and o. The result is Empty when
// they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		X0: max(r.X0, o.X0), Y0: max(r.Y0, o.Y0),
		X1: min(r.X1, o.X1), Y1: min(r.Y1, o.Y1),
	}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// Inset shrinks r by d on every side. A negative d grows it.
func (r Rect) Inset(d Unit) Rect {
	return Rect{X0: r.X0 + d, Y0: r.Y0 + d, X1: r.X1 - d, Y1: r.Y1 - d}
}

// Translate returns r moved by p.
func (r Rect) Translate(p Point) Rect {
	return Rect{X0: r.X0 + p.X, Y0: r.Y0 + p.Y, X1: r.X1 + p.X, Y1: r.Y1 + p.Y}
}

// Area returns the area of r.
func (r Rect) Area() int64 {
	if r.Empty() {
		return 0
	}
	return int64(r.Width()) * int64(r.Height())
}

// String formats the rectangle as "[(x0, y0) (x1, y1)]".
func (r Rect) String() string {
	return fmt.Sprintf("[%v %v]", r.Min(), r.Max())
}
