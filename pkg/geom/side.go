package geom

import (
	"fmt"
	"strings"
)

// Side identifies one of the four die edges.
type Side int

// Sides in the order the ring is laid out.
const (
	West Side = iota
	North
	East
	South
)

// Sides lists all four sides in layout order.
var Sides = [4]Side{West, North, East, South}

var sideNames = [4]string{"west", "north", "east", "south"}

// abbrevs are the two-letter prefixes used in pad instance and pin names.
var abbrevs = [4]string{"we", "no", "ea", "so"}

// String returns the lowercase side name.
func (s Side) String() string {
	if s < West || s > South {
		return fmt.Sprintf("Side(%d)", int(s))
	}
	return sideNames[s]
}

// Abbrev returns the two-letter side prefix ("we", "no", "ea", "so").
func (s Side) Abbrev() string { return abbrevs[s] }

// ParseSide accepts a full side name, its two-letter prefix or its compass
// letter, case-insensitively.
func ParseSide(name string) (Side, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range Sides {
		if n == sideNames[i] || n == abbrevs[i] || n == sideNames[i][:1] {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown side %q (must be one of: west, north, east, south)", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(b []byte) error {
	v, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Horizontal reports whether offsets along this side vary x (north and south).
func (s Side) Horizontal() bool { return s == North || s == South }

// Orientation returns the orientation that makes a perimeter cell face
// outward from the die on this side.
func (s Side) Orientation() Orientation {
	switch s {
	case West:
		return OrientW
	case North:
		return OrientN
	case East:
		return OrientE
	default:
		return OrientS
	}
}

// Length returns the length of this edge on a die of the given size.
func (s Side) Length(dieW, dieH Unit) Unit {
	if s.Horizontal() {
		return dieW
	}
	return dieH
}

// AlongInterval projects r onto this side's edge axis, returning the
// interval [lo, hi) it covers along the edge.
func (s Side) AlongInterval(r Rect) (lo, hi Unit) {
	if s.Horizontal() {
		return r.X0, r.X1
	}
	return r.Y0, r.Y1
}

// EdgeToAbsolute converts a position measured along a die edge into absolute
// coordinates. offset runs along the edge from its low end (x=0 for north and
// south, y=0 for west and east); depth runs perpendicular to the edge,
// inward from the die boundary.
func EdgeToAbsolute(side Side, offset, depth, dieW, dieH Unit) Point {
	switch side {
	case West:
		return Point{X: depth, Y: offset}
	case North:
		return Point{X: offset, Y: dieH - depth}
	case East:
		return Point{X: dieW - depth, Y: offset}
	default:
		return Point{X: offset, Y: depth}
	}
}

// EdgeRect returns the rectangle that starts at offset along the edge and
// depth into the die, extending along units along the edge and deep units
// further inward.
func EdgeRect(side Side, offset, depth, along, deep, dieW, dieH Unit) Rect {
	a := EdgeToAbsolute(side, offset, depth, dieW, dieH)
	b := EdgeToAbsolute(side, offset+along, depth+deep, dieW, dieH)
	return RectFromPoints(a, b)
}
