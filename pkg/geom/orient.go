package geom

import "fmt"

// Orientation is a DEF placement orientation.
type Orientation string

// DEF orientations. The compass letter names the direction the cell's
// original north edge points to after placement.
const (
	OrientN  Orientation = "N"
	OrientS  Orientation = "S"
	OrientE  Orientation = "E"
	OrientW  Orientation = "W"
	OrientFN Orientation = "FN"
	OrientFS Orientation = "FS"
	OrientFE Orientation = "FE"
	OrientFW Orientation = "FW"
)

// ParseOrientation validates a DEF orientation name.
func ParseOrientation(s string) (Orientation, error) {
	switch o := Orientation(s); o {
	case OrientN, OrientS, OrientE, OrientW, OrientFN, OrientFS, OrientFE, OrientFW:
		return o, nil
	}
	return "", fmt.Errorf("unknown orientation %q", s)
}

// Rotation returns the counter-clockwise rotation in degrees.
// Flipped orientations share the rotation of their unflipped counterpart.
func (o Orientation) Rotation() int {
	switch o {
	case OrientW, OrientFW:
		return 90
	case OrientS, OrientFS:
		return 180
	case OrientE, OrientFE:
		return 270
	default:
		return 0
	}
}

// Swaps reports whether the orientation exchanges a cell's width and height.
func (o Orientation) Swaps() bool {
	switch o {
	case OrientE, OrientW, OrientFE, OrientFW:
		return true
	}
	return false
}

// Footprint returns the placed bounding-box size of a w×h cell.
func (o Orientation) Footprint(w, h Unit) (Unit, Unit) {
	if o.Swaps() {
		return h, w
	}
	return w, h
}
