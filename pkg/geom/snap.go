package geom

import (
	"fmt"

	"github.com/matzehuels/padring/pkg/errors"
)

// InvalidGridError is returned when a snap grid is zero or negative.
type InvalidGridError struct {
	Grid Unit
}

func (e *InvalidGridError) Error() string {
	return fmt.Sprintf("invalid snap grid %d: must be positive", e.Grid)
}

// Code returns the error code for this error type.
func (e *InvalidGridError) Code() errors.Code { return errors.ErrCodeInvalidGrid }

// Snap rounds v down to the nearest multiple of grid.
func Snap(v, grid Unit) (Unit, error) {
	if grid <= 0 {
		return 0, &InvalidGridError{Grid: grid}
	}
	return floorDiv(v, grid) * grid, nil
}

// SnapRatio computes floor(num/den) snapped down to grid, without an
// intermediate rounding step. den must be positive.
func SnapRatio(num, den, grid Unit) (Unit, error) {
	if grid <= 0 {
		return 0, &InvalidGridError{Grid: grid}
	}
	if den <= 0 {
		return 0, fmt.Errorf("snap ratio: non-positive denominator %d", den)
	}
	// floor(floor(n/d)/g) == floor(n/(d*g)) for positive d and g.
	return floorDiv(num, den*grid) * grid, nil
}

// CeilTo rounds v up to the nearest multiple of grid.
func CeilTo(v, grid Unit) (Unit, error) {
	if grid <= 0 {
		return 0, &InvalidGridError{Grid: grid}
	}
	return -floorDiv(-v, grid) * grid, nil
}

// OnGrid reports whether v is a multiple of grid.
func OnGrid(v, grid Unit) bool {
	return grid > 0 && v%grid == 0
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b Unit) Unit {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
