package floorplan

import (
	"fmt"

	"github.com/matzehuels/padring/pkg/errors"
	"github.com/matzehuels/padring/pkg/geom"
)

// DieSizingError reports die dimensions that are off the layout grid or a
// core area that is empty or outside the margin box.
type DieSizingError struct {
	Reason string
	Width  geom.Unit
	Height geom.Unit
	Grid   geom.Unit
	Margin geom.Unit
	Core   geom.Rect
}

func (e *DieSizingError) Error() string {
	return fmt.Sprintf("die sizing: %s (die %dx%d, grid %d, margin %d, core %v)",
		e.Reason, e.Width, e.Height, e.Grid, e.Margin, e.Core)
}

// Code returns the error code for this error type.
func (e *DieSizingError) Code() errors.Code { return errors.ErrCodeDieSizing }

// InsufficientSpaceError reports a side whose pads do not fit between its
// corners. It is returned before anything is placed on that side.
type InsufficientSpaceError struct {
	Side      geom.Side
	Pads      int
	Required  geom.Unit // total along-edge extent of the pads
	Available geom.Unit // edge length minus both corner extents
}

func (e *InsufficientSpaceError) Error() string {
	return fmt.Sprintf("%s side: %d pads need %d along the edge, only %d available between corners",
		e.Side, e.Pads, e.Required, e.Available)
}

// Code returns the error code for this error type.
func (e *InsufficientSpaceError) Code() errors.Code { return errors.ErrCodeInsufficientSpace }

// UnfillableGapError reports a strip whose remainder is narrower than every
// available filler.
type UnfillableGapError struct {
	Side      geom.Side
	Strip     geom.Rect
	Remaining geom.Unit
	Smallest  geom.Unit // 0 when no fillers were given
}

func (e *UnfillableGapError) Error() string {
	return fmt.Sprintf("%s side: gap %v leaves %d unfilled, smallest filler is %d",
		e.Side, e.Strip, e.Remaining, e.Smallest)
}

// Code returns the error code for this error type.
func (e *UnfillableGapError) Code() errors.Code { return errors.ErrCodeUnfillableGap }

// MacroOverlapError reports a macro that leaves the die, enters the pad ring
// or collides with another instance or the core area.
type MacroOverlapError struct {
	Macro      Ident
	Box        geom.Rect
	Against    string // "die", "ring", "core" or an instance name
	AgainstBox geom.Rect
}

func (e *MacroOverlapError) Error() string {
	if e.Against == againstDie {
		return fmt.Sprintf("macro %s at %v is not inside the die %v", e.Macro, e.Box, e.AgainstBox)
	}
	if e.Against == againstRing {
		return fmt.Sprintf("macro %s at %v extends into the pad ring (ring interior %v)", e.Macro, e.Box, e.AgainstBox)
	}
	return fmt.Sprintf("macro %s at %v overlaps %s at %v", e.Macro, e.Box, e.Against, e.AgainstBox)
}

// Code returns the error code for this error type.
func (e *MacroOverlapError) Code() errors.Code { return errors.ErrCodeMacroOverlap }

const (
	againstDie  = "die"
	againstRing = "ring"
	againstCore = "core"
)

// OverlapError reports two placed instances whose bounding boxes overlap.
type OverlapError struct {
	A, B       Ident
	ABox, BBox geom.Rect
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("instance %s at %v overlaps %s at %v", e.A, e.ABox, e.B, e.BBox)
}

// Code returns the error code for this error type.
func (e *OverlapError) Code() errors.Code { return errors.ErrCodeOverlap }
