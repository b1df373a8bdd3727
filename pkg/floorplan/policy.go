package floorplan

import (
	"github.com/matzehuels/padring/pkg/catalog"
	"github.com/matzehuels/padring/pkg/errors"
	"github.com/matzehuels/padring/pkg/geom"
)

// SizingPolicy describes how the die is derived from the standard cell grid.
type SizingPolicy struct {
	StdCellWidth  geom.Unit
	StdCellHeight geom.Unit
	Cols          int // core width in standard cell widths
	Rows          int // core height in standard cell rows
	MarginFactor  int // margin is this many times the tallest I/O cell
	Grid          geom.Unit

	// MarginRoles are the cells whose height bounds the margin. For corner
	// cells both width and height count.
	MarginRoles []string

	// Reserve, when set, moves the core's east edge west so a macro fits
	// in the north-east of the margin box.
	Reserve *MacroReserve
}

// MacroReserve reserves room east of the core for a macro plus a keep-out
// channel measured in standard cells.
type MacroReserve struct {
	Role        string
	KeepOutCols int
	KeepOutRows int
}

// PadPolicy generates the ordered pad list of every side.
//
// Each side gets Signals signal pads of role Signal. The first Split of
// them come first, then one pad per entry of Power, then the remaining
// signals. A non-empty list in Pads replaces the generated list for that
// side.
//
// Supply pads are named inside the padring hierarchy unless FlatSupplyNames
// is set; then they are named <port><n>, numbered per port across the ring
// in west, north, east, south order. SignalPinsOnly leaves generated supply
// pads without a pin.
type PadPolicy struct {
	Signal          string
	Signals         int
	Split           int
	Power           []string
	SharedPins      []string // supply ports whose pin keeps its bare name on every side
	FlatSupplyNames bool
	SignalPinsOnly  bool
	Pads            map[geom.Side][]PadEntry
}

// PinPolicy places one square pin per pad, Along from the pad's low edge and
// Depth in from the die boundary.
type PinPolicy struct {
	Size  geom.Unit
	Along geom.Unit
	Depth geom.Unit
	Layer string
}

// FillPolicy lists the filler roles available for closing ring gaps.
type FillPolicy struct {
	Roles []string
}

// Policy is the complete input of [Build] besides the catalog.
type Policy struct {
	Sizing SizingPolicy
	Corner string
	Pads   PadPolicy
	Pins   PinPolicy
	Fill   FillPolicy
	Macros []MacroPolicy
}

// Validate checks the policy for values no layout can satisfy. It does not
// consult the catalog.
func (p Policy) Validate() error {
	s := p.Sizing
	if s.Grid <= 0 {
		return &geom.InvalidGridError{Grid: s.Grid}
	}
	if s.StdCellWidth <= 0 || s.StdCellHeight <= 0 {
		return invalidPolicy("standard cell size %dx%d must be positive", s.StdCellWidth, s.StdCellHeight)
	}
	if s.Cols <= 0 || s.Rows <= 0 {
		return invalidPolicy("core size %dx%d cells must be positive", s.Cols, s.Rows)
	}
	if s.MarginFactor < 0 {
		return invalidPolicy("margin factor %d must not be negative", s.MarginFactor)
	}
	if r := s.Reserve; r != nil && (r.KeepOutCols < 0 || r.KeepOutRows < 0) {
		return invalidPolicy("reserve keep-out %dx%d must not be negative", r.KeepOutCols, r.KeepOutRows)
	}
	if p.Corner == "" {
		return invalidPolicy("no corner cell role")
	}
	if p.Pads.Signals < 0 || p.Pads.Split < 0 || p.Pads.Split > p.Pads.Signals {
		return invalidPolicy("pad split %d must be between 0 and %d", p.Pads.Split, p.Pads.Signals)
	}
	if p.Pads.Signals > 0 && p.Pads.Signal == "" {
		return invalidPolicy("no signal pad role")
	}
	if p.Pins.Size <= 0 {
		return invalidPolicy("pin size %d must be positive", p.Pins.Size)
	}
	if p.Pins.Along < 0 || p.Pins.Depth < 0 {
		return invalidPolicy("pin offset (%d, %d) must not be negative", p.Pins.Along, p.Pins.Depth)
	}
	if p.Pins.Layer == "" {
		return invalidPolicy("no pin layer")
	}
	if len(p.Fill.Roles) == 0 {
		return invalidPolicy("no filler roles")
	}
	for _, m := range p.Macros {
		if len(m.ID) == 0 {
			return invalidPolicy("macro of role %q has no instance name", m.Role)
		}
		if _, err := ParseAnchor(string(m.Anchor)); err != nil {
			return err
		}
		if m.KeepOutCols < 0 || m.KeepOutRows < 0 {
			return invalidPolicy("macro %s keep-out must not be negative", m.ID)
		}
	}
	return nil
}

func invalidPolicy(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidPolicy, format, args...)
}

// DefaultPolicy returns the zerosoc floorplan for the sky130 catalog: a
// 6800x900 cell core, nine signal pads plus four supply pads per side and
// the sram placed north-east of the core.
func DefaultPolicy() Policy {
	um := func(v float64) geom.Unit { return catalog.Microns(v, catalog.DefaultDBU) }
	ram, _ := ParseIdent("soc.ram.u_mem.gen_sky130.u_impl_sky130.mem")
	return Policy{
		Sizing: SizingPolicy{
			StdCellWidth:  um(0.46),
			StdCellHeight: um(2.72),
			Cols:          6800,
			Rows:          900,
			MarginFactor:  4,
			Grid:          um(1),
			MarginRoles:   []string{"gpio", "vdd", "corner"},
			Reserve:       &MacroReserve{Role: "ram", KeepOutCols: 250, KeepOutRows: 50},
		},
		Corner: "corner",
		Pads: PadPolicy{
			Signal:     "gpio",
			Signals:    9,
			Split:      5,
			Power:      []string{"vdd", "vss", "vddio", "vssio"},
			SharedPins: []string{"vdd", "vss"},
		},
		Pins: PinPolicy{
			Size:  um(10),
			Along: um(37.5),
			Depth: um(63.285),
			Layer: "m5",
		},
		Fill: FillPolicy{Roles: []string{"fill20", "fill10", "fill5", "fill1"}},
		Macros: []MacroPolicy{{
			ID:          ram,
			Role:        "ram",
			Anchor:      AnchorNE,
			KeepOutCols: 250,
			KeepOutRows: 50,
			Orient:      geom.OrientN,
			OutsideCore: true,
		}},
	}
}

// TopPolicy returns the top-level floorplan that integrates the finished
// core: the same die and pad ring as [DefaultPolicy], supply pads named
// vdd0, vss0, ... with pins on the signal pads only, no macro reservation,
// and the asic_core block at the core origin.
func TopPolicy() Policy {
	p := DefaultPolicy()
	p.Sizing.Reserve = nil
	p.Pads.SharedPins = []string{}
	p.Pads.FlatSupplyNames = true
	p.Pads.SignalPinsOnly = true
	p.Macros = []MacroPolicy{{
		ID:     NewIdent(Seg("core")),
		Role:   "asic_core",
		Anchor: AnchorCore,
		Orient: geom.OrientN,
	}}
	return p
}
