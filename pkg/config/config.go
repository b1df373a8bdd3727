package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/padring/pkg/cache"
	"github.com/matzehuels/padring/pkg/catalog"
	"github.com/matzehuels/padring/pkg/errors"
	"github.com/matzehuels/padring/pkg/floorplan"
	"github.com/matzehuels/padring/pkg/geom"
)

// Config is a floorplan description. Lengths are in microns.
type Config struct {
	DBUnits  int                   `toml:"db_units" json:"db_units"`
	LEF      string                `toml:"lef,omitempty" json:"lef,omitempty"`
	LEFRoles map[string]string     `toml:"lef_roles,omitempty" json:"lef_roles,omitempty"` // LEF macro -> "role" or "role:class"
	Cells    map[string]CellConfig `toml:"cells,omitempty" json:"cells,omitempty"`
	Corner   string                `toml:"corner" json:"corner"`
	Sizing   SizingConfig          `toml:"sizing" json:"sizing"`
	Pins     PinConfig             `toml:"pins" json:"pins"`
	Pads     PadConfig             `toml:"pads" json:"pads"`
	Fill     FillConfig            `toml:"fill" json:"fill"`
	Macros   []MacroConfig         `toml:"macro" json:"macros"`

	// LEFDigest is the content hash of the LEF file, set by Load so that
	// editing the LEF changes Hash.
	LEFDigest string `toml:"-" json:"lef_digest,omitempty"`

	dir string
}

// CellConfig defines or overrides one catalog cell.
type CellConfig struct {
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
	Tech   string  `toml:"tech" json:"tech"`
	Class  string  `toml:"class" json:"class"`
}

// SizingConfig mirrors [floorplan.SizingPolicy].
type SizingConfig struct {
	StdCellWidth  float64        `toml:"std_cell_width" json:"std_cell_width"`
	StdCellHeight float64        `toml:"std_cell_height" json:"std_cell_height"`
	Cols          int            `toml:"cols" json:"cols"`
	Rows          int            `toml:"rows" json:"rows"`
	MarginFactor  int            `toml:"margin_factor" json:"margin_factor"`
	Grid          float64        `toml:"grid" json:"grid"`
	MarginRoles   []string       `toml:"margin_roles" json:"margin_roles"`
	Reserve       *ReserveConfig `toml:"reserve,omitempty" json:"reserve,omitempty"`
}

// ReserveConfig mirrors [floorplan.MacroReserve]. An empty role disables
// the reservation.
type ReserveConfig struct {
	Role        string `toml:"role" json:"role"`
	KeepOutCols int    `toml:"keepout_cols" json:"keepout_cols"`
	KeepOutRows int    `toml:"keepout_rows" json:"keepout_rows"`
}

// PinConfig mirrors [floorplan.PinPolicy].
type PinConfig struct {
	Size  float64 `toml:"size" json:"size"`
	Along float64 `toml:"along" json:"along"`
	Depth float64 `toml:"depth" json:"depth"`
	Layer string  `toml:"layer" json:"layer"`
}

// PadConfig mirrors [floorplan.PadPolicy].
type PadConfig struct {
	Signal     string           `toml:"signal" json:"signal"`
	Signals    int              `toml:"signals" json:"signals"`
	Split      int              `toml:"split" json:"split"`
	Power      []string         `toml:"power" json:"power"`
	SharedPins []string         `toml:"shared_pins" json:"shared_pins"`
	Sides      []SidePadsConfig `toml:"side,omitempty" json:"sides,omitempty"`

	FlatSupplyNames bool `toml:"flat_supply_names,omitempty" json:"flat_supply_names,omitempty"`
	SignalPinsOnly  bool `toml:"signal_pins_only,omitempty" json:"signal_pins_only,omitempty"`
}

// SidePadsConfig replaces the generated pad list of one side.
type SidePadsConfig struct {
	Side string           `toml:"side" json:"side"`
	Pads []PadEntryConfig `toml:"pads" json:"pads"`
}

// PadEntryConfig is one explicit pad. Pin defaults to the last segment of
// Name.
type PadEntryConfig struct {
	Name string `toml:"name" json:"name"`
	Role string `toml:"role" json:"role"`
	Pin  string `toml:"pin,omitempty" json:"pin,omitempty"`
}

// FillConfig mirrors [floorplan.FillPolicy].
type FillConfig struct {
	Roles []string `toml:"roles" json:"roles"`
}

// MacroConfig mirrors [floorplan.MacroPolicy].
type MacroConfig struct {
	Name        string  `toml:"name" json:"name"`
	Role        string  `toml:"role" json:"role"`
	Anchor      string  `toml:"anchor" json:"anchor"`
	KeepOutCols int     `toml:"keepout_cols" json:"keepout_cols"`
	KeepOutRows int     `toml:"keepout_rows" json:"keepout_rows"`
	X           float64 `toml:"x" json:"x"`
	Y           float64 `toml:"y" json:"y"`
	Orient      string  `toml:"orient" json:"orient"`
	OutsideCore bool    `toml:"outside_core" json:"outside_core"`
}

// Default returns the sky130 zerosoc floorplan.
func Default() *Config {
	return &Config{
		DBUnits: catalog.DefaultDBU,
		Corner:  "corner",
		Sizing: SizingConfig{
			StdCellWidth:  0.46,
			StdCellHeight: 2.72,
			Cols:          6800,
			Rows:          900,
			MarginFactor:  4,
			Grid:          1,
			MarginRoles:   []string{"gpio", "vdd", "corner"},
			Reserve:       &ReserveConfig{Role: "ram", KeepOutCols: 250, KeepOutRows: 50},
		},
		Pins: PinConfig{Size: 10, Along: 37.5, Depth: 63.285, Layer: "m5"},
		Pads: PadConfig{
			Signal:     "gpio",
			Signals:    9,
			Split:      5,
			Power:      []string{"vdd", "vss", "vddio", "vssio"},
			SharedPins: []string{"vdd", "vss"},
		},
		Fill: FillConfig{Roles: []string{"fill20", "fill10", "fill5", "fill1"}},
		Macros: []MacroConfig{{
			Name:        "soc.ram.u_mem.gen_sky130.u_impl_sky130.mem",
			Role:        "ram",
			Anchor:      "ne",
			KeepOutCols: 250,
			KeepOutRows: 50,
			Orient:      "N",
			OutsideCore: true,
		}},
	}
}

// Top returns the top-level sky130 floorplan that integrates the finished
// core: the pad ring of [Default] with flat supply pad names and pins on the
// signal pads only, no ram reservation, and the asic_core block at the core
// origin.
func Top() *Config {
	c := Default()
	c.Sizing.Reserve = &ReserveConfig{}
	c.Pads.SharedPins = []string{}
	c.Pads.FlatSupplyNames = true
	c.Pads.SignalPinsOnly = true
	c.Macros = []MacroConfig{{
		Name:   "core",
		Role:   "asic_core",
		Anchor: string(floorplan.AnchorCore),
		Orient: string(geom.OrientN),
	}}
	return c
}

// Presets maps the names accepted by [Preset] to their constructors.
var Presets = map[string]func() *Config{
	"core": Default,
	"top":  Top,
}

// Preset returns the built-in floorplan called name.
func Preset(name string) (*Config, error) {
	fn, ok := Presets[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown design %q (must be one of: core, top)", name)
	}
	return fn(), nil
}

// Load reads and validates a config file. A relative LEF path is resolved
// against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	c.dir = filepath.Dir(path)
	if c.LEF != "" {
		lef, err := os.ReadFile(c.resolve(c.LEF))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read lef")
		}
		c.LEFDigest = cache.Hash(lef)
	}
	return c, nil
}

// Parse decodes and validates TOML. Keys that are not present take their
// default value.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	c.applyDefaults(md)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseJSON decodes and validates the JSON form of a config. Keys that are
// not present keep the value from [Default]; arrays replace the default
// array as a whole.
func ParseJSON(data []byte) (*Config, error) {
	c := Default()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults(md toml.MetaData) {
	d := Default()
	missing := func(key ...string) bool { return !md.IsDefined(key...) }

	if missing("db_units") {
		c.DBUnits = d.DBUnits
	}
	if missing("corner") {
		c.Corner = d.Corner
	}

	s, ds := &c.Sizing, d.Sizing
	if missing("sizing", "std_cell_width") {
		s.StdCellWidth = ds.StdCellWidth
	}
	if missing("sizing", "std_cell_height") {
		s.StdCellHeight = ds.StdCellHeight
	}
	if missing("sizing", "cols") {
		s.Cols = ds.Cols
	}
	if missing("sizing", "rows") {
		s.Rows = ds.Rows
	}
	if missing("sizing", "margin_factor") {
		s.MarginFactor = ds.MarginFactor
	}
	if missing("sizing", "grid") {
		s.Grid = ds.Grid
	}
	if missing("sizing", "margin_roles") {
		s.MarginRoles = ds.MarginRoles
	}
	if missing("sizing", "reserve") {
		s.Reserve = ds.Reserve
	} else if s.Reserve != nil && s.Reserve.Role == "" {
		s.Reserve = nil
	}

	p, dp := &c.Pins, d.Pins
	if missing("pins", "size") {
		p.Size = dp.Size
	}
	if missing("pins", "along") {
		p.Along = dp.Along
	}
	if missing("pins", "depth") {
		p.Depth = dp.Depth
	}
	if missing("pins", "layer") {
		p.Layer = dp.Layer
	}

	pads, dpads := &c.Pads, d.Pads
	if missing("pads", "signal") {
		pads.Signal = dpads.Signal
	}
	if missing("pads", "signals") {
		pads.Signals = dpads.Signals
	}
	if missing("pads", "split") {
		pads.Split = min(dpads.Split, pads.Signals)
	}
	if missing("pads", "power") {
		pads.Power = dpads.Power
	}
	if missing("pads", "shared_pins") {
		pads.SharedPins = dpads.SharedPins
	}

	if missing("fill", "roles") {
		c.Fill.Roles = d.Fill.Roles
	}
	if missing("macro") {
		c.Macros = d.Macros
	}
	for i := range c.Macros {
		if c.Macros[i].Orient == "" {
			c.Macros[i].Orient = string(geom.OrientN)
		}
		if c.Macros[i].Anchor == "" {
			c.Macros[i].Anchor = string(floorplan.AnchorExplicit)
		}
	}
}

// Validate checks values that would otherwise surface as confusing layout
// errors.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeInvalidConfig, format, args...)
	}

	if c.DBUnits <= 0 {
		return invalid("db_units must be positive, got %d", c.DBUnits)
	}
	if c.LEF != "" {
		if err := errors.ValidatePath(c.LEF); err != nil {
			return err
		}
	}
	for tech, role := range c.LEFRoles {
		if err := errors.ValidateName("lef macro", tech); err != nil {
			return err
		}
		if _, err := lefBinding(role); err != nil {
			return err
		}
	}
	for role, cell := range c.Cells {
		if err := errors.ValidateRole(role); err != nil {
			return err
		}
		if cell.Width <= 0 || cell.Height <= 0 {
			return invalid("cell %q: width and height must be positive", role)
		}
		if _, err := catalog.ParseClass(cell.Class); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cell %q", role)
		}
	}

	s := c.Sizing
	if s.StdCellWidth <= 0 || s.StdCellHeight <= 0 {
		return invalid("sizing: standard cell size must be positive")
	}
	if s.Grid <= 0 {
		return invalid("sizing: grid must be positive, got %g", s.Grid)
	}
	if s.Cols <= 0 || s.Rows <= 0 {
		return invalid("sizing: cols and rows must be positive")
	}
	if s.MarginFactor < 0 {
		return invalid("sizing: margin_factor must not be negative")
	}

	if c.Pins.Size <= 0 {
		return invalid("pins: size must be positive")
	}
	if c.Pins.Along < 0 || c.Pins.Depth < 0 {
		return invalid("pins: along and depth must not be negative")
	}

	if c.Pads.Signals < 0 || c.Pads.Split < 0 || c.Pads.Split > c.Pads.Signals {
		return invalid("pads: split %d must be between 0 and signals (%d)", c.Pads.Split, c.Pads.Signals)
	}
	seen := make(map[geom.Side]bool)
	for _, sp := range c.Pads.Sides {
		side, err := geom.ParseSide(sp.Side)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "pads")
		}
		if seen[side] {
			return invalid("pads: %s side listed twice", side)
		}
		seen[side] = true
		for _, p := range sp.Pads {
			if _, err := floorplan.ParseIdent(p.Name); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "pads: %s side", side)
			}
			if err := errors.ValidateRole(p.Role); err != nil {
				return err
			}
		}
	}

	if len(c.Fill.Roles) == 0 {
		return invalid("fill: no filler roles")
	}
	for _, m := range c.Macros {
		if _, err := floorplan.ParseIdent(m.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "macro")
		}
		if _, err := floorplan.ParseAnchor(m.Anchor); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "macro %s", m.Name)
		}
		if _, err := geom.ParseOrientation(m.Orient); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "macro %s", m.Name)
		}
	}
	return nil
}

// Policy converts the config to a floorplan policy in database units.
func (c *Config) Policy() (floorplan.Policy, error) {
	um := c.units
	s := c.Sizing

	p := floorplan.Policy{
		Sizing: floorplan.SizingPolicy{
			StdCellWidth:  um(s.StdCellWidth),
			StdCellHeight: um(s.StdCellHeight),
			Cols:          s.Cols,
			Rows:          s.Rows,
			MarginFactor:  s.MarginFactor,
			Grid:          um(s.Grid),
			MarginRoles:   slices.Clone(s.MarginRoles),
		},
		Corner: c.Corner,
		Pads: floorplan.PadPolicy{
			Signal:     c.Pads.Signal,
			Signals:    c.Pads.Signals,
			Split:      c.Pads.Split,
			Power:      slices.Clone(c.Pads.Power),
			SharedPins: slices.Clone(c.Pads.SharedPins),

			FlatSupplyNames: c.Pads.FlatSupplyNames,
			SignalPinsOnly:  c.Pads.SignalPinsOnly,
		},
		Pins: floorplan.PinPolicy{
			Size:  um(c.Pins.Size),
			Along: um(c.Pins.Along),
			Depth: um(c.Pins.Depth),
			Layer: c.Pins.Layer,
		},
		Fill: floorplan.FillPolicy{Roles: slices.Clone(c.Fill.Roles)},
	}
	if r := s.Reserve; r != nil && r.Role != "" {
		p.Sizing.Reserve = &floorplan.MacroReserve{Role: r.Role, KeepOutCols: r.KeepOutCols, KeepOutRows: r.KeepOutRows}
	}

	if len(c.Pads.Sides) > 0 {
		p.Pads.Pads = make(map[geom.Side][]floorplan.PadEntry, len(c.Pads.Sides))
		for _, sp := range c.Pads.Sides {
			side, err := geom.ParseSide(sp.Side)
			if err != nil {
				return floorplan.Policy{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "pads")
			}
			entries := make([]floorplan.PadEntry, 0, len(sp.Pads))
			for _, e := range sp.Pads {
				id, err := floorplan.ParseIdent(e.Name)
				if err != nil {
					return floorplan.Policy{}, err
				}
				entries = append(entries, floorplan.PadEntry{ID: id, Pin: e.Pin, Role: e.Role})
			}
			p.Pads.Pads[side] = entries
		}
	}

	for _, m := range c.Macros {
		id, err := floorplan.ParseIdent(m.Name)
		if err != nil {
			return floorplan.Policy{}, err
		}
		anchor, err := floorplan.ParseAnchor(m.Anchor)
		if err != nil {
			return floorplan.Policy{}, err
		}
		orient, err := geom.ParseOrientation(m.Orient)
		if err != nil {
			return floorplan.Policy{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "macro %s", m.Name)
		}
		p.Macros = append(p.Macros, floorplan.MacroPolicy{
			ID:          id,
			Role:        m.Role,
			Anchor:      anchor,
			KeepOutCols: m.KeepOutCols,
			KeepOutRows: m.KeepOutRows,
			X:           um(m.X),
			Y:           um(m.Y),
			Orient:      orient,
			OutsideCore: m.OutsideCore,
		})
	}
	return p, nil
}

// lefBinding parses a lef_roles value: a role, optionally followed by
// ":class" to override the class derived from the LEF.
func lefBinding(v string) (catalog.LEFBinding, error) {
	role, class, hasClass := strings.Cut(v, ":")
	if err := errors.ValidateRole(role); err != nil {
		return catalog.LEFBinding{}, err
	}
	b := catalog.LEFBinding{Role: role}
	if hasClass {
		c, err := catalog.ParseClass(class)
		if err != nil {
			return catalog.LEFBinding{}, err
		}
		b.Class = c
	}
	return b, nil
}

// Catalog builds the cell catalog: the built-in sky130 cells, then cells
// bound from the LEF file, then the [cells] table. Later sources replace
// earlier ones role by role.
func (c *Config) Catalog() (*catalog.Catalog, error) {
	cat := catalog.Sky130At(c.DBUnits)

	if c.LEF != "" {
		f, err := os.Open(c.resolve(c.LEF))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open lef")
		}
		defer f.Close()

		bindings := make(map[string]catalog.LEFBinding, len(c.LEFRoles))
		for tech, role := range c.LEFRoles {
			b, err := lefBinding(role)
			if err != nil {
				return nil, err
			}
			bindings[tech] = b
		}
		cells, err := catalog.LoadLEF(f, c.DBUnits, bindings)
		if err != nil {
			return nil, err
		}
		if cat, err = cat.With(cells...); err != nil {
			return nil, err
		}
	}

	if len(c.Cells) > 0 {
		roles := make([]string, 0, len(c.Cells))
		for role := range c.Cells {
			roles = append(roles, role)
		}
		slices.Sort(roles)

		cells := make([]catalog.Cell, 0, len(roles))
		for _, role := range roles {
			cc := c.Cells[role]
			class, err := catalog.ParseClass(cc.Class)
			if err != nil {
				return nil, err
			}
			cells = append(cells, catalog.Cell{
				Role:     role,
				Width:    c.units(cc.Width),
				Height:   c.units(cc.Height),
				TechName: cc.Tech,
				Class:    class,
			})
		}
		var err error
		if cat, err = cat.With(cells...); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

// Hash returns a stable content hash of the config, including the LEF
// digest when the config was loaded from a file.
func (c *Config) Hash() string {
	data, _ := json.Marshal(c)
	return cache.Hash(data)
}

// Encode writes the config as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// String returns the config as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	_ = c.Encode(&buf)
	return buf.String()
}

func (c *Config) units(um float64) geom.Unit { return catalog.Microns(um, c.DBUnits) }

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}
