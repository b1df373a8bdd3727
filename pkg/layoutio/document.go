package layoutio

import (
	"github.com/google/uuid"

	"github.com/matzehuels/padring/pkg/catalog"
	"github.com/matzehuels/padring/pkg/errors"
	"github.com/matzehuels/padring/pkg/floorplan"
	"github.com/matzehuels/padring/pkg/geom"
)

// Version is the document format version written by this package.
const Version = 1

// Namespace is the UUID namespace for layout IDs.
var Namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/padring/layout"))

// LayoutID returns the document ID for a config hash.
func LayoutID(configHash string) string {
	return uuid.NewSHA1(Namespace, []byte(configHash)).String()
}

// Document is the serializable form of a layout. All lengths are database
// units.
type Document struct {
	ID         string         `json:"id" bson:"_id"`
	ConfigHash string         `json:"config_hash" bson:"config_hash"`
	Version    int            `json:"version" bson:"version"`
	DBUnits    int            `json:"db_units" bson:"db_units"`
	Die        Die            `json:"die" bson:"die"`
	Ring       Rect           `json:"ring" bson:"ring"`
	Instances  []Instance     `json:"instances" bson:"instances"`
	Pins       []Pin          `json:"pins" bson:"pins"`
	FillCounts map[string]int `json:"fill_counts" bson:"fill_counts"`
	Sides      []Side         `json:"sides" bson:"sides"`
}

// Rect is a rectangle as lower-left and upper-right corners.
type Rect struct {
	X0 int64 `json:"x0" bson:"x0"`
	Y0 int64 `json:"y0" bson:"y0"`
	X1 int64 `json:"x1" bson:"x1"`
	Y1 int64 `json:"y1" bson:"y1"`
}

// Die mirrors [floorplan.Die].
type Die struct {
	Width  int64 `json:"width" bson:"width"`
	Height int64 `json:"height" bson:"height"`
	Core   Rect  `json:"core" bson:"core"`
	Margin int64 `json:"margin" bson:"margin"`
	Grid   int64 `json:"grid" bson:"grid"`
}

// Instance is one placed cell. X and Y are the placement location; Width
// and Height are the placed bounding box.
type Instance struct {
	Name   string `json:"name" bson:"name"`
	Role   string `json:"role" bson:"role"`
	Cell   string `json:"cell" bson:"cell"`
	Class  string `json:"class" bson:"class"`
	Kind   string `json:"kind" bson:"kind"`
	Side   string `json:"side,omitempty" bson:"side,omitempty"`
	X      int64  `json:"x" bson:"x"`
	Y      int64  `json:"y" bson:"y"`
	Width  int64  `json:"width" bson:"width"`
	Height int64  `json:"height" bson:"height"`
	Orient string `json:"orient" bson:"orient"`
}

// Pin is one die-level pin.
type Pin struct {
	Name      string `json:"name" bson:"name"`
	Owner     string `json:"owner" bson:"owner"`
	Side      string `json:"side" bson:"side"`
	Rect      Rect   `json:"rect" bson:"rect"`
	Layer     string `json:"layer" bson:"layer"`
	Direction string `json:"direction" bson:"direction"`
	Use       string `json:"use" bson:"use"`
}

// Side is the spacing summary of one side.
type Side struct {
	Side      string `json:"side" bson:"side"`
	Length    int64  `json:"length" bson:"length"`
	Start     int64  `json:"start" bson:"start"`
	End       int64  `json:"end" bson:"end"`
	PadExtent int64  `json:"pad_extent" bson:"pad_extent"`
	Spacing   int64  `json:"spacing" bson:"spacing"`
	Pads      int    `json:"pads" bson:"pads"`
	Fillers   int    `json:"fillers" bson:"fillers"`
	Depth     int64  `json:"depth" bson:"depth"`
	Gaps      []Rect `json:"gaps" bson:"gaps"`
}

// FromLayout builds the document of a layout.
func FromLayout(l *floorplan.Layout, configHash string, dbu int) *Document {
	doc := &Document{
		ID:         LayoutID(configHash),
		ConfigHash: configHash,
		Version:    Version,
		DBUnits:    dbu,
		Die: Die{
			Width:  int64(l.Die.Width),
			Height: int64(l.Die.Height),
			Core:   fromRect(l.Die.Core),
			Margin: int64(l.Die.Margin),
			Grid:   int64(l.Die.Grid),
		},
		Ring:       fromRect(l.Ring),
		Instances:  make([]Instance, len(l.Instances)),
		Pins:       make([]Pin, len(l.Pins)),
		FillCounts: make(map[string]int, len(l.FillCounts)),
	}

	for i, inst := range l.Instances {
		d := Instance{
			Name:   inst.ID.String(),
			Role:   inst.Role,
			Cell:   inst.Cell,
			Class:  string(inst.Class),
			Kind:   string(inst.Kind),
			X:      int64(inst.Box.X0),
			Y:      int64(inst.Box.Y0),
			Width:  int64(inst.Box.Width()),
			Height: int64(inst.Box.Height()),
			Orient: string(inst.Orient),
		}
		if inst.OnPerimeter() {
			d.Side = inst.Side.String()
		}
		doc.Instances[i] = d
	}
	for i, p := range l.Pins {
		doc.Pins[i] = Pin{
			Name:      p.Name,
			Owner:     p.Owner.String(),
			Side:      p.Side.String(),
			Rect:      fromRect(p.Box),
			Layer:     p.Layer,
			Direction: p.Direction,
			Use:       p.Use,
		}
	}
	for role, n := range l.FillCounts {
		doc.FillCounts[role] = n
	}
	for _, side := range geom.Sides {
		s, ok := l.Sides[side]
		if !ok {
			continue
		}
		gaps := make([]Rect, len(s.Gaps))
		for i, g := range s.Gaps {
			gaps[i] = fromRect(g)
		}
		doc.Sides = append(doc.Sides, Side{
			Side:      side.String(),
			Length:    int64(s.Length),
			Start:     int64(s.Start),
			End:       int64(s.End),
			PadExtent: int64(s.PadExtent),
			Spacing:   int64(s.Spacing),
			Pads:      s.Pads,
			Fillers:   s.Fillers,
			Depth:     int64(s.Depth),
			Gaps:      gaps,
		})
	}
	return doc
}

// Layout converts the document back into a layout.
func (d *Document) Layout() (*floorplan.Layout, error) {
	l := &floorplan.Layout{
		Die: floorplan.Die{
			Width:  geom.Unit(d.Die.Width),
			Height: geom.Unit(d.Die.Height),
			Core:   d.Die.Core.geom(),
			Margin: geom.Unit(d.Die.Margin),
			Grid:   geom.Unit(d.Die.Grid),
		},
		Ring:       d.Ring.geom(),
		Instances:  make([]floorplan.Instance, len(d.Instances)),
		Pins:       make([]floorplan.Pin, len(d.Pins)),
		FillCounts: make(map[string]int, len(d.FillCounts)),
		Sides:      make(map[geom.Side]floorplan.SideSummary, len(d.Sides)),
	}

	for i, inst := range d.Instances {
		id, err := floorplan.ParseIdent(inst.Name)
		if err != nil {
			return nil, invalid(err, "instance %d", i)
		}
		orient, err := geom.ParseOrientation(inst.Orient)
		if err != nil {
			return nil, invalid(err, "instance %s", inst.Name)
		}
		var side geom.Side
		if inst.Side != "" {
			if side, err = geom.ParseSide(inst.Side); err != nil {
				return nil, invalid(err, "instance %s", inst.Name)
			}
		}
		l.Instances[i] = floorplan.Instance{
			ID:     id,
			Role:   inst.Role,
			Cell:   inst.Cell,
			Class:  catalog.Class(inst.Class),
			Kind:   floorplan.Kind(inst.Kind),
			Side:   side,
			Box:    geom.RectAt(geom.Point{X: geom.Unit(inst.X), Y: geom.Unit(inst.Y)}, geom.Unit(inst.Width), geom.Unit(inst.Height)),
			Orient: orient,
		}
	}
	for i, p := range d.Pins {
		owner, err := floorplan.ParseIdent(p.Owner)
		if err != nil {
			return nil, invalid(err, "pin %s", p.Name)
		}
		side, err := geom.ParseSide(p.Side)
		if err != nil {
			return nil, invalid(err, "pin %s", p.Name)
		}
		l.Pins[i] = floorplan.Pin{
			Name:      p.Name,
			Owner:     owner,
			Side:      side,
			Box:       p.Rect.geom(),
			Layer:     p.Layer,
			Direction: p.Direction,
			Use:       p.Use,
		}
	}
	for role, n := range d.FillCounts {
		l.FillCounts[role] = n
	}
	for _, s := range d.Sides {
		side, err := geom.ParseSide(s.Side)
		if err != nil {
			return nil, invalid(err, "sides")
		}
		gaps := make([]geom.Rect, len(s.Gaps))
		for i, g := range s.Gaps {
			gaps[i] = g.geom()
		}
		l.Sides[side] = floorplan.SideSummary{
			Side:      side,
			Length:    geom.Unit(s.Length),
			Start:     geom.Unit(s.Start),
			End:       geom.Unit(s.End),
			PadExtent: geom.Unit(s.PadExtent),
			Spacing:   geom.Unit(s.Spacing),
			Pads:      s.Pads,
			Fillers:   s.Fillers,
			Depth:     geom.Unit(s.Depth),
			Gaps:      gaps,
		}
	}
	return l, nil
}

// Box returns the placed bounding box of the instance.
func (i Instance) Box() geom.Rect {
	return geom.R(geom.Unit(i.X), geom.Unit(i.Y), geom.Unit(i.X+i.Width), geom.Unit(i.Y+i.Height))
}

// Count returns the number of instances of kind.
func (d *Document) Count(kind floorplan.Kind) int {
	n := 0
	for _, inst := range d.Instances {
		if inst.Kind == string(kind) {
			n++
		}
	}
	return n
}

func fromRect(r geom.Rect) Rect {
	return Rect{X0: int64(r.X0), Y0: int64(r.Y0), X1: int64(r.X1), Y1: int64(r.Y1)}
}

func (r Rect) geom() geom.Rect {
	return geom.R(geom.Unit(r.X0), geom.Unit(r.Y0), geom.Unit(r.X1), geom.Unit(r.Y1))
}

func invalid(err error, format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeInvalidFormat, err, format, args...)
}
