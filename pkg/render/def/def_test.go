package def

import (
	"strings"
	"testing"

	"github.com/matzehuels/padring/pkg/catalog"
	"github.com/matzehuels/padring/pkg/floorplan"
	"github.com/matzehuels/padring/pkg/geom"
)

func tinyLayout() *floorplan.Layout {
	pad := floorplan.NewIdent(floorplan.Seg("padring"), floorplan.At("we_pads", 0), floorplan.Seg("vdd"))
	pad2 := floorplan.NewIdent(floorplan.Seg("padring"), floorplan.At("ea_pads", 0), floorplan.Seg("vdd"))
	return &floorplan.Layout{
		Die: floorplan.Die{Width: 1000, Height: 800},
		Instances: []floorplan.Instance{
			{ID: floorplan.CornerIdent("sw"), Cell: "io_corner", Kind: floorplan.KindCorner, Box: geom.R(0, 0, 100, 100), Orient: geom.OrientS},
			{ID: pad, Cell: "io_vdd", Kind: floorplan.KindPad, Box: geom.R(0, 300, 100, 350), Orient: geom.OrientW},
		},
		Pins: []floorplan.Pin{
			{Name: "vdd", Owner: pad, Box: geom.R(0, 310, 10, 320), Layer: "met5", Direction: floorplan.DirInOut, Use: floorplan.UsePower},
			{Name: "vdd", Owner: pad2, Box: geom.R(990, 310, 1000, 320), Layer: "met5", Direction: floorplan.DirInOut, Use: floorplan.UsePower},
		},
	}
}

func TestRender_Tiny(t *testing.T) {
	out, err := Render(tinyLayout(), Options{Design: "chip"})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	want := `VERSION 5.8 ;
DIVIDERCHAR "/" ;
BUSBITCHARS "[]" ;
DESIGN chip ;
UNITS DISTANCE MICRONS 1000 ;
DIEAREA ( 0 0 ) ( 1000 800 ) ;

COMPONENTS 2 ;
  - corner_sw io_corner + FIXED ( 0 0 ) S ;
  - padring.we_pads\[0\].vdd io_vdd + FIXED ( 0 300 ) W ;
END COMPONENTS

PINS 1 ;
  - vdd + NET vdd + DIRECTION INOUT + USE POWER
    + PORT
      + LAYER met5 ( 0 0 ) ( 10 10 )
      + FIXED ( 0 310 ) N
    + PORT
      + LAYER met5 ( 0 0 ) ( 10 10 )
      + FIXED ( 990 310 ) N ;
END PINS

END DESIGN
`
	if got := string(out); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRender_Default(t *testing.T) {
	l, err := floorplan.Build(catalog.Sky130(), floorplan.DefaultPolicy())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	out, err := Render(l, Options{})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	s := string(out)

	if !strings.Contains(s, "DESIGN padring ;") {
		t.Error("Render() missing default design name")
	}
	if !strings.Contains(s, "DIEAREA ( 0 0 ) ( 4760000 4080000 ) ;") {
		t.Error("Render() missing die area")
	}
	if got := strings.Count(s, "+ FIXED (") - strings.Count(s, "      + FIXED ("); got != len(l.Instances) {
		t.Errorf("component count = %d, want %d", got, len(l.Instances))
	}
	if got := strings.Count(s, "+ PORT"); got != len(l.Pins) {
		t.Errorf("port count = %d, want %d", got, len(l.Pins))
	}

	names := make(map[string]bool)
	for _, p := range l.Pins {
		names[p.Name] = true
	}
	if got := strings.Count(s, "+ NET "); got != len(names) {
		t.Errorf("pin entries = %d, want %d", got, len(names))
	}
	if strings.Contains(s, "we_pads[0]") {
		t.Error("Render() wrote unescaped bus brackets in an instance name")
	}
}

func TestGroupPins(t *testing.T) {
	pins := []floorplan.Pin{{Name: "a"}, {Name: "b"}, {Name: "a"}, {Name: "c"}}
	groups := groupPins(pins)

	if len(groups) != 3 {
		t.Fatalf("groupPins() = %d groups, want 3", len(groups))
	}
	order := []string{"a", "b", "c"}
	for i, g := range groups {
		if g.pin.Name != order[i] {
			t.Errorf("group %d = %s, want %s", i, g.pin.Name, order[i])
		}
	}
	if len(groups[0].ports) != 2 {
		t.Errorf("group a has %d ports, want 2", len(groups[0].ports))
	}
}
