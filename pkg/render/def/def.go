package def

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/matzehuels/padring/pkg/floorplan"
)

// DefaultDesign is the design name used when [Options.Design] is empty.
const DefaultDesign = "padring"

// Options configures DEF output.
type Options struct {
	Design  string // DESIGN statement; defaults to DefaultDesign
	DBUnits int    // database units per micron; defaults to 1000
}

// pinGroup collects the ports of one die-level pin.
type pinGroup struct {
	pin   floorplan.Pin
	ports []floorplan.Pin
}

// Write writes l as DEF to w.
func Write(w io.Writer, l *floorplan.Layout, opts Options) error {
	if opts.Design == "" {
		opts.Design = DefaultDesign
	}
	if opts.DBUnits <= 0 {
		opts.DBUnits = 1000
	}

	bw := bufio.NewWriter(w)
	writeHeader(bw, l, opts)
	writeComponents(bw, l)
	writePins(bw, l)
	fmt.Fprintln(bw, "END DESIGN")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write DEF: %w", err)
	}
	return nil
}

// Render returns the DEF text of l.
func Render(l *floorplan.Layout, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, l, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(w io.Writer, l *floorplan.Layout, opts Options) {
	fmt.Fprintln(w, "VERSION 5.8 ;")
	fmt.Fprintln(w, `DIVIDERCHAR "/" ;`)
	fmt.Fprintln(w, `BUSBITCHARS "[]" ;`)
	fmt.Fprintf(w, "DESIGN %s ;\n", opts.Design)
	fmt.Fprintf(w, "UNITS DISTANCE MICRONS %d ;\n", opts.DBUnits)
	fmt.Fprintf(w, "DIEAREA ( 0 0 ) ( %d %d ) ;\n\n", l.Die.Width, l.Die.Height)
}

func writeComponents(w io.Writer, l *floorplan.Layout) {
	fmt.Fprintf(w, "COMPONENTS %d ;\n", len(l.Instances))
	for _, inst := range l.Instances {
		o := inst.Origin()
		fmt.Fprintf(w, "  - %s %s + FIXED ( %d %d ) %s ;\n", inst.ID.DEF(), inst.Cell, o.X, o.Y, inst.Orient)
	}
	fmt.Fprint(w, "END COMPONENTS\n\n")
}

func writePins(w io.Writer, l *floorplan.Layout) {
	groups := groupPins(l.Pins)
	fmt.Fprintf(w, "PINS %d ;\n", len(groups))
	for _, g := range groups {
		fmt.Fprintf(w, "  - %s + NET %s + DIRECTION %s + USE %s\n", g.pin.Name, g.pin.Name, g.pin.Direction, g.pin.Use)
		for i, p := range g.ports {
			b := p.Box
			fmt.Fprintln(w, "    + PORT")
			fmt.Fprintf(w, "      + LAYER %s ( 0 0 ) ( %d %d )\n", p.Layer, b.Width(), b.Height())
			fmt.Fprintf(w, "      + FIXED ( %d %d ) N", b.X0, b.Y0)
			if i == len(g.ports)-1 {
				fmt.Fprint(w, " ;")
			}
			fmt.Fprintln(w)
		}
	}
	fmt.Fprint(w, "END PINS\n\n")
}

// groupPins merges pins by name, keeping first-seen order.
func groupPins(pins []floorplan.Pin) []*pinGroup {
	var groups []*pinGroup
	byName := make(map[string]*pinGroup)
	for _, p := range pins {
		g, ok := byName[p.Name]
		if !ok {
			g = &pinGroup{pin: p}
			byName[p.Name] = g
			groups = append(groups, g)
		}
		g.ports = append(g.ports, p)
	}
	return groups
}
