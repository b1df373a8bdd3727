package floorplan

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/padring/pkg/errors"
	"github.com/matzehuels/padring/pkg/geom"
)

// Segment is one component of a hierarchical instance name. Index is -1 for
// segments without a bus index.
type Segment struct {
	Name  string
	Index int
}

// Seg returns an unindexed segment.
func Seg(name string) Segment { return Segment{Name: name, Index: -1} }

// At returns an indexed segment, printed as name[i].
func At(name string, i int) Segment { return Segment{Name: name, Index: i} }

func (s Segment) String() string {
	if s.Index < 0 {
		return s.Name
	}
	return s.Name + "[" + strconv.Itoa(s.Index) + "]"
}

// Ident is a structured hierarchical instance name.
type Ident []Segment

// NewIdent builds an identifier from segments.
func NewIdent(segs ...Segment) Ident { return Ident(segs) }

// Child returns a copy of id extended by segs.
func (id Ident) Child(segs ...Segment) Ident {
	out := make(Ident, 0, len(id)+len(segs))
	out = append(out, id...)
	return append(out, segs...)
}

// String formats the identifier in dotted form.
func (id Ident) String() string {
	parts := make([]string, len(id))
	for i, s := range id {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

var defEscaper = strings.NewReplacer("[", `\[`, "]", `\]`)

// DEF formats the identifier for a DEF COMPONENTS section. Bus brackets
// inside instance names are escaped so they are not read as bit selects.
func (id Ident) DEF() string { return defEscaper.Replace(id.String()) }

// Equal reports whether id and other name the same instance.
func (id Ident) Equal(other Ident) bool {
	if len(id) != len(other) {
		return false
	}
	for i := range id {
		if id[i] != other[i] {
			return false
		}
	}
	return true
}

// MarshalText implements encoding.TextMarshaler.
func (id Ident) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *Ident) UnmarshalText(b []byte) error {
	v, err := ParseIdent(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// ParseIdent parses a dotted identifier. Escaped brackets as written by
// [Ident.DEF] are accepted too.
func ParseIdent(s string) (Ident, error) {
	s = strings.NewReplacer(`\[`, "[", `\]`, "]").Replace(strings.TrimSpace(s))
	if s == "" {
		return nil, errors.New(errors.ErrCodeInvalidPolicy, "empty instance name")
	}
	var id Ident
	for _, part := range strings.Split(s, ".") {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPolicy, err, "instance name %q", s)
		}
		id = append(id, seg)
	}
	return id, nil
}

func parseSegment(part string) (Segment, error) {
	open := strings.IndexByte(part, '[')
	if open < 0 {
		if part == "" || strings.ContainsRune(part, ']') {
			return Segment{}, fmt.Errorf("bad segment %q", part)
		}
		return Seg(part), nil
	}
	if open == 0 || !strings.HasSuffix(part, "]") {
		return Segment{}, fmt.Errorf("bad segment %q", part)
	}
	idx, err := strconv.Atoi(part[open+1 : len(part)-1])
	if err != nil || idx < 0 {
		return Segment{}, fmt.Errorf("bad index in segment %q", part)
	}
	return At(part[:open], idx), nil
}

// =============================================================================
// Naming scheme
// =============================================================================

// SignalIdent names the i-th signal pad of a side:
// padring.we_pads[0].i0.padio[i].i0.<role>.
func SignalIdent(side geom.Side, i int, role string) Ident {
	return NewIdent(Seg("padring"), At(side.Abbrev()+"_pads", 0), Seg("i0"), At("padio", i), Seg("i0"), Seg(role))
}

// SignalPin names the pin of the i-th signal pad of a side: we_pad[i].
func SignalPin(side geom.Side, i int) string {
	return side.Abbrev() + "_pad[" + strconv.Itoa(i) + "]"
}

// PowerIdent names the k-th supply pad for port on a side:
// padring.we_pads[0].i0.padvdd[k].i0.iovdd.
func PowerIdent(side geom.Side, port string, k int) Ident {
	return NewIdent(Seg("padring"), At(side.Abbrev()+"_pads", 0), Seg("i0"), At("pad"+port, k), Seg("i0"), Seg("io"+port))
}

// SupplyIdent is the flat name of the n-th supply pad of port: vdd0.
func SupplyIdent(port string, n int) Ident { return NewIdent(Seg(port + strconv.Itoa(n))) }

// PowerPin names the pin of a supply pad. Ports listed in shared connect to
// one die-level net and keep their bare name; other ports are prefixed with
// the side (we_vddio).
func PowerPin(side geom.Side, port string, shared []string) string {
	if slices.Contains(shared, port) {
		return port
	}
	return side.Abbrev() + "_" + port
}

// CornerIdent names the corner cell at one of sw, nw, se, ne.
func CornerIdent(corner string) Ident { return NewIdent(Seg("corner_" + corner)) }

// fillerPrefix names gap g of a side; its fillers are we_gap[g].fill[k].
func fillerPrefix(side geom.Side, g int) Ident { return NewIdent(At(side.Abbrev()+"_gap", g)) }
