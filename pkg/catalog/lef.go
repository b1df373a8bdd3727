package catalog

import (
	"bufio"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/padring/pkg/errors"
)

// LEFBinding maps a LEF macro onto a catalog role. Class is optional; when
// empty it is derived from the macro's CLASS statement. LEF has no ground
// class, so a PAD POWER macro counts as ground when its role or name starts
// a supply segment with vss or gnd.
type LEFBinding struct {
	Role  string
	Class Class
}

// LEFMacro is the subset of a LEF MACRO block the catalog needs.
type LEFMacro struct {
	Name   string
	Class  string // e.g. "PAD", "PAD SPACER", "ENDCAP TOPLEFT", "BLOCK"
	Width  float64
	Height float64
}

const (
	lefIdle = iota
	lefMacro
	lefSkip // inside a PIN or OBS block of a macro
)

// ParseLEF reads the MACRO blocks of a LEF stream. Only CLASS and SIZE are
// kept; pins, obstructions and layer definitions are skipped.
func ParseLEF(r io.Reader) ([]LEFMacro, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		macros  []LEFMacro
		current LEFMacro
		skipEnd string
		mode    = lefIdle
		line    int
	)

	for scanner.Scan() {
		line++
		tokens := strings.Fields(strings.TrimSuffix(strings.TrimSpace(scanner.Text()), ";"))
		if len(tokens) == 0 || strings.HasPrefix(tokens[0], "#") {
			continue
		}

		switch mode {
		case lefIdle:
			if tokens[0] == "MACRO" && len(tokens) > 1 {
				current = LEFMacro{Name: tokens[1]}
				mode = lefMacro
			}
		case lefMacro:
			switch tokens[0] {
			case "CLASS":
				current.Class = strings.Join(tokens[1:], " ")
			case "SIZE":
				// SIZE <w> BY <h>
				if len(tokens) < 4 || tokens[2] != "BY" {
					return nil, errors.New(errors.ErrCodeInvalidFormat, "lef line %d: malformed SIZE in macro %s", line, current.Name)
				}
				w, err := strconv.ParseFloat(tokens[1], 64)
				if err != nil {
					return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "lef line %d: width of %s", line, current.Name)
				}
				h, err := strconv.ParseFloat(tokens[3], 64)
				if err != nil {
					return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "lef line %d: height of %s", line, current.Name)
				}
				current.Width, current.Height = w, h
			case "PIN", "OBS":
				skipEnd = ""
				if tokens[0] == "PIN" && len(tokens) > 1 {
					skipEnd = tokens[1]
				}
				mode = lefSkip
			case "END":
				if len(tokens) > 1 && tokens[1] == current.Name {
					macros = append(macros, current)
					mode = lefIdle
				}
			}
		case lefSkip:
			// PIN blocks end with "END <pin>", OBS with a bare "END".
			if tokens[0] == "END" {
				if (skipEnd == "" && len(tokens) == 1) || (len(tokens) > 1 && tokens[1] == skipEnd) {
					mode = lefMacro
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if mode != lefIdle {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "lef: unterminated macro %s", current.Name)
	}
	return macros, nil
}

// LoadLEF builds catalog cells for the macros named in bindings. Lengths are
// converted to database units at dbu per micron. Macros not mentioned in
// bindings are ignored; bindings without a matching macro are an error.
func LoadLEF(r io.Reader, dbu int, bindings map[string]LEFBinding) ([]Cell, error) {
	macros, err := ParseLEF(r)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]LEFMacro, len(macros))
	for _, m := range macros {
		byName[m.Name] = m
	}

	cells := make([]Cell, 0, len(bindings))
	for _, tech := range sortedKeys(bindings) {
		b := bindings[tech]
		m, ok := byName[tech]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownCell, "lef has no macro %q (bound to role %q)", tech, b.Role)
		}
		class := b.Class
		if class == "" {
			class = classFromLEF(m.Class)
			if class == ClassPower && (isGroundName(b.Role) || isGroundName(m.Name)) {
				class = ClassGround
			}
		}
		cell := Cell{
			Role:     b.Role,
			Width:    Microns(m.Width, dbu),
			Height:   Microns(m.Height, dbu),
			TechName: m.Name,
			Class:    class,
		}
		if err := cell.Validate(); err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}
	return cells, nil
}

// classFromLEF maps a LEF CLASS statement to a catalog class.
func classFromLEF(lefClass string) Class {
	f := strings.Fields(lefClass)
	if len(f) == 0 {
		return ClassMacro
	}
	switch f[0] {
	case "PAD":
		if len(f) > 1 {
			switch f[1] {
			case "SPACER", "AREAIO":
				return ClassFiller
			case "POWER":
				return ClassPower
			}
		}
		return ClassSignal
	case "ENDCAP":
		return ClassCorner
	case "BLOCK":
		return ClassMacro
	}
	return ClassMacro
}

// isGroundName reports whether any "_" separated segment of name starts
// with vss or gnd, as in vssio or sky130_ef_io__vssd_hvc_pad.
func isGroundName(name string) bool {
	for _, seg := range strings.Split(strings.ToLower(name), "_") {
		if strings.HasPrefix(seg, "vss") || strings.HasPrefix(seg, "gnd") {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
