package floorplan

import (
	"testing"

	"github.com/matzehuels/padring/pkg/catalog"
	"github.com/matzehuels/padring/pkg/errors"
	"github.com/matzehuels/padring/pkg/geom"
)

func TestPlaceMacrosAnchors(t *testing.T) {
	cat := catalog.Sky130()
	p := DefaultPolicy()
	die, err := SizeDie(cat, p.Sizing)
	if err != nil {
		t.Fatalf("SizeDie() error: %v", err)
	}
	ring := geom.R(204000, 204000, die.Width-204000, die.Height-204000)

	// Steps are lcm(1000, 460) = 23000 in x and lcm(1000, 2720) = 68000 in y.
	tests := []struct {
		anchor Anchor
		x, y   geom.Unit
	}{
		{AnchorNE, 3128000, 2652000},
		{AnchorNW, 943000, 2652000},
		{AnchorSE, 3128000, 952000},
		{AnchorSW, 943000, 952000},
		{AnchorCore, 943000, 952000},
	}
	for _, tt := range tests {
		t.Run(string(tt.anchor), func(t *testing.T) {
			id, _ := ParseIdent("ram")
			m := MacroPolicy{ID: id, Role: "ram", Anchor: tt.anchor, KeepOutCols: 250, KeepOutRows: 50}
			out, err := PlaceMacros(cat, die, p.Sizing, ring, nil, []MacroPolicy{m})
			if err != nil {
				t.Fatalf("PlaceMacros() error: %v", err)
			}
			got := out[0]
			if got.Box.X0 != tt.x || got.Box.Y0 != tt.y {
				t.Errorf("origin = %v, want (%d, %d)", got.Origin(), tt.x, tt.y)
			}
			if got.Box.Width() != 683100 || got.Box.Height() != 416540 {
				t.Errorf("size = %dx%d", got.Box.Width(), got.Box.Height())
			}
			if got.Orient != geom.OrientN || got.Kind != KindMacro {
				t.Errorf("instance = %+v", got)
			}
		})
	}
}

func TestPlaceMacrosRotated(t *testing.T) {
	cat := catalog.Sky130()
	p := DefaultPolicy()
	die, _ := SizeDie(cat, p.Sizing)
	id, _ := ParseIdent("ram")

	out, err := PlaceMacros(cat, die, p.Sizing, die.Rect(), nil, []MacroPolicy{{
		ID: id, Role: "ram", Anchor: AnchorExplicit, X: 1000000, Y: 1020000, Orient: geom.OrientE,
	}})
	if err != nil {
		t.Fatalf("PlaceMacros() error: %v", err)
	}
	if b := out[0].Box; b.Width() != 416540 || b.Height() != 683100 {
		t.Errorf("rotated footprint = %dx%d, want 416540x683100", b.Width(), b.Height())
	}
	// 1000000 snaps down to 989000 on the 23000 step; 1020000 is on the 68000 step.
	if o := out[0].Origin(); o.X != 989000 || o.Y != 1020000 {
		t.Errorf("origin = %v", o)
	}
}

func TestPlaceMacrosClipsEastRing(t *testing.T) {
	cat := catalog.Sky130()
	p := DefaultPolicy()
	die, _ := SizeDie(cat, p.Sizing)
	ring := geom.R(204000, 204000, die.Width-204000, die.Height-204000)
	id, _ := ParseIdent("soc.ram")

	// x snaps to 3887000, so the macro ends at 4570100, inside the die but
	// past the east ring's inner edge at 4556000.
	m := MacroPolicy{ID: id, Role: "ram", Anchor: AnchorExplicit, X: 3900000, Y: 1360000}
	_, err := PlaceMacros(cat, die, p.Sizing, ring, nil, []MacroPolicy{m})

	var overlap *MacroOverlapError
	if !asError(err, &overlap) {
		t.Fatalf("PlaceMacros() error = %v, want MacroOverlapError", err)
	}
	want := geom.R(3887000, 1360000, 4570100, 1776540)
	if overlap.Box != want || overlap.Against != "ring" || overlap.AgainstBox != ring {
		t.Errorf("error = %+v, want box %v against ring %v", overlap, want, ring)
	}
	if overlap.Macro.String() != "soc.ram" {
		t.Errorf("macro = %s", overlap.Macro)
	}
	if !errors.Is(err, errors.ErrCodeMacroOverlap) {
		t.Errorf("code = %s, want MACRO_OVERLAP", errors.GetCode(err))
	}
}

func TestPlaceMacrosConflicts(t *testing.T) {
	cat := catalog.Sky130()
	p := DefaultPolicy()
	die, _ := SizeDie(cat, p.Sizing)
	ring := geom.R(204000, 204000, die.Width-204000, die.Height-204000)
	a, _ := ParseIdent("ram_a")
	b, _ := ParseIdent("ram_b")

	tests := []struct {
		name    string
		placed  []Instance
		macros  []MacroPolicy
		against string
	}{
		{
			name:    "outside die",
			macros:  []MacroPolicy{{ID: a, Role: "ram", X: 4600000, Y: 1360000}},
			against: "die",
		},
		{
			name:    "inside core",
			macros:  []MacroPolicy{{ID: a, Role: "ram", Anchor: AnchorCore, OutsideCore: true}},
			against: "core",
		},
		{
			name: "second macro",
			macros: []MacroPolicy{
				{ID: a, Role: "ram", Anchor: AnchorSW},
				{ID: b, Role: "ram", Anchor: AnchorCore},
			},
			against: "ram_a",
		},
		{
			name:    "placed instance",
			placed:  []Instance{{ID: NewIdent(Seg("blocker")), Box: geom.R(900000, 900000, 1000000, 1000000)}},
			macros:  []MacroPolicy{{ID: a, Role: "ram", Anchor: AnchorSW}},
			against: "blocker",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlaceMacros(cat, die, p.Sizing, ring, tt.placed, tt.macros)
			var overlap *MacroOverlapError
			if !asError(err, &overlap) {
				t.Fatalf("PlaceMacros() error = %v, want MacroOverlapError", err)
			}
			if overlap.Against != tt.against {
				t.Errorf("against = %q, want %q", overlap.Against, tt.against)
			}
		})
	}
}

func TestParseAnchor(t *testing.T) {
	for _, s := range []string{"ne", "NW", "se", "sw", "core", "explicit", ""} {
		if _, err := ParseAnchor(s); err != nil {
			t.Errorf("ParseAnchor(%q) error: %v", s, err)
		}
	}
	if _, err := ParseAnchor("middle"); !errors.Is(err, errors.ErrCodeInvalidPolicy) {
		t.Errorf("ParseAnchor(middle) error = %v, want INVALID_POLICY", err)
	}
}
