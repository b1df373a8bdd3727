package floorplan

import (
	"testing"

	"github.com/matzehuels/padring/pkg/catalog"
	"github.com/matzehuels/padring/pkg/errors"
	"github.com/matzehuels/padring/pkg/geom"
)

func TestSizeDieSky130(t *testing.T) {
	die, err := SizeDie(catalog.Sky130(), DefaultPolicy().Sizing)
	if err != nil {
		t.Fatalf("SizeDie() error: %v", err)
	}
	if die.Width != 4760000 || die.Height != 4080000 {
		t.Errorf("die = %dx%d, want 4760000x4080000", die.Width, die.Height)
	}
	if die.Margin != 816000 {
		t.Errorf("margin = %d, want 816000", die.Margin)
	}
	// ram x = snap(4760000-816000-683100-115000, lcm(1000, 460)) = 3128000
	if want := geom.R(816000, 816000, 3013000, 3264000); die.Core != want {
		t.Errorf("core = %v, want %v", die.Core, want)
	}
}

func TestSizeDieWithoutReserve(t *testing.T) {
	p := DefaultPolicy().Sizing
	p.Reserve = nil
	die, err := SizeDie(catalog.Sky130(), p)
	if err != nil {
		t.Fatalf("SizeDie() error: %v", err)
	}
	if die.Core != die.MarginBox() {
		t.Errorf("core = %v, want margin box %v", die.Core, die.MarginBox())
	}
}

func TestSizeDieErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*SizingPolicy)
		code   errors.Code
	}{
		{"off grid", func(p *SizingPolicy) { p.StdCellWidth = 455; p.Cols = 3 }, errors.ErrCodeDieSizing},
		{"core swallowed by reserve", func(p *SizingPolicy) { p.Reserve.KeepOutCols = 6000 }, errors.ErrCodeDieSizing},
		{"zero grid", func(p *SizingPolicy) { p.Grid = 0 }, errors.ErrCodeInvalidGrid},
		{"unknown margin role", func(p *SizingPolicy) { p.MarginRoles = []string{"nope"} }, errors.ErrCodeUnknownCell},
		{"unknown reserve role", func(p *SizingPolicy) { p.Reserve.Role = "nope" }, errors.ErrCodeUnknownCell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPolicy().Sizing
			tt.modify(&p)
			_, err := SizeDie(catalog.Sky130(), p)
			if !errors.Is(err, tt.code) {
				t.Errorf("SizeDie() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestNewDie(t *testing.T) {
	tests := []struct {
		name   string
		w, h   geom.Unit
		core   geom.Rect
		margin geom.Unit
		ok     bool
	}{
		{"core equals margin box", 1000, 1000, geom.R(100, 100, 900, 900), 100, true},
		{"core inside margin box", 1000, 1000, geom.R(200, 200, 800, 800), 100, true},
		{"core in margin", 1000, 1000, geom.R(50, 100, 900, 900), 100, false},
		{"empty core", 1000, 1000, geom.R(500, 100, 500, 900), 100, false},
		{"width off grid", 1005, 1000, geom.R(100, 100, 900, 900), 100, false},
		{"negative size", -10, 1000, geom.R(100, 100, 900, 900), 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDie(tt.w, tt.h, tt.core, tt.margin, 10)
			if tt.ok && err != nil {
				t.Errorf("NewDie() error: %v", err)
			}
			if !tt.ok {
				var sizing *DieSizingError
				if !asError(err, &sizing) {
					t.Errorf("NewDie() error = %v, want DieSizingError", err)
				}
			}
		})
	}
}
