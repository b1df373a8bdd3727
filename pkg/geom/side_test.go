package geom

import "testing"

func TestEdgeToAbsolute(t *testing.T) {
	const w, h = 1000, 600
	tests := []struct {
		side   Side
		offset Unit
		depth  Unit
		want   Point
	}{
		{South, 100, 0, Point{100, 0}},
		{South, 100, 20, Point{100, 20}},
		{North, 100, 0, Point{100, 600}},
		{North, 100, 20, Point{100, 580}},
		{West, 100, 0, Point{0, 100}},
		{West, 100, 20, Point{20, 100}},
		{East, 100, 0, Point{1000, 100}},
		{East, 100, 20, Point{980, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			got := EdgeToAbsolute(tt.side, tt.offset, tt.depth, w, h)
			if got != tt.want {
				t.Errorf("EdgeToAbsolute(%v, %d, %d) = %v, want %v", tt.side, tt.offset, tt.depth, got, tt.want)
			}
		})
	}
}

func TestEdgeRect(t *testing.T) {
	const w, h = 1000, 600
	// A 40 wide, 180 deep pad at offset 410 on every side.
	tests := []struct {
		side Side
		want Rect
	}{
		{South, R(410, 0, 450, 180)},
		{North, R(410, 420, 450, 600)},
		{West, R(0, 410, 180, 450)},
		{East, R(820, 410, 1000, 450)},
	}

	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			got := EdgeRect(tt.side, 410, 0, 40, 180, w, h)
			if got != tt.want {
				t.Errorf("EdgeRect(%v) = %v, want %v", tt.side, got, tt.want)
			}
			lo, hi := tt.side.AlongInterval(got)
			if lo != 410 || hi != 450 {
				t.Errorf("AlongInterval() = [%d, %d), want [410, 450)", lo, hi)
			}
		})
	}
}

func TestParseSide(t *testing.T) {
	tests := []struct {
		in      string
		want    Side
		wantErr bool
	}{
		{"west", West, false},
		{"North", North, false},
		{"ea", East, false},
		{"s", South, false},
		{" SOUTH ", South, false},
		{"up", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSide(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSide(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseSide(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSideOrientation(t *testing.T) {
	want := map[Side]Orientation{West: OrientW, North: OrientN, East: OrientE, South: OrientS}
	for side, o := range want {
		if got := side.Orientation(); got != o {
			t.Errorf("%v.Orientation() = %v, want %v", side, got, o)
		}
	}
}

func TestOrientation(t *testing.T) {
	tests := []struct {
		o        Orientation
		rotation int
		swaps    bool
	}{
		{OrientN, 0, false},
		{OrientW, 90, true},
		{OrientS, 180, false},
		{OrientE, 270, true},
		{OrientFN, 0, false},
		{OrientFE, 270, true},
	}
	for _, tt := range tests {
		if got := tt.o.Rotation(); got != tt.rotation {
			t.Errorf("%v.Rotation() = %d, want %d", tt.o, got, tt.rotation)
		}
		if got := tt.o.Swaps(); got != tt.swaps {
			t.Errorf("%v.Swaps() = %v, want %v", tt.o, got, tt.swaps)
		}
	}

	w, h := OrientW.Footprint(40, 180)
	if w != 180 || h != 40 {
		t.Errorf("OrientW.Footprint(40, 180) = %dx%d, want 180x40", w, h)
	}
	if _, err := ParseOrientation("R90"); err == nil {
		t.Error("ParseOrientation should reject non-DEF names")
	}
}
