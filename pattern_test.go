package adcanvas

import (
	"math"
	"testing"
)

func TestPatternSegmentsCount(t *testing.T) {
	tests := []struct {
		width, height int
		want          int
	}{
		{400, 400, 16}, // spacing 10, last end x = 160 < 200
		{340, 400, 16}, // spacing 10, last end x = 160 < 170
		{300, 300, 14}, // end x must stay below 150
		{170, 400, 8},  // spacing 10, end x < 85
		{100, 100, 8},  // spacing 100/17, end x < 50
		{10, 10, 8},    // below 170 wide the ratio alone keeps 8
	}
	for _, tt := range tests {
		got := PatternSegments(tt.width, tt.height)
		if len(got) != tt.want {
			t.Errorf("PatternSegments(%d, %d) kept %d segments, want %d", tt.width, tt.height, len(got), tt.want)
		}
	}
}

func TestPatternSegmentsGeometry(t *testing.T) {
	segs := PatternSegments(400, 400)
	if len(segs) > PatternLines {
		t.Fatalf("got %d segments, want at most %d", len(segs), PatternLines)
	}

	dx := PatternLineLength * math.Cos(PatternTilt)
	wantY0 := 200 - PatternLineLength/2 + PatternLineLength/2*math.Sin(PatternTilt)
	for i, s := range segs {
		wantX1 := float64(i+1) * 10
		if math.Abs(s.X1-wantX1) > 1e-9 {
			t.Errorf("segment %d end x = %v, want %v", i, s.X1, wantX1)
		}
		if math.Abs((s.X1-s.X0)-dx) > 1e-9 {
			t.Errorf("segment %d horizontal extent = %v, want %v", i, s.X1-s.X0, dx)
		}
		if math.Abs(s.Y0-wantY0) > 1e-9 || s.Y1 != 260 {
			t.Errorf("segment %d y = (%v, %v), want (%v, 260)", i, s.Y0, s.Y1, wantY0)
		}
		if s.X1 >= 200 {
			t.Errorf("segment %d ends at x=%v, past the midpoint", i, s.X1)
		}
	}
}

func TestDrawPatternPaintsLeftHalfOnly(t *testing.T) {
	s := newTestSurface(t)
	if err := DrawBackground(s, "white"); err != nil {
		t.Fatal(err)
	}
	if err := DrawPattern(s); err != nil {
		t.Fatalf("DrawPattern() error = %v", err)
	}
	img := s.Image()

	inked := 0
	for y := 0; y < 400; y++ {
		for x := 0; x < 400; x++ {
			c := img.RGBAAt(x, y)
			if c.R > 200 {
				continue
			}
			inked++
			if x > 201 {
				t.Fatalf("pattern ink at (%d,%d), right of the midpoint", x, y)
			}
		}
	}
	if inked == 0 {
		t.Error("DrawPattern painted nothing")
	}
}
