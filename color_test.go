package adcanvas

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want gg.RGBA
	}{
		{"#f7df1e", gg.RGBA{R: 247.0 / 255, G: 223.0 / 255, B: 30.0 / 255, A: 1}},
		{"#FF0000", gg.RGBA{R: 1, A: 1}},
		{"#0f0", gg.RGBA{G: 1, A: 1}},
		{"#0000ff80", gg.RGBA{B: 1, A: 128.0 / 255}},
		{"#fff8", gg.RGBA{R: 1, G: 1, B: 1, A: 136.0 / 255}},
		{"white", gg.RGBA{R: 1, G: 1, B: 1, A: 1}},
		{"  Black ", gg.RGBA{A: 1}},
		{"tomato", gg.RGBA{R: 1, G: 99.0 / 255, B: 71.0 / 255, A: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
			}
			if !colorClose(got, tt.want) {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "#", "#12", "#12345", "#ggg", "#zzzzzzzz", "notacolor", "rgb(1,2,3)"} {
		got, err := ParseColor(in)
		if !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", in, err)
		}
		if got != gg.Black {
			t.Errorf("ParseColor(%q) = %+v, want black fallback", in, got)
		}
	}
}

func TestResolveColorFallback(t *testing.T) {
	if got := resolveColor("definitely-not-a-color"); got != gg.Black {
		t.Errorf("resolveColor() = %+v, want black", got)
	}
}

func colorClose(a, b gg.RGBA) bool {
	const eps = 1e-6
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}
