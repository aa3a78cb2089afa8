package adcanvas

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS-style color: a named color ("white", "tomato")
// or a hex form "#rgb", "#rgba", "#rrggbb", "#rrggbbaa".
func ParseColor(s string) (gg.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return gg.Black, fmt.Errorf("%w: empty", ErrInvalidColor)
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return gg.FromColor(c), nil
	}
	if s[0] != '#' {
		return gg.Black, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	hex := s[1:]
	alpha := 1.0
	switch len(hex) {
	case 3, 6:
	case 4:
		a, err := strconv.ParseUint(hex[3:], 16, 8)
		if err != nil {
			return gg.Black, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		alpha = float64(a*17) / 255
		hex = hex[:3]
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return gg.Black, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		alpha = float64(a) / 255
		hex = hex[:6]
	default:
		return gg.Black, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return gg.Black, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// resolveColor is ParseColor with the canvas fallback: anything unparseable
// paints opaque black.
func resolveColor(s string) gg.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		Logger().Debug("adcanvas: color fallback", "color", s, "err", err)
		return gg.Black
	}
	return c
}
