package adcanvas

import (
	"math"

	"github.com/gogpu/gg"
)

// Pattern layer geometry.
const (
	PatternLines      = 16
	PatternLineLength = 120.0
	PatternTilt       = math.Pi / 12
	patternMaxSpacing = 10.0
)

// Segment is one line of the pattern layer.
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// PatternSegments returns the segments the pattern layer draws on a surface
// of the given size. Segment i ends at x = i*spacing, where spacing is the
// smaller of width/17 and 10; segments ending at or past the horizontal
// midpoint are dropped, so fewer than PatternLines may be returned.
func PatternSegments(width, height int) []Segment {
	w, h := float64(width), float64(height)
	spacing := math.Min(w/(PatternLines+1), patternMaxSpacing)
	dx := PatternLineLength * math.Cos(PatternTilt)

	segs := make([]Segment, 0, PatternLines)
	for i := 1; i <= PatternLines; i++ {
		startX := float64(i)*spacing - dx
		startY := h/2 - PatternLineLength/2 + (PatternLineLength/2)*math.Sin(PatternTilt)
		endX := startX + dx
		endY := h/2 + PatternLineLength/2

		if endX >= w/2 {
			continue
		}
		segs = append(segs, Segment{X0: startX, Y0: startY, X1: endX, Y1: endY})
	}
	return segs
}

// DrawPattern strokes the pattern segments in black, one unit wide.
func DrawPattern(s *Surface) error {
	segs := PatternSegments(s.Width(), s.Height())
	return s.Draw(func(dc *gg.Context) error {
		dc.SetColor(gg.Black)
		dc.SetLineWidth(1)
		for _, seg := range segs {
			dc.MoveTo(seg.X0, seg.Y0)
			dc.LineTo(seg.X1, seg.Y1)
			if err := dc.Stroke(); err != nil {
				return err
			}
		}
		return nil
	})
}
