package adcanvas

import "github.com/gogpu/gg"

// SideStripWidth is the width of the opaque white strip the background
// layer reserves on the left edge.
const SideStripWidth = 240

// DrawBackground fills the surface with color, then paints the white side
// strip over the full height. Unparseable colors fall back to black.
func DrawBackground(s *Surface, color string) error {
	fill := resolveColor(color)
	return s.Draw(func(dc *gg.Context) error {
		w, h := float64(dc.Width()), float64(dc.Height())

		dc.SetColor(fill)
		dc.DrawRectangle(0, 0, w, h)
		if err := dc.Fill(); err != nil {
			return err
		}

		dc.SetColor(gg.White)
		dc.DrawRectangle(0, 0, SideStripWidth, h)
		return dc.Fill()
	})
}
