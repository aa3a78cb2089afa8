package adcanvas

import "github.com/gogpu/gg"

// Text layer baseline anchor.
const (
	TextX = 20.0
	TextY = 350.0
)

// DrawText draws s in black with its baseline at (TextX, TextY).
// There is no wrapping; text past the right edge is cut off.
func DrawText(s *Surface, str string) error {
	if str == "" {
		return nil
	}
	return s.Draw(func(dc *gg.Context) error {
		dc.SetColor(gg.Black)
		dc.DrawString(str, TextX, TextY)
		return nil
	})
}
