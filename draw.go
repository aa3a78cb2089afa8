package adcanvas

import "fmt"

// DrawLayer paints a synchronous layer. ImageMask layers need a loaded
// image and must go through a Renderer or DrawMasked.
func DrawLayer(s *Surface, l Layer) error {
	switch l.Kind {
	case LayerBackground:
		return DrawBackground(s, l.Color)
	case LayerPattern:
		return DrawPattern(s)
	case LayerText:
		return DrawText(s, l.Text)
	case LayerImageMask:
		return fmt.Errorf("adcanvas: %s layer needs a loaded image", l.Kind)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownLayer, l.Kind)
	}
}
