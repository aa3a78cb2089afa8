package editor

import "github.com/gogpu/adcanvas"

// Layers returns the fixed layer stack for s: background, pattern, text,
// then the masked product image.
func Layers(s State, mask adcanvas.Mask) []adcanvas.Layer {
	return []adcanvas.Layer{
		adcanvas.Background(s.Background),
		adcanvas.Pattern(),
		adcanvas.Text(s.Text),
		adcanvas.ImageMask(s.Image, mask),
	}
}
