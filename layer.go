package adcanvas

import "fmt"

// LayerKind identifies the variant held by a Layer.
type LayerKind uint8

// Layer kinds.
const (
	LayerBackground LayerKind = iota + 1
	LayerPattern
	LayerText
	LayerImageMask
)

// String returns the kind name.
func (k LayerKind) String() string {
	switch k {
	case LayerBackground:
		return "background"
	case LayerPattern:
		return "pattern"
	case LayerText:
		return "text"
	case LayerImageMask:
		return "image-mask"
	default:
		return fmt.Sprintf("LayerKind(%d)", uint8(k))
	}
}

// Layer describes one layer of a creative. Only the fields of its Kind are
// meaningful; build layers with Background, Pattern, Text and ImageMask.
type Layer struct {
	Kind LayerKind

	// Color is the Background fill.
	Color string

	// Text is the Text layer string.
	Text string

	// Source is the ImageMask image reference (URL, data URL or path).
	Source string

	// Mask is the ImageMask clip region.
	Mask Mask
}

// Background returns a layer filling the surface with color and reserving
// the white side strip.
func Background(color string) Layer {
	return Layer{Kind: LayerBackground, Color: color}
}

// Pattern returns the decorative tilted-line layer.
func Pattern() Layer {
	return Layer{Kind: LayerPattern}
}

// Text returns a single-line text layer.
func Text(s string) Layer {
	return Layer{Kind: LayerText, Text: s}
}

// ImageMask returns a layer drawing the image at source clipped to mask.
func ImageMask(source string, mask Mask) Layer {
	return Layer{Kind: LayerImageMask, Source: source, Mask: mask}
}

// Async reports whether the layer paints after an asynchronous load.
func (l Layer) Async() bool {
	return l.Kind == LayerImageMask
}

func (l Layer) String() string {
	switch l.Kind {
	case LayerBackground:
		return fmt.Sprintf("background(%s)", l.Color)
	case LayerText:
		return fmt.Sprintf("text(%q)", l.Text)
	case LayerImageMask:
		return fmt.Sprintf("image-mask(%s, %s)", shortSource(l.Source), l.Mask)
	default:
		return l.Kind.String()
	}
}
