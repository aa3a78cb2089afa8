package adcanvas

import (
	"log/slog"

	"github.com/gogpu/adcanvas/imageref"
)

// Default surface geometry and text settings.
const (
	DefaultWidth    = 400
	DefaultHeight   = 400
	DefaultFontSize = 12.0
)

// SurfaceOption configures a Surface during creation.
//
// Example:
//
//	s, err := adcanvas.NewSurface(adcanvas.WithSize(800, 800))
type SurfaceOption func(*surfaceOptions)

type surfaceOptions struct {
	width, height int
	fontSize      float64
	fontData      []byte
}

func defaultSurfaceOptions() surfaceOptions {
	return surfaceOptions{
		width:    DefaultWidth,
		height:   DefaultHeight,
		fontSize: DefaultFontSize,
	}
}

// WithSize sets the surface dimensions in pixels.
func WithSize(width, height int) SurfaceOption {
	return func(o *surfaceOptions) {
		o.width = width
		o.height = height
	}
}

// WithFontSize sets the size of the text layer face.
func WithFontSize(size float64) SurfaceOption {
	return func(o *surfaceOptions) {
		if size > 0 {
			o.fontSize = size
		}
	}
}

// WithFont replaces the built-in Go Regular face with TTF/OTF font data.
func WithFont(data []byte) SurfaceOption {
	return func(o *surfaceOptions) {
		o.fontData = data
	}
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererOptions)

type rendererOptions struct {
	loader imageref.Loader
	logger *slog.Logger
}

// WithLoader sets the loader used to resolve ImageMask sources.
// The default is imageref.NewLoader().
func WithLoader(l imageref.Loader) RendererOption {
	return func(o *rendererOptions) {
		o.loader = l
	}
}

// WithLogger sets the renderer's logger. The default is Logger().
func WithLogger(l *slog.Logger) RendererOption {
	return func(o *rendererOptions) {
		o.logger = l
	}
}
