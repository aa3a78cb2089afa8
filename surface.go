package adcanvas

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// defaultFont parses the embedded Go Regular face once per process.
var defaultFont = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// Surface is the shared raster every layer paints on.
// It wraps a gg.Context drawing into a Pixmap the surface owns, so masked
// images can be composited into the same pixels.
//
// Surface is safe for concurrent use: every drawing call holds its lock,
// which serializes the synchronous layers with asynchronous image paints.
type Surface struct {
	mu     sync.Mutex
	pm     *gg.Pixmap
	dc     *gg.Context
	width  int
	height int
	closed bool
}

// NewSurface creates a transparent surface, 400x400 by default.
func NewSurface(opts ...SurfaceOption) (*Surface, error) {
	o := defaultSurfaceOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.width <= 0 || o.height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, o.width, o.height)
	}

	var (
		src *text.FontSource
		err error
	)
	if o.fontData != nil {
		src, err = text.NewFontSource(o.fontData)
	} else {
		src, err = defaultFont()
	}
	if err != nil {
		return nil, fmt.Errorf("adcanvas: load font: %w", err)
	}

	pm := gg.NewPixmap(o.width, o.height)
	dc := gg.NewContext(o.width, o.height, gg.WithPixmap(pm))
	dc.SetFont(src.Face(o.fontSize))

	return &Surface{
		pm:     pm,
		dc:     dc,
		width:  o.width,
		height: o.height,
	}, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.height
}

// Draw calls fn with the gg context while holding the surface lock.
func (s *Surface) Draw(fn func(dc *gg.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSurfaceClosed
	}
	return fn(s.dc)
}

// drawRaw calls fn with an *image.RGBA sharing the pixmap's pixels.
func (s *Surface) drawRaw(fn func(dst *image.RGBA) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSurfaceClosed
	}
	dst := &image.RGBA{
		Pix:    s.pm.Data(),
		Stride: s.width * 4,
		Rect:   image.Rect(0, 0, s.width, s.height),
	}
	return fn(dst)
}

// Clear resets every pixel to transparent.
func (s *Surface) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSurfaceClosed
	}
	s.pm.Clear(gg.Transparent)
	return nil
}

// Image returns a snapshot copy of the current pixels.
func (s *Surface) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pm.ToImage()
}

// EncodePNG writes a snapshot of the surface to w as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.Image())
}

// SavePNG writes a snapshot of the surface to a PNG file.
func (s *Surface) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := s.EncodePNG(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("adcanvas: encode %s: %w", path, err)
	}
	return f.Close()
}

// Close releases the drawing context. Further drawing returns
// ErrSurfaceClosed; Image still returns the last pixels.
func (s *Surface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.dc.Close()
}
