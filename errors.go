package adcanvas

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Common errors returned by Surface and Renderer operations.
var (
	// ErrSurfaceClosed is returned when drawing on a closed surface.
	ErrSurfaceClosed = errors.New("adcanvas: surface is closed")

	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("adcanvas: invalid dimensions")

	// ErrSuperseded is reported by a frame, or an image request, that was
	// replaced by a newer one before it could paint.
	ErrSuperseded = errors.New("adcanvas: superseded by a newer request")

	// ErrUnknownLayer is returned for a layer with an unrecognized kind.
	ErrUnknownLayer = errors.New("adcanvas: unknown layer kind")

	// ErrInvalidColor is returned by ParseColor for unparseable input.
	ErrInvalidColor = errors.New("adcanvas: invalid color")

	// ErrNilImage is returned by DrawMasked when no image is given.
	ErrNilImage = errors.New("adcanvas: nil image")
)

// LoadError reports an ImageMask layer whose image could not be loaded.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("adcanvas: load image %q: %v", shortSource(e.Source), e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// shortSource keeps data references readable in error messages.
func shortSource(s string) string {
	const limit = 64
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
