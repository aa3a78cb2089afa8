package imageref

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Loader resolves a reference string into a decoded image.
// Implementations must honor ctx cancellation.
type Loader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// Default limits of NewLoader.
const (
	DefaultTimeout  = 30 * time.Second
	DefaultMaxBytes = 32 << 20
)

// decodable lists the media types of the decoders registered above.
var decodable = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
	"image/webp": true,
}

// ErrHTTPStatus is wrapped by errors for non-2xx responses.
var ErrHTTPStatus = errors.New("imageref: unexpected HTTP status")

// Option configures a DefaultLoader.
type Option func(*DefaultLoader)

// WithHTTPClient sets the client used for http(s) references.
func WithHTTPClient(c *http.Client) Option {
	return func(l *DefaultLoader) {
		l.client = c
	}
}

// WithMaxBytes bounds how much of a remote or local image is read.
func WithMaxBytes(n int64) Option {
	return func(l *DefaultLoader) {
		if n > 0 {
			l.maxBytes = n
		}
	}
}

// DefaultLoader loads data URLs, http(s) URLs and local files.
type DefaultLoader struct {
	client   *http.Client
	maxBytes int64
}

// NewLoader creates a DefaultLoader with a 30s HTTP timeout.
func NewLoader(opts ...Option) *DefaultLoader {
	l := &DefaultLoader{
		client:   &http.Client{Timeout: DefaultTimeout},
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load implements Loader.
func (l *DefaultLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	r, err := Parse(ref)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch r.Kind {
	case KindData:
		return Decode(bytes.NewReader(r.Data))
	case KindURL:
		return l.fetch(ctx, r.URL)
	default:
		return l.open(ctx, r.Path)
	}
}

func (l *DefaultLoader) fetch(ctx context.Context, u string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("imageref: request %s: %w", u, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imageref: get %s: %w", u, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: %s", ErrHTTPStatus, u, resp.Status)
	}
	img, err := Decode(io.LimitReader(resp.Body, l.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("imageref: %s: %w", u, err)
	}
	return img, nil
}

func (l *DefaultLoader) open(ctx context.Context, path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("imageref: open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	img, err := Decode(io.LimitReader(f, l.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("imageref: %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return img, nil
}

// Decode decodes any registered image format.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrNotImage
		}
		return nil, fmt.Errorf("imageref: decode: %w", err)
	}
	return img, nil
}

// MapLoader serves images from memory, keyed by the exact reference string.
// It is safe for concurrent use.
type MapLoader struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewMapLoader creates a MapLoader holding images.
func NewMapLoader(images map[string]image.Image) *MapLoader {
	m := &MapLoader{images: make(map[string]image.Image, len(images))}
	for k, v := range images {
		m.images[k] = v
	}
	return m
}

// Set stores img under ref.
func (m *MapLoader) Set(ref string, img image.Image) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images[ref] = img
}

// Load implements Loader.
func (m *MapLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	img, ok := m.images[ref]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return img, nil
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, ref string) (image.Image, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, ref string) (image.Image, error) {
	return f(ctx, ref)
}
