package editor

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/adcanvas"
	"github.com/gogpu/adcanvas/imageref"
)

var (
	yellow = color.RGBA{R: 0xf7, G: 0xdf, B: 0x1e, A: 0xff}
	white  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	red    = color.RGBA{R: 0xff, A: 0xff}
	green  = color.RGBA{G: 0xff, A: 0xff}
	blue   = color.RGBA{B: 0xff, A: 0xff}
)

func solid(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// testLoader serves in-memory images and falls back to the default loader
// for data URLs.
func testLoader(images map[string]image.Image) imageref.Loader {
	m := imageref.NewMapLoader(images)
	def := imageref.NewLoader()
	return imageref.LoaderFunc(func(ctx context.Context, ref string) (image.Image, error) {
		if strings.HasPrefix(ref, "data:") {
			return def.Load(ctx, ref)
		}
		return m.Load(ctx, ref)
	})
}

func newShell(t *testing.T, loader imageref.Loader, opts ...Option) *Shell {
	t.Helper()
	sh, err := New(append([]Option{WithLoader(loader)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sh.Close() })
	return sh
}

func wait(t *testing.T, f *adcanvas.Frame) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return f.Wait(ctx)
}

func assertPixel(t *testing.T, img *image.RGBA, x, y int, want color.RGBA) {
	t.Helper()
	got := img.RGBAAt(x, y)
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	if d(got.R, want.R) > 3 || d(got.G, want.G) > 3 || d(got.B, want.B) > 3 || d(got.A, want.A) > 3 {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
	}
}

func TestShellInitialRender(t *testing.T) {
	sh := newShell(t, testLoader(map[string]image.Image{DefaultImage: solid(red)}))

	require.NoError(t, wait(t, sh.Render(context.Background())))
	img := sh.Surface().Image()

	assertPixel(t, img, 320, 20, yellow)  // background
	assertPixel(t, img, 120, 20, white)   // side strip
	assertPixel(t, img, 200, 175, red)    // masked image
	assertPixel(t, img, 51, 51, white)    // rounded corner, over the strip
	assertPixel(t, img, 348, 298, yellow) // rounded corner, over the fill
	assertPixel(t, img, 360, 175, yellow) // right of the mask box

	dark := 0
	for y := 336; y < 354; y++ {
		for x := 20; x < 240; x++ {
			if c := img.RGBAAt(x, y); c.R < 128 && c.G < 128 && c.B < 128 {
				dark++
			}
		}
	}
	assert.Positive(t, dark, "text layer should paint near its anchor")
}

func TestShellColorChanges(t *testing.T) {
	sh := newShell(t, testLoader(map[string]image.Image{DefaultImage: solid(red)}))

	var (
		mu      sync.Mutex
		changes []State
	)
	sh.OnChange(func(s State) {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, s)
	})

	ctx := context.Background()
	var last *adcanvas.Frame
	for _, c := range []string{"#ff0000", "#00ff00", "#0000ff"} {
		last = sh.Dispatch(ctx, SetBackground{Color: c})
	}
	require.NoError(t, wait(t, last))

	assert.Equal(t, []string{"#ff0000", "#00ff00", "#0000ff"}, sh.State().History)
	assert.Len(t, changes, 3)
	assert.Equal(t, "#00ff00", changes[1].Background)
	assertPixel(t, sh.Surface().Image(), 320, 20, blue)
	assertPixel(t, sh.Surface().Image(), 120, 20, white)
}

func TestShellStateIsCopy(t *testing.T) {
	sh := newShell(t, testLoader(nil), WithState(State{Background: "#fff", History: []string{"#000"}}))
	s := sh.State()
	s.History[0] = "mutated"
	assert.Equal(t, "#000", sh.State().History[0])
}

func TestShellImageLoadFailure(t *testing.T) {
	sh := newShell(t, testLoader(nil))

	err := wait(t, sh.Render(context.Background()))
	require.Error(t, err)

	var le *adcanvas.LoadError
	require.True(t, errors.As(err, &le), "got %v", err)
	assert.Equal(t, DefaultImage, le.Source)
	assert.ErrorIs(t, err, imageref.ErrNotFound)

	img := sh.Surface().Image()
	assertPixel(t, img, 200, 175, white)
	assertPixel(t, img, 320, 175, yellow)
}

func TestShellStaleImageDiscarded(t *testing.T) {
	loader := imageref.LoaderFunc(func(ctx context.Context, ref string) (image.Image, error) {
		switch ref {
		case "slow":
			<-ctx.Done()
			return nil, ctx.Err()
		case "fast":
			return solid(green), nil
		}
		return nil, imageref.ErrNotFound
	})
	sh := newShell(t, loader, WithState(State{Background: "#f7df1e", Image: "slow"}))

	ctx := context.Background()
	first := sh.Render(ctx)
	second := sh.Dispatch(ctx, ReplaceImage{Source: "fast"})

	assert.ErrorIs(t, wait(t, first), adcanvas.ErrSuperseded)
	require.NoError(t, wait(t, second))
	assert.Greater(t, second.Generation(), first.Generation())
	assertPixel(t, sh.Surface().Image(), 200, 175, green)
}

func writePNG(t *testing.T, c color.Color) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(c)))
	path := filepath.Join(t.TempDir(), "upload.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestShellReplaceImageFile(t *testing.T) {
	sh := newShell(t, testLoader(map[string]image.Image{DefaultImage: solid(red)}))
	require.NoError(t, wait(t, sh.Render(context.Background())))

	res := <-sh.ReplaceImageFile(context.Background(), writePNG(t, blue))
	require.NoError(t, res.Err)
	require.NotNil(t, res.Frame)
	require.NoError(t, wait(t, res.Frame))

	assert.True(t, strings.HasPrefix(sh.State().Image, "data:image/png;base64,"))
	assertPixel(t, sh.Surface().Image(), 200, 175, blue)
}

func TestShellReplaceImageFileErrors(t *testing.T) {
	sh := newShell(t, testLoader(nil))

	res := <-sh.ReplaceImageFile(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, res.Err, os.ErrNotExist)
	assert.Nil(t, res.Frame)

	txt := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0o600))
	res = <-sh.ReplaceImageFile(context.Background(), txt)
	assert.ErrorIs(t, res.Err, imageref.ErrNotImage)
	assert.Equal(t, DefaultImage, sh.State().Image)
}

func TestShellReplaceImageFileSuperseded(t *testing.T) {
	sh := newShell(t, testLoader(map[string]image.Image{"newer": solid(green)}))
	path := writePNG(t, blue)

	// Hold the shell while a newer image request is registered, so the file
	// read can only land after it.
	sh.mu.Lock()
	results := sh.ReplaceImageFile(context.Background(), path)
	sh.imageGen.Add(1)
	sh.mu.Unlock()

	res := <-results
	assert.ErrorIs(t, res.Err, adcanvas.ErrSuperseded)
	assert.Equal(t, DefaultImage, sh.State().Image)
}

func TestShellClose(t *testing.T) {
	sh := newShell(t, testLoader(nil))
	require.NoError(t, sh.Close())
	require.NoError(t, sh.Close())

	calls := 0
	sh.OnChange(func(State) { calls++ })

	err := wait(t, sh.Dispatch(context.Background(), SetBackground{Color: "#ff0000"}))
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, DefaultState(), sh.State())
	assert.Zero(t, calls)

	assert.ErrorIs(t, wait(t, sh.Render(context.Background())), ErrClosed)

	res := <-sh.ReplaceImageFile(context.Background(), writePNG(t, blue))
	assert.ErrorIs(t, res.Err, ErrClosed)
}
