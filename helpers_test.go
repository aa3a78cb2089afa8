package adcanvas

import (
	"image"
	"image/color"
	"testing"
)

var (
	testRed   = color.RGBA{R: 255, A: 255}
	testGreen = color.RGBA{G: 255, A: 255}
	testWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func newTestSurface(t *testing.T, opts ...SurfaceOption) *Surface {
	t.Helper()
	s, err := NewSurface(opts...)
	if err != nil {
		t.Fatalf("NewSurface() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// pixelNear reports whether got is within tol of want on every channel.
func pixelNear(got, want color.RGBA, tol int) bool {
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	return d(got.R, want.R) <= tol && d(got.G, want.G) <= tol &&
		d(got.B, want.B) <= tol && d(got.A, want.A) <= tol
}

func checkPixel(t *testing.T, img *image.RGBA, x, y int, want color.RGBA) {
	t.Helper()
	if got := img.RGBAAt(x, y); !pixelNear(got, want, 3) {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
	}
}

var (
	black    = color.RGBA{A: 255}
	blueRGBA = color.RGBA{B: 255, A: 255}
)

func rgbaOf(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}
