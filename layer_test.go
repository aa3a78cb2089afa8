package adcanvas

import (
	"image"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestLayerKindString(t *testing.T) {
	tests := []struct {
		kind LayerKind
		want string
	}{
		{LayerBackground, "background"},
		{LayerPattern, "pattern"},
		{LayerText, "text"},
		{LayerImageMask, "image-mask"},
		{LayerKind(0), "LayerKind(0)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("LayerKind(%d).String() = %q, want %q", uint8(tt.kind), got, tt.want)
		}
	}
}

func TestLayerConstructors(t *testing.T) {
	m := Mask{Shape: Circle(0.5), Box: image.Rect(0, 0, 10, 10)}

	if l := Background("red"); l.Kind != LayerBackground || l.Color != "red" || l.Async() {
		t.Errorf("Background() = %+v", l)
	}
	if l := Pattern(); l.Kind != LayerPattern || l.Async() {
		t.Errorf("Pattern() = %+v", l)
	}
	if l := Text("hi"); l.Kind != LayerText || l.Text != "hi" || l.Async() {
		t.Errorf("Text() = %+v", l)
	}
	l := ImageMask("cake.png", m)
	if l.Kind != LayerImageMask || l.Source != "cake.png" || l.Mask != m || !l.Async() {
		t.Errorf("ImageMask() = %+v", l)
	}
}

func TestLayerStringShortensDataURLs(t *testing.T) {
	src := "data:image/png;base64," + strings.Repeat("A", 500)
	got := ImageMask(src, DefaultMask()).String()
	if len(got) > 200 {
		t.Errorf("String() length = %d, want data URL shortened", len(got))
	}
	if !strings.HasPrefix(got, "image-mask(data:image/png") {
		t.Errorf("String() = %q", got)
	}
}

func TestShortSourceKeepsRunes(t *testing.T) {
	// 63 ASCII bytes then a two-byte rune straddling the cut.
	src := strings.Repeat("a", 63) + "é" + strings.Repeat("b", 10)
	got := shortSource(src)
	if !utf8.ValidString(got) {
		t.Fatalf("shortSource() = %q, not valid UTF-8", got)
	}
	if want := strings.Repeat("a", 63) + "..."; got != want {
		t.Errorf("shortSource() = %q, want %q", got, want)
	}
	if got := shortSource("short"); got != "short" {
		t.Errorf("shortSource(short) = %q", got)
	}
}
