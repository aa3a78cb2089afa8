package adcanvas

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// ShapeKind selects the clip outline of a Mask.
type ShapeKind uint8

// Mask shapes.
const (
	ShapeRoundedRect ShapeKind = iota
	ShapeCircle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRoundedRect:
		return "rounded-rect"
	case ShapeCircle:
		return "circle"
	default:
		return fmt.Sprintf("ShapeKind(%d)", uint8(k))
	}
}

// Shape is the outline an image is clipped to.
type Shape struct {
	Kind ShapeKind

	// Radius is the corner radius of a rounded rectangle.
	Radius float64

	// Ratio is the circle radius as a fraction of the box width.
	Ratio float64
}

// RoundedRect returns a rounded-rectangle shape with corner radius r.
func RoundedRect(r float64) Shape {
	return Shape{Kind: ShapeRoundedRect, Radius: r}
}

// Circle returns a circle centered in the box with radius ratio*box width.
func Circle(ratio float64) Shape {
	return Shape{Kind: ShapeCircle, Ratio: ratio}
}

// Default image mask geometry: a 300x250 box at (50,50), radius 20.
const DefaultMaskRadius = 20

// DefaultCircleRatio is the radius ratio of the alternative circle mask.
const DefaultCircleRatio = 1.0 / 3

// DefaultMaskBox is the box of DefaultMask.
var DefaultMaskBox = image.Rect(50, 50, 350, 300)

// Mask is a clip region: an image is stretched to fill Box and only the
// part inside Shape is painted.
type Mask struct {
	Shape Shape
	Box   image.Rectangle
}

// DefaultMask returns the rounded-rectangle mask of the product image.
func DefaultMask() Mask {
	return Mask{Shape: RoundedRect(DefaultMaskRadius), Box: DefaultMaskBox}
}

// CircleMask returns a circular mask centered in box.
func CircleMask(box image.Rectangle, ratio float64) Mask {
	return Mask{Shape: Circle(ratio), Box: box}
}

func (m Mask) String() string {
	switch m.Shape.Kind {
	case ShapeCircle:
		return fmt.Sprintf("circle(%g) %v", m.Shape.Ratio, m.Box)
	default:
		return fmt.Sprintf("rounded-rect(%g) %v", m.Shape.Radius, m.Box)
	}
}

// Contains reports whether the pixel center of (x, y) lies inside the mask
// outline. Rounded corners are treated as circular arcs, so pixels on the
// corner curve itself may disagree with the rasterized coverage.
func (m Mask) Contains(x, y int) bool {
	if !image.Pt(x, y).In(m.Box) {
		return false
	}
	px := float64(x-m.Box.Min.X) + 0.5
	py := float64(y-m.Box.Min.Y) + 0.5
	w, h := float64(m.Box.Dx()), float64(m.Box.Dy())

	switch m.Shape.Kind {
	case ShapeCircle:
		r := m.Shape.Ratio * w
		return math.Hypot(px-w/2, py-h/2) <= r
	default:
		r := clampRadius(m.Shape.Radius, w, h)
		cx := math.Min(math.Max(px, r), w-r)
		cy := math.Min(math.Max(py, r), h-r)
		return math.Hypot(px-cx, py-cy) <= r
	}
}

func clampRadius(r, w, h float64) float64 {
	return math.Max(0, math.Min(r, math.Min(w, h)/2))
}

// rasterizer builds the mask coverage in box-local coordinates.
func (m Mask) rasterizer() *vector.Rasterizer {
	w, h := m.Box.Dx(), m.Box.Dy()
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Over

	switch m.Shape.Kind {
	case ShapeCircle:
		circlePath(z, float32(w)/2, float32(h)/2, float32(m.Shape.Ratio*float64(w)))
	default:
		r := float32(clampRadius(m.Shape.Radius, float64(w), float64(h)))
		roundedRectPath(z, float32(w), float32(h), r)
	}
	return z
}

// roundedRectPath traces a w x h rectangle whose corners are quadratic
// curves controlled by the rectangle's own corner points.
func roundedRectPath(z *vector.Rasterizer, w, h, r float32) {
	z.MoveTo(r, 0)
	z.LineTo(w-r, 0)
	z.QuadTo(w, 0, w, r)
	z.LineTo(w, h-r)
	z.QuadTo(w, h, w-r, h)
	z.LineTo(r, h)
	z.QuadTo(0, h, 0, h-r)
	z.LineTo(0, r)
	z.QuadTo(0, 0, r, 0)
	z.ClosePath()
}

// circlePath approximates a circle with four cubic curves.
func circlePath(z *vector.Rasterizer, cx, cy, r float32) {
	const k = 0.5522847498307936
	o := r * k
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+o, cx+o, cy+r, cx, cy+r)
	z.CubeTo(cx-o, cy+r, cx-r, cy+o, cx-r, cy)
	z.CubeTo(cx-r, cy-o, cx-o, cy-r, cx, cy-r)
	z.CubeTo(cx+o, cy-r, cx+r, cy-o, cx+r, cy)
	z.ClosePath()
}

// maskedImage is an image already stretched to its mask box together with
// the box coverage, ready to be composited.
type maskedImage struct {
	mask   Mask
	scaled *image.RGBA
	cover  *vector.Rasterizer
}

func prepareMasked(img image.Image, m Mask) (*maskedImage, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if m.Box.Empty() {
		return nil, nil
	}
	scaled := image.NewRGBA(image.Rect(0, 0, m.Box.Dx(), m.Box.Dy()))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return &maskedImage{mask: m, scaled: scaled, cover: m.rasterizer()}, nil
}

func (mi *maskedImage) paint(dst *image.RGBA) {
	mi.cover.Draw(dst, mi.mask.Box, mi.scaled, image.Point{})
}

// DrawMasked stretches img over m.Box and paints the part inside m's shape.
// Pixels outside the shape are left untouched.
func DrawMasked(s *Surface, img image.Image, m Mask) error {
	mi, err := prepareMasked(img, m)
	if err != nil || mi == nil {
		return err
	}
	return s.drawRaw(func(dst *image.RGBA) error {
		mi.paint(dst)
		return nil
	})
}
