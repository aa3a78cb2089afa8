// Package adcanvas renders layered advertisement creatives.
//
// # Overview
//
// A creative is a fixed-size raster [Surface] painted by an ordered list of
// [Layer] descriptors. Four kinds exist:
//
//   - Background: a solid fill plus an opaque white strip on the left edge
//   - Pattern: a set of tilted decorative line segments
//   - Text: one line of text at a fixed baseline anchor
//   - ImageMask: an image stretched into a box and clipped to a [Mask]
//
// Drawing is delegated to github.com/gogpu/gg. Masked images are composited
// with golang.org/x/image/vector coverage so the clip is exact.
//
// # Quick Start
//
//	s, _ := adcanvas.NewSurface()
//	r := adcanvas.NewRenderer()
//
//	frame := r.Render(ctx, s, []adcanvas.Layer{
//	    adcanvas.Background("#f7df1e"),
//	    adcanvas.Pattern(),
//	    adcanvas.Text("Blueberry Cake - INR 900.00"),
//	    adcanvas.ImageMask("cake.webp", adcanvas.DefaultMask()),
//	})
//	if err := frame.Wait(ctx); err != nil {
//	    log.Print(err)
//	}
//	_ = s.SavePNG("creative.png")
//
// # Ordering
//
// Background, Pattern and Text layers are painted before Render returns.
// ImageMask layers load asynchronously and are painted after every
// synchronous layer, in list order, when the returned [Frame] completes.
// A newer Render supersedes the previous frame: its pending loads are
// canceled and it paints nothing.
//
// # Coordinate System
//
// Origin (0,0) at top-left, X grows right, Y grows down, one unit per pixel.
package adcanvas
