package adcanvas

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/adcanvas/imageref"
)

// maxConcurrentLoads bounds the image loads of a single frame.
const maxConcurrentLoads = 4

// Renderer paints ordered layer lists onto surfaces.
//
// Each Render starts a new generation. Starting one cancels the image
// loads of the previous frame, and a frame whose generation is no longer
// current never paints, so a slow image can't overwrite a newer render.
type Renderer struct {
	loader imageref.Loader
	logger *slog.Logger

	gen    atomic.Uint64
	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewRenderer creates a renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	var o rendererOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.loader == nil {
		o.loader = imageref.NewLoader()
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	return &Renderer{loader: o.loader, logger: o.logger}
}

// Generation returns the generation of the most recent Render.
func (r *Renderer) Generation() uint64 {
	return r.gen.Load()
}

// Render draws layers onto s in list order. It does not clear s.
//
// Background, Pattern and Text layers are painted before Render returns.
// ImageMask layers are loaded concurrently and painted, in list order,
// after all of them settle. A failed load skips that layer only.
// An empty list is a no-op and returns a finished frame.
func (r *Renderer) Render(ctx context.Context, s *Surface, layers []Layer) *Frame {
	return r.render(ctx, s, layers, false)
}

// Repaint is Render on a cleared surface. The clear happens after the new
// generation starts, so a paint of an older frame waiting on the surface
// can't land on the cleared pixels.
func (r *Renderer) Repaint(ctx context.Context, s *Surface, layers []Layer) *Frame {
	return r.render(ctx, s, layers, true)
}

func (r *Renderer) render(ctx context.Context, s *Surface, layers []Layer, fresh bool) *Frame {
	gen := r.gen.Add(1)
	fctx, cancel := context.WithCancel(ctx)

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.cancel = cancel
	r.mu.Unlock()

	f := newFrame(gen, cancel)
	if fresh {
		if err := s.Clear(); err != nil {
			f.finish(err)
			return f
		}
	}

	var (
		masks   []Layer
		drawErr error
	)
	for _, l := range layers {
		if l.Async() {
			masks = append(masks, l)
			continue
		}
		if err := DrawLayer(s, l); err != nil {
			r.logger.Warn("adcanvas: draw layer", "layer", l.Kind, "err", err)
			drawErr = errors.Join(drawErr, err)
			continue
		}
		r.logger.Debug("adcanvas: layer drawn", "layer", l, "generation", gen)
	}

	if len(masks) == 0 || errors.Is(drawErr, ErrSurfaceClosed) {
		f.finish(drawErr)
		return f
	}
	go r.paintMasks(fctx, f, s, masks, drawErr)
	return f
}

func (r *Renderer) paintMasks(ctx context.Context, f *Frame, s *Surface, masks []Layer, drawErr error) {
	imgs := make([]image.Image, len(masks))
	loadErrs := make([]error, len(masks))

	var g errgroup.Group
	g.SetLimit(maxConcurrentLoads)
	for i, l := range masks {
		g.Go(func() error {
			img, err := r.loader.Load(ctx, l.Source)
			if err != nil {
				loadErrs[i] = &LoadError{Source: l.Source, Err: err}
				return nil
			}
			imgs[i] = img
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		f.finish(r.abandoned(f, err))
		return
	}

	for i, l := range masks {
		if loadErrs[i] != nil {
			r.logger.Warn("adcanvas: image load failed", "source", shortSource(l.Source), "err", loadErrs[i])
			continue
		}
		mi, err := prepareMasked(imgs[i], l.Mask)
		if err != nil {
			loadErrs[i] = &LoadError{Source: l.Source, Err: err}
			continue
		}
		if mi == nil {
			continue
		}
		err = s.drawRaw(func(dst *image.RGBA) error {
			if r.gen.Load() != f.gen {
				return ErrSuperseded
			}
			mi.paint(dst)
			return nil
		})
		if err != nil {
			f.finish(err)
			return
		}
	}

	err := errors.Join(append([]error{drawErr}, loadErrs...)...)
	r.logger.Info("adcanvas: frame done", "generation", f.gen, "masks", len(masks), "err", err)
	f.finish(err)
}

// abandoned reports why a frame stopped before painting.
func (r *Renderer) abandoned(f *Frame, err error) error {
	if r.gen.Load() != f.gen {
		return ErrSuperseded
	}
	return err
}
