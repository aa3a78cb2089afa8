package editor

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/gogpu/adcanvas"
	"github.com/gogpu/adcanvas/imageref"
)

// ErrClosed is returned by operations on a closed Shell.
var ErrClosed = errors.New("editor: shell is closed")

// Option configures a Shell.
type Option func(*options)

type options struct {
	state    State
	mask     adcanvas.Mask
	surface  *adcanvas.Surface
	renderer *adcanvas.Renderer
	loader   imageref.Loader
	logger   *slog.Logger
}

// WithState sets the initial state. The default is DefaultState().
func WithState(s State) Option {
	return func(o *options) {
		o.state = s.Clone()
	}
}

// WithMask sets the product image mask. The default is adcanvas.DefaultMask().
func WithMask(m adcanvas.Mask) Option {
	return func(o *options) {
		o.mask = m
	}
}

// WithSurface renders into s instead of a new 400x400 surface.
func WithSurface(s *adcanvas.Surface) Option {
	return func(o *options) {
		o.surface = s
	}
}

// WithRenderer sets the renderer. It takes precedence over WithLoader.
func WithRenderer(r *adcanvas.Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithLoader sets the image loader of the default renderer.
func WithLoader(l imageref.Loader) Option {
	return func(o *options) {
		o.loader = l
	}
}

// WithLogger sets the shell's logger. The default is adcanvas.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Shell owns an editor session: the current State, the surface it is drawn
// on and the renderer. Every state change redraws the full layer stack.
//
// Shell is safe for concurrent use.
type Shell struct {
	mu        sync.Mutex
	state     State
	mask      adcanvas.Mask
	surface   *adcanvas.Surface
	renderer  *adcanvas.Renderer
	logger    *slog.Logger
	observers []func(State)
	last      *adcanvas.Frame
	closed    bool

	// imageGen tags image replacement requests; only the newest may land.
	imageGen atomic.Uint64
}

// New creates a Shell. It does not render; call Render or Dispatch.
func New(opts ...Option) (*Shell, error) {
	o := options{
		state: DefaultState(),
		mask:  adcanvas.DefaultMask(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = adcanvas.Logger()
	}
	if o.surface == nil {
		s, err := adcanvas.NewSurface()
		if err != nil {
			return nil, err
		}
		o.surface = s
	}
	if o.renderer == nil {
		var ropts []adcanvas.RendererOption
		if o.loader != nil {
			ropts = append(ropts, adcanvas.WithLoader(o.loader))
		}
		ropts = append(ropts, adcanvas.WithLogger(o.logger))
		o.renderer = adcanvas.NewRenderer(ropts...)
	}

	return &Shell{
		state:    o.state,
		mask:     o.mask,
		surface:  o.surface,
		renderer: o.renderer,
		logger:   o.logger,
	}, nil
}

// State returns a copy of the current state.
func (sh *Shell) State() State {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.state.Clone()
}

// Surface returns the surface the shell draws on.
func (sh *Shell) Surface() *adcanvas.Surface {
	return sh.surface
}

// LastFrame returns the frame of the most recent render, or nil.
func (sh *Shell) LastFrame() *adcanvas.Frame {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.last
}

// OnChange registers fn to be called with the new state after every
// dispatched action. fn runs on the dispatching goroutine.
func (sh *Shell) OnChange(fn func(State)) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.observers = append(sh.observers, fn)
}

// Render redraws the current state. On a closed shell the frame is
// already settled with ErrClosed.
func (sh *Shell) Render(ctx context.Context) *adcanvas.Frame {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.closed {
		return adcanvas.FinishedFrame(ErrClosed)
	}
	return sh.renderLocked(ctx)
}

// Dispatch applies a with Reduce and redraws the whole layer stack.
// The returned frame settles when the masked image has been painted.
// A closed shell ignores a and returns a frame settled with ErrClosed.
func (sh *Shell) Dispatch(ctx context.Context, a Action) *adcanvas.Frame {
	if _, ok := a.(ReplaceImage); ok {
		sh.imageGen.Add(1)
	}
	return sh.apply(ctx, a, nil)
}

// apply reduces and renders under the lock. If accept is non-nil and
// returns false, the action is dropped and nil is returned.
func (sh *Shell) apply(ctx context.Context, a Action, accept func() bool) *adcanvas.Frame {
	sh.mu.Lock()
	if sh.closed {
		sh.mu.Unlock()
		return adcanvas.FinishedFrame(ErrClosed)
	}
	if accept != nil && !accept() {
		sh.mu.Unlock()
		return nil
	}
	sh.state = Reduce(sh.state, a)
	next := sh.state.Clone()
	observers := slices.Clone(sh.observers)
	frame := sh.renderLocked(ctx)
	sh.mu.Unlock()

	sh.logger.Debug("editor: action applied", "action", a, "generation", frame.Generation())
	for _, fn := range observers {
		fn(next.Clone())
	}
	return frame
}

// renderLocked redraws the layer stack on a cleared surface.
// sh.mu must be held, which keeps concurrent renders from interleaving.
func (sh *Shell) renderLocked(ctx context.Context) *adcanvas.Frame {
	sh.last = sh.renderer.Repaint(ctx, sh.surface, Layers(sh.state, sh.mask))
	return sh.last
}

// ReplaceResult is the outcome of ReplaceImageFile.
type ReplaceResult struct {
	// Frame is the render triggered by the replacement, nil on error.
	Frame *adcanvas.Frame

	// Err is a read or conversion error, adcanvas.ErrSuperseded when a
	// newer image request won, or the context error.
	Err error
}

// ReplaceImageFile reads the image file at path in the background,
// converts it to an inline data reference and dispatches ReplaceImage.
// If another image request is made before the read finishes, the result
// is discarded. The channel receives exactly one value.
func (sh *Shell) ReplaceImageFile(ctx context.Context, path string) <-chan ReplaceResult {
	gen := sh.imageGen.Add(1)
	out := make(chan ReplaceResult, 1)

	go func() {
		defer close(out)

		ref, err := imageref.FromFile(path)
		if err != nil {
			sh.logger.Warn("editor: read image file", "path", path, "err", err)
			out <- ReplaceResult{Err: err}
			return
		}
		if err := ctx.Err(); err != nil {
			out <- ReplaceResult{Err: err}
			return
		}

		frame := sh.apply(ctx, ReplaceImage{Source: ref}, func() bool {
			return sh.imageGen.Load() == gen
		})
		if frame != nil && errors.Is(frame.Err(), ErrClosed) {
			out <- ReplaceResult{Err: ErrClosed}
			return
		}
		if frame == nil {
			sh.logger.Debug("editor: stale image file discarded", "path", path)
			out <- ReplaceResult{Err: adcanvas.ErrSuperseded}
			return
		}
		sh.logger.Info("editor: image replaced", "path", path)
		out <- ReplaceResult{Frame: frame}
	}()
	return out
}

// Close cancels the pending render and closes the surface.
func (sh *Shell) Close() error {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.closed {
		return nil
	}
	sh.closed = true
	if sh.last != nil {
		sh.last.Cancel()
	}
	return sh.surface.Close()
}
