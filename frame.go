package adcanvas

import (
	"context"
	"sync"
)

// Frame tracks one Render call. Synchronous layers are already painted when
// Render returns; Done is closed once every ImageMask layer of the frame has
// been painted, failed, or been discarded.
type Frame struct {
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	err    error
}

func newFrame(gen uint64, cancel context.CancelFunc) *Frame {
	return &Frame{
		gen:    gen,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// FinishedFrame returns a frame that has already settled with err.
// It belongs to no renderer generation.
func FinishedFrame(err error) *Frame {
	f := newFrame(0, func() {})
	f.finish(err)
	return f
}

// Generation returns the renderer generation this frame belongs to.
func (f *Frame) Generation() uint64 {
	return f.gen
}

// Done returns a channel closed when the frame has settled.
func (f *Frame) Done() <-chan struct{} {
	return f.done
}

// Err returns the frame's outcome, or nil while it is still pending.
// Load failures are *LoadError values joined with errors.Join; a frame
// replaced by a newer Render reports ErrSuperseded.
func (f *Frame) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}

// Wait blocks until the frame settles or ctx is done.
func (f *Frame) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cancel aborts pending image loads. The frame settles with
// context.Canceled unless it already finished.
func (f *Frame) Cancel() {
	f.cancel()
}

func (f *Frame) finish(err error) {
	f.once.Do(func() {
		f.err = err
		f.cancel()
		close(f.done)
	})
}
