/*
Package render drives a node tree offline: it pulls the root once per cycle
and writes every buffer into a sink.

    err := render.Run(ctx, root, settings, cycles, sink)

Run is synchronous. Async starts the same loop in its own goroutine and
returns a handle to wait for it or stop it. In both cases the sink is
flushed when the loop ends, regardless of the reason.
*/
package render

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/pipelined/dsp"
	"github.com/pipelined/dsp/log"
	"github.com/pipelined/dsp/pool"
	"github.com/pipelined/dsp/signal"
)

// Sink is the destination of rendered buffers. The buffer passed to Write
// is reused for the next cycle, so sinks must copy what they keep.
type Sink interface {
	Write(dsp.Buffer) error
	Flush() error
}

// ErrInvalidCycles is returned when negative cycle count is provided.
var ErrInvalidCycles = errors.New("cycles must not be negative")

// ErrorRun is returned if render was successfully started, but execution
// and/or flush failed.
type ErrorRun struct {
	ErrExec  error
	ErrFlush error
}

func (e *ErrorRun) Error() string {
	switch {
	case e.ErrExec != nil && e.ErrFlush != nil:
		return fmt.Sprintf("flush error: %v after execute error: %v", e.ErrFlush, e.ErrExec)
	case e.ErrExec != nil:
		return fmt.Sprintf("execute error: %v", e.ErrExec)
	case e.ErrFlush != nil:
		return fmt.Sprintf("flush error: %v", e.ErrFlush)
	}
	return ""
}

// Is checks if any of errors match provided sentinel error.
func (e *ErrorRun) Is(err error) bool {
	if e.ErrExec != nil && errors.Is(e.ErrExec, err) {
		return true
	}
	if e.ErrFlush != nil && errors.Is(e.ErrFlush, err) {
		return true
	}
	return false
}

// Option provides a way to set functional parameters to render.
type Option func(*config)

type config struct {
	log log.Logger
}

// WithLogger sets logger to render. If this option is not provided, silent
// logger is used.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.log = logger
	}
}

// Cycles returns number of cycles required to render duration at sample
// rate. The last cycle may render more than needed.
func Cycles(d time.Duration, sampleRate, frames int) int {
	return int(math.Ceil(float64(signal.FramesOf(sampleRate, d)) / float64(frames)))
}

// Run pulls the root node cycles times and writes each buffer to the sink.
// If cycles is zero, it runs until the context is done. Context is checked
// between cycles, a pull is never interrupted.
func Run(ctx context.Context, root dsp.Node, s dsp.Settings, cycles int, sink Sink, options ...Option) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if cycles < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCycles, cycles)
	}
	c := config{log: log.Silent()}
	for _, option := range options {
		option(&c)
	}

	c.log.Debug(fmt.Sprintf("render: start %d cycles of %d frames %d channels", cycles, s.Frames, s.Channels))
	errExec := execute(ctx, root, s, cycles, sink)
	errFlush := sink.Flush()
	if errExec != nil || errFlush != nil {
		return &ErrorRun{ErrExec: errExec, ErrFlush: errFlush}
	}
	c.log.Debug("render: done")
	return nil
}

func execute(ctx context.Context, root dsp.Node, s dsp.Settings, cycles int, sink Sink) error {
	out := pool.Get(s.SampleCount()).Buffer()
	defer out.Release()
	for i := 0; cycles == 0 || i < cycles; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		dsp.Clear(out)
		dsp.Pull(root, out, s)
		if err := sink.Write(out); err != nil {
			return err
		}
	}
	return nil
}

// Handle controls asynchronous render.
type Handle struct {
	cancel context.CancelFunc
	errc   chan error
}

// Async starts Run in its own goroutine.
func Async(ctx context.Context, root dsp.Node, s dsp.Settings, cycles int, sink Sink, options ...Option) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := Handle{
		cancel: cancel,
		errc:   make(chan error, 1),
	}
	go func() {
		defer close(h.errc)
		defer cancel()
		if err := Run(ctx, root, s, cycles, sink, options...); err != nil {
			h.errc <- err
		}
	}()
	return &h
}

// Wait blocks until render is done and returns its error.
func (h *Handle) Wait() error {
	return <-h.errc
}

// Stop cancels render and waits for it. Cancellation is not reported as
// an error.
func (h *Handle) Stop() error {
	h.cancel()
	err := h.Wait()
	if errors.Is(err, context.Canceled) {
		var e *ErrorRun
		if errors.As(err, &e) && e.ErrFlush != nil {
			return &ErrorRun{ErrFlush: e.ErrFlush}
		}
		return nil
	}
	return err
}
