package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"gilded/internal/logger"
	"gilded/internal/metrics"
)

// ErrDispatcherClosed is reported by writes submitted after Drain
var ErrDispatcherClosed = errors.New("write dispatcher is closed")

// Ack reports the outcome of a dispatched write
type Ack struct {
	done chan struct{}
	err  error
}

func newAck() *Ack {
	return &Ack{done: make(chan struct{})}
}

func (a *Ack) finish(err error) {
	a.err = err
	close(a.done)
}

// Done is closed once the write has finished
func (a *Ack) Done() <-chan struct{} {
	return a.done
}

// Err returns the write error. It is only meaningful after Done is closed.
func (a *Ack) Err() error {
	select {
	case <-a.done:
		return a.err
	default:
		return nil
	}
}

// Wait blocks until the write finishes or ctx is done
func (a *Ack) Wait(ctx context.Context) error {
	select {
	case <-a.done:
		return a.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dispatcher runs store writes off the request path. Writes outlive the
// request context, are never retried, and have their outcome logged and
// counted. In sync mode Submit waits for the write and returns its error.
type Dispatcher struct {
	timeout time.Duration
	sync    bool

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(timeout time.Duration, sync bool) *Dispatcher {
	return &Dispatcher{timeout: timeout, sync: sync}
}

// Dispatch starts the write in the background and returns immediately
func (d *Dispatcher) Dispatch(ctx context.Context, op string, write func(ctx context.Context) error) *Ack {
	ack := newAck()

	d.mu.RLock()
	if d.closed {
		d.mu.RUnlock()
		d.record(ctx, op, ErrDispatcherClosed, 0)
		ack.finish(ErrDispatcherClosed)
		return ack
	}
	d.wg.Add(1)
	d.mu.RUnlock()

	metrics.StoreWritesInFlight.Inc()
	writeCtx := context.WithoutCancel(ctx)

	go func() {
		defer d.wg.Done()
		defer metrics.StoreWritesInFlight.Dec()

		if d.timeout > 0 {
			var cancel context.CancelFunc
			writeCtx, cancel = context.WithTimeout(writeCtx, d.timeout)
			defer cancel()
		}

		start := time.Now()
		err := write(writeCtx)
		d.record(writeCtx, op, err, time.Since(start))
		ack.finish(err)
	}()

	return ack
}

// Submit dispatches the write. In sync mode it waits for the outcome;
// otherwise it returns nil at once and the caller never observes the write.
func (d *Dispatcher) Submit(ctx context.Context, op string, write func(ctx context.Context) error) (*Ack, error) {
	ack := d.Dispatch(ctx, op, write)
	if !d.sync {
		return ack, nil
	}
	return ack, ack.Wait(ctx)
}

func (d *Dispatcher) record(ctx context.Context, op string, err error, took time.Duration) {
	metrics.StoreWrites.WithLabelValues(op, metrics.Outcome(err)).Inc()

	log := logger.WithContext(ctx).With("op", op, "duration_ms", took.Milliseconds())
	if err != nil {
		log.Error("Document store write failed", "error", err)
		return
	}
	log.Debug("Document store write completed")
}

// Drain stops accepting writes and waits for in-flight ones
func (d *Dispatcher) Drain(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
