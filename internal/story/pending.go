package story

import "context"

// Pending is the deferred result of an asynchronous task.
// Callers that do not care about the outcome may drop it.
type Pending[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go runs fn in its own goroutine and returns a Pending for its result.
// fn receives ctx and should return promptly once it is cancelled.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.val, p.err = fn(ctx)
	}()
	return p
}

// Resolved returns a Pending that is already complete.
func Resolved[T any](val T, err error) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{}), val: val, err: err}
	close(p.done)
	return p
}

// Done is closed once the result is available.
func (p *Pending[T]) Done() <-chan struct{} { return p.done }

// Wait blocks until the result is available or ctx is done.
func (p *Pending[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.val, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
