package query

import (
	"context"

	"salesdrive/internal/apierr"
)

const (
	MinLimit = 1
	MaxLimit = 100
)

// Fetcher performs the request for an accumulated parameter set
type Fetcher[R any] func(ctx context.Context, p Params) (R, error)

// State is the mutable parameter set shared by a builder and its setter groups.
type State struct {
	params Params
	err    error
}

// NewState starts from a deep copy of initial, or from empty params.
func NewState(initial *Params) *State {
	st := &State{}
	if initial != nil {
		st.params = initial.Clone()
	}
	return st
}

func (st *State) filter() Filter {
	if st.params.Filter == nil {
		st.params.Filter = Filter{}
	}
	return st.params.Filter
}

func (st *State) set(field string, v any) {
	st.filter()[field] = v
}

func (st *State) from(field string, v any) {
	f := st.filter()
	r := rangeOf(f[field])
	r.From = v
	f[field] = r
}

func (st *State) to(field string, v any) {
	f := st.filter()
	r := rangeOf(f[field])
	r.To = v
	f[field] = r
}

func (st *State) fail(err error) {
	if st.err == nil {
		st.err = err
	}
}

// Builder accumulates parameters for one list endpoint and runs the request
// only when executed. S is the concrete builder type returned by setters.
//
// A Builder is not safe for concurrent mutation.
type Builder[S any, R any] struct {
	self  S
	st    *State
	fetch Fetcher[R]
}

// NewBuilder binds a builder to its concrete owner, its state and the service fetcher.
func NewBuilder[S any, R any](self S, st *State, fetch Fetcher[R]) Builder[S, R] {
	return Builder[S, R]{self: self, st: st, fetch: fetch}
}

func (b *Builder[S, R]) Page(n int) S {
	b.st.params.Page = n
	return b.self
}

// Limit sets the page size. Values outside 1..100 make every later execution
// fail without a request; Err reports the failure right away.
func (b *Builder[S, R]) Limit(n int) S {
	if n < MinLimit || n > MaxLimit {
		b.st.fail(apierr.InvalidArgument("limit must be between %d and %d, got %d", MinLimit, MaxLimit, n))
		return b.self
	}
	b.st.params.Limit = n
	return b.self
}

// Count is an alias for Limit
func (b *Builder[S, R]) Count(n int) S {
	return b.Limit(n)
}

// Where sets a raw filter entry for fields without a dedicated setter
func (b *Builder[S, R]) Where(field string, v any) S {
	b.st.set(field, v)
	return b.self
}

// Err returns the first validation error recorded by a setter
func (b *Builder[S, R]) Err() error {
	return b.st.err
}

// Params returns a deep copy of the accumulated parameters
func (b *Builder[S, R]) Params() Params {
	return b.st.params.Clone()
}

// Execute issues one request with the current parameters. Every call issues
// its own request.
func (b *Builder[S, R]) Execute(ctx context.Context) (R, error) {
	if err := b.st.err; err != nil {
		var zero R
		return zero, err
	}
	return b.fetch(ctx, b.st.params.Clone())
}

// Start issues the request on its own goroutine. Parameters are captured
// before Start returns, so later setter calls do not affect it.
func (b *Builder[S, R]) Start(ctx context.Context) *Future[R] {
	f := &Future[R]{done: make(chan struct{})}
	if err := b.st.err; err != nil {
		f.err = err
		close(f.done)
		return f
	}

	snapshot := b.st.params.Clone()
	fetch := b.fetch
	go func() {
		defer close(f.done)
		f.res, f.err = fetch(ctx, snapshot)
	}()
	return f
}

// Future is the pending result of Start
type Future[R any] struct {
	done chan struct{}
	res  R
	err  error
}

// Wait blocks until the request finishes
func (f *Future[R]) Wait() (R, error) {
	<-f.done
	return f.res, f.err
}

// Done is closed once the result is available
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}
