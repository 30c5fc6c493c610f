package signal

import (
	"context"
	"sync"

	"github.com/npillmayer/livestyle/fp"
	"github.com/npillmayer/livestyle/maybe"
)

// Signal is a source of a sequential stream of values.
type Signal[T any] interface {
	// Subscribe starts a new stream. The returned channel is closed when the
	// source is exhausted or ctx is done.
	Subscribe(ctx context.Context) <-chan T
}

// Func adapts a plain function to interface Signal.
type Func[T any] func(ctx context.Context) <-chan T

// Subscribe calls f(ctx).
func (f Func[T]) Subscribe(ctx context.Context) <-chan T {
	return f(ctx)
}

// --- Mutable ---------------------------------------------------------------

// Mutable is a variable which may be observed through signals.
// The zero value is not usable, use NewMutable.
type Mutable[T any] struct {
	mu      sync.Mutex
	value   T
	version uint64
	subs    map[*subscriber]struct{}
}

type subscriber struct {
	wake chan struct{}
}

func (sub *subscriber) notify() {
	select {
	case sub.wake <- struct{}{}:
	default: // a wake-up is already pending
	}
}

// NewMutable creates a Mutable holding v.
func NewMutable[T any](v T) *Mutable[T] {
	return &Mutable[T]{
		value: v,
		subs:  make(map[*subscriber]struct{}),
	}
}

// Get returns the current value.
func (m *Mutable[T]) Get() T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

// Set replaces the current value and wakes up all subscribers.
func (m *Mutable[T]) Set(v T) {
	m.Update(func(T) T { return v })
}

// Update replaces the current value with f(current) and wakes up all
// subscribers.
func (m *Mutable[T]) Update(f func(T) T) {
	m.mu.Lock()
	m.value = f(m.value)
	m.version++
	for sub := range m.subs {
		sub.notify()
	}
	m.mu.Unlock()
}

// Subscribers returns the number of live subscriptions.
func (m *Mutable[T]) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

// Signal returns a signal observing m.
func (m *Mutable[T]) Signal() Signal[T] {
	return Func[T](m.subscribe)
}

func (m *Mutable[T]) subscribe(ctx context.Context) <-chan T {
	out := make(chan T)
	sub := &subscriber{wake: make(chan struct{}, 1)}
	m.mu.Lock()
	m.subs[sub] = struct{}{}
	m.mu.Unlock()
	sub.notify() // deliver the current value first
	go func() {
		defer close(out)
		defer func() {
			m.mu.Lock()
			delete(m.subs, sub)
			m.mu.Unlock()
		}()
		var seen uint64
		first := true
		for {
			select {
			case <-ctx.Done():
				return
			case <-sub.wake:
			}
			m.mu.Lock()
			v, version := m.value, m.version
			m.mu.Unlock()
			if !first && version == seen {
				continue
			}
			first, seen = false, version
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// --- Sources ---------------------------------------------------------------

// FromValues returns a signal yielding vs in order, then ending.
func FromValues[T any](vs ...T) Signal[T] {
	values := append([]T(nil), vs...)
	return Func[T](func(ctx context.Context) <-chan T {
		out := make(chan T)
		go func() {
			defer close(out)
			for _, v := range values {
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}()
		return out
	})
}

// Always returns a signal yielding v once and then staying silent until
// the subscription is cancelled.
func Always[T any](v T) Signal[T] {
	return Func[T](func(ctx context.Context) <-chan T {
		out := make(chan T)
		go func() {
			defer close(out)
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
			<-ctx.Done()
		}()
		return out
	})
}

// FromChannel wraps a channel owned by the caller. The channel may be
// subscribed to only once; later subscriptions yield nothing.
func FromChannel[T any](ch <-chan T) Signal[T] {
	var once sync.Once
	return Func[T](func(ctx context.Context) <-chan T {
		out := make(chan T)
		taken := false
		once.Do(func() { taken = true })
		go func() {
			defer close(out)
			if !taken {
				tracer().Errorf("channel signal subscribed more than once")
				return
			}
			forward(ctx, ch, out, fp.Identity[T])
		}()
		return out
	})
}

// --- Derived signals -------------------------------------------------------

// Map derives a signal by applying f to every value of sig.
func Map[S, T any](sig Signal[S], f func(S) T) Signal[T] {
	return Func[T](func(ctx context.Context) <-chan T {
		in := sig.Subscribe(ctx)
		out := make(chan T)
		go func() {
			defer close(out)
			forward(ctx, in, out, f)
		}()
		return out
	})
}

// MapBool maps true to ifTrue() and false to ifFalse().
func MapBool[T any](sig Signal[bool], ifTrue, ifFalse func() T) Signal[T] {
	return Map(sig, func(b bool) T {
		if b {
			return ifTrue()
		}
		return ifFalse()
	})
}

// When maps true to Just(v) and false to Nothing.
func When[T any](sig Signal[bool], v T) Signal[maybe.Maybe[T]] {
	return MapBool(sig, fp.Const(maybe.Just(v)), fp.Const(maybe.Nothing[T]()))
}

// MapJust applies f to every value of sig, always producing a present value.
func MapJust[S, T any](sig Signal[S], f func(S) T) Signal[maybe.Maybe[T]] {
	return Map(sig, fp.Compose(f, maybe.Just[T]))
}

// NonEmpty maps "" to Nothing and any other string to Just.
func NonEmpty(sig Signal[string]) Signal[maybe.Maybe[string]] {
	return Map(sig, maybe.NonEmpty)
}

func forward[S, T any](ctx context.Context, in <-chan S, out chan<- T, f func(S) T) {
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-in:
			if !ok {
				return
			}
			select {
			case out <- f(v):
			case <-ctx.Done():
				return
			}
		}
	}
}
