package events

import "context"

// Snapshot is one emission of an observed query.
type Snapshot[T any] struct {
	Value T
	Err   error
}

// Observe emits the query result at subscription time and again after every
// change to one of the tables. A failed query is emitted as a snapshot with
// Err set and observation continues. The channel closes when ctx is done.
func Observe[T any](ctx context.Context, bus *Bus, query func(context.Context) (T, error), tables ...string) <-chan Snapshot[T] {
	signal, unsubscribe := bus.Subscribe(tables...)
	out := make(chan Snapshot[T])

	go func() {
		defer close(out)
		defer unsubscribe()

		for {
			value, err := query(ctx)
			if ctx.Err() != nil {
				return
			}
			select {
			case out <- Snapshot[T]{Value: value, Err: err}:
			case <-ctx.Done():
				return
			}

			select {
			case <-signal:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// CombineLatest keeps the most recent value from each input and emits
// combine(a, b) whenever either side updates, once both have produced at
// least one value. It stops when ctx is done or either input closes.
func CombineLatest[A, B, R any](ctx context.Context, left <-chan A, right <-chan B, combine func(A, B) R) <-chan R {
	out := make(chan R)

	go func() {
		defer close(out)

		var (
			latestLeft  A
			latestRight B
			hasLeft     bool
			hasRight    bool
		)
		for {
			select {
			case value, ok := <-left:
				if !ok {
					return
				}
				latestLeft, hasLeft = value, true
			case value, ok := <-right:
				if !ok {
					return
				}
				latestRight, hasRight = value, true
			case <-ctx.Done():
				return
			}

			if !hasLeft || !hasRight {
				continue
			}
			select {
			case out <- combine(latestLeft, latestRight):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
