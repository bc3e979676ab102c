package collision

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ColliderGroup is a set of world-placed parts queried together, used by
// the assembly model to check a whole sub-tree (stage plus holder plus
// sample, or the full equipment set) against itself or against one
// external part in a single call.
type ColliderGroup struct {
	Entries []Collidable
}

// AnyColliding reports whether any unordered pair within the group
// collides. Pair enumeration is fanned out across a worker pool; because
// every Colliding call is a pure, read-only predicate, the reduction is a
// short-circuiting logical OR that never depends on scheduling order.
func (g ColliderGroup) AnyColliding(ctx context.Context) bool {
	n := len(g.Entries)
	if n < 2 {
		return false
	}

	type pair struct{ i, j int }
	pairs := make([]pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, pair{i, j})
		}
	}

	return fanOutAny(ctx, len(pairs), func(k int) bool {
		p := pairs[k]
		return Colliding(g.Entries[p.i], g.Entries[p.j])
	})
}

// CollidingWith reports whether any entry in the group collides with
// other, an external part not itself in the group.
func (g ColliderGroup) CollidingWith(ctx context.Context, other Collidable) bool {
	return fanOutAny(ctx, len(g.Entries), func(k int) bool {
		return Colliding(g.Entries[k], other)
	})
}

// fanOutAny evaluates test(0..n-1) across a worker pool and returns true as
// soon as any call reports true, cooperatively cancelling the rest.
// Cancellation is advisory only: correctness never depends on how many
// in-flight calls actually observe it before returning.
func fanOutAny(ctx context.Context, n int, test func(int) bool) bool {
	if n == 0 {
		return false
	}

	groupCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, groupCtx := errgroup.WithContext(groupCtx)
	var found atomic.Bool

	for k := 0; k < n; k++ {
		k := k
		g.Go(func() error {
			select {
			case <-groupCtx.Done():
				return nil
			default:
			}
			if test(k) {
				found.Store(true)
				cancel()
			}
			return nil
		})
	}
	_ = g.Wait()

	return found.Load()
}
