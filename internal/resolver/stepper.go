package resolver

// stepper is the shared skeleton both resolvers build on: a
// state-type-parameterised {check, append, terminate} walk over an
// already-generated candidate sequence. The linear retract resolver
// walks a straight sequence of interpolated t values; the down-rotate-find
// resolver's phases walk BFS paths, descent steps, and rotation sweeps. Both
// reduce to the same accept/reject-at-first-collision rule.
type stepper[T any] struct {
	collides func(T) bool
}

// walk tests states in order, appending each collision-free one. It stops
// at the first collision: InvalidStart if that happened at the very first
// state, UnreachableEnd otherwise (returning every state collected so far).
func (s stepper[T]) walk(states []T) Path[T] {
	nodes := make([]T, 0, len(states))
	for i, st := range states {
		if s.collides(st) {
			if i == 0 {
				return Path[T]{Status: InvalidStart}
			}
			return Path[T]{Nodes: nodes, Status: UnreachableEnd}
		}
		nodes = append(nodes, st)
	}
	return Path[T]{Nodes: nodes, Status: Reached}
}
