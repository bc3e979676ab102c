package microscope

import "github.com/Jinderamarak/safe-stage/internal/resolver"

// PathResultState is the wire form of resolver.Status.
type PathResultState int

const (
	PathReached PathResultState = iota
	PathInvalidStart
	PathUnreachableEnd
)

// PathResult is the boundary serialisation of a resolver.Path, shaped as
// `{ state, len, nodes[] }`; Len is derived from Nodes rather than stored
// independently, so the two can never disagree.
type PathResult[T any] struct {
	State PathResultState
	Nodes []T
}

func (p PathResult[T]) Len() int {
	return len(p.Nodes)
}

func pathResultFrom[T any](p resolver.Path[T]) PathResult[T] {
	return PathResult[T]{State: stateFrom(p.Status), Nodes: p.Nodes}
}

func stateFrom(s resolver.Status) PathResultState {
	switch s {
	case resolver.InvalidStart:
		return PathInvalidStart
	case resolver.UnreachableEnd:
		return PathUnreachableEnd
	default:
		return PathReached
	}
}
