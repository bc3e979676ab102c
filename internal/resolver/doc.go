// Package resolver turns a (current, target) pair of kinematic states into
// a discrete, collision-free Path against an assembly's collision predicate.
// Every resolver shares the same "step, check, append, terminate" skeleton
// (see stepper); the linear retract resolver and the six-axis down-rotate-
// find resolver differ only in how they generate the next candidate state.
package resolver
