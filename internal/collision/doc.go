// Package collision implements exact yes/no collision predicates between
// transformed triangle meshes: primitive-vs-primitive tests, a dual-BVH
// mesh-vs-mesh traversal, and a parallel group query over many parts.
//
// Every predicate here is a pure function of its inputs: no primitive test
// mutates geometry and no query can fail at runtime. A boundary case (exact
// touch, within the epsilon policy of epsilon.go) is always resolved toward
// "colliding", never toward "clear" — the engine is deliberately biased
// against false negatives.
package collision
