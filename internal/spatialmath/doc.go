// Package spatialmath provides the numerically stable primitives the rest of
// the engine is built on: vectors, quaternions, rigid transforms, and axis-
// aligned bounding boxes. Every quantity is float64 and every operation is
// total on finite input — NaN in, NaN (or worse) out, so callers are expected
// to reject NaN at their own boundary before it ever reaches here.
package spatialmath
