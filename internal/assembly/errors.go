package assembly

import (
	"math"

	"github.com/pkg/errors"
)

// InvalidState is returned when a mutating operation's candidate transform
// would put the assembly into a collision; the assembly's prior state is
// left untouched.
var InvalidState = errors.New("assembly: candidate state is not collision-free")

// InvalidId is returned when an operation references a retract Id that is
// not present in the assembly.
var InvalidId = errors.New("assembly: unknown retract id")

// ErrNonFinite is returned by the NaN-rejecting constructors in this
// package (SixAxis, LinearState) when given a non-finite component.
var ErrNonFinite = errors.New("assembly: non-finite value")

// ErrOutOfRange is returned when a LinearState's t falls outside [0, 1].
var ErrOutOfRange = errors.New("assembly: value out of range")

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
