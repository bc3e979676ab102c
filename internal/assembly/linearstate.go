package assembly

// LinearState is a retract's insertion level: 0 is fully retracted, 1 is
// fully inserted. Values outside [0, 1] are rejected at construction.
type LinearState struct {
	T float64
}

// RetractedState is the LinearState at t = 0.
var RetractedState = LinearState{T: 0}

// InsertedState is the LinearState at t = 1.
var InsertedState = LinearState{T: 1}

// NewLinearState builds a LinearState, rejecting NaN/Inf and any t outside
// [0, 1].
func NewLinearState(t float64) (LinearState, error) {
	if !isFinite(t) {
		return LinearState{}, ErrNonFinite
	}
	if t < 0 || t > 1 {
		return LinearState{}, ErrOutOfRange
	}
	return LinearState{T: t}, nil
}
