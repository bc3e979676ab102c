package resolver

import "github.com/Jinderamarak/safe-stage/internal/assembly"

const defaultLinearStep = 0.1

// ResolveLinearRetract applies a simple step loop (advance, test,
// append-or-stop) to the one-dimensional retract state space. It
// steps from current toward target in increments of step, clamping the
// final increment so the sequence lands exactly on target, and hands the
// resulting sequence to stepper for the check/append/terminate pass.
func ResolveLinearRetract(current, target assembly.LinearState, step float64, collides func(assembly.LinearState) bool) Path[assembly.LinearState] {
	return stepper[assembly.LinearState]{collides: collides}.walk(linearStates(current.T, target.T, step))
}

func linearStates(current, target, step float64) []assembly.LinearState {
	if step <= 0 {
		step = defaultLinearStep
	}

	sign := 1.0
	if target < current {
		sign = -1
	}

	var ts []float64
	for i := 0; ; i++ {
		t := current + sign*float64(i)*step
		if (sign > 0 && t >= target) || (sign < 0 && t <= target) {
			ts = append(ts, target)
			break
		}
		ts = append(ts, t)
	}

	states := make([]assembly.LinearState, len(ts))
	for i, v := range ts {
		states[i], _ = assembly.NewLinearState(clamp01(v))
	}
	return states
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
