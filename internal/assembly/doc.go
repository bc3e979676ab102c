// Package assembly models the kinematic composition of a microscope
// chamber: a static chamber, a six-axis stage carrying an optional holder
// and sample, a set of equipment parts, and zero or more retract devices
// each with a single insertion axis. Every mutation is transactional —
// compute the candidate transforms, check collision-freeness over every
// affected pair, then commit or reject — so the assembly never exposes a
// half-updated, possibly interpenetrating configuration.
package assembly
