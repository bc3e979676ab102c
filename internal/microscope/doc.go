// Package microscope is the external-facing boundary layer: a
// ConfigurationBuilder assembles plain-data config structs into an immutable
// Configuration, which FromConfig turns into a live Microscope wrapping one
// assembly.Assembly plus its resolver tuning. All values crossing this
// boundary are plain data; the core only ever hands back opaque numeric
// keys for retracts.
package microscope
