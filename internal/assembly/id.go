package assembly

import (
	"hash/fnv"

	"github.com/google/uuid"
)

// Id identifies a retract within one assembly. Internally backed by a
// google/uuid UUID for collision resistance across the lifetime of a
// process; Raw exposes an opaque u64 for boundary callers that want a
// plain numeric key, derived by hashing the UUID so the full 128 bits
// still determine uniqueness inside the assembly's retract map.
type Id struct {
	uuid uuid.UUID
}

// NewId generates a fresh, process-unique Id.
func NewId() Id {
	return Id{uuid: uuid.New()}
}

// Raw returns the u64 representation used at the assembly's boundary API.
func (id Id) Raw() uint64 {
	h := fnv.New64a()
	_, _ = h.Write(id.uuid[:])
	return h.Sum64()
}

// String returns the full UUID text form, for logging.
func (id Id) String() string {
	return id.uuid.String()
}

// IsZero reports whether id is the zero value (never returned by NewId).
func (id Id) IsZero() bool {
	return id.uuid == uuid.Nil
}
