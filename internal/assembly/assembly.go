package assembly

import (
	"context"
	"sync"

	"github.com/Jinderamarak/safe-stage/internal/collision"
	"github.com/Jinderamarak/safe-stage/internal/geometry"
	"github.com/Jinderamarak/safe-stage/internal/spatialmath"
)

// Assembly is the mutable kinematic model of one microscope chamber: a
// static chamber, a six-axis stage carrying an optional holder and sample,
// a set of equipment parts, and a map of retracts each with their own
// insertion state. Every mutating method is transactional: the candidate
// world transforms are computed, checked against the collision engine over
// every part in the assembly, and only committed on success. Under a
// single-owner-synchronous contract, mutations are serialised by mu
// while reads may run concurrently against a stable snapshot.
type Assembly struct {
	mu sync.RWMutex

	chamber    Part
	stage      Part
	stageState SixAxis

	holder    *Part
	sample    *Part
	heightMap *HeightMap

	equipment []Part
	retracts  map[Id]Retract
}

// New builds an Assembly from a chamber and a stage mesh, both placed at
// the chamber frame's origin. Returns InvalidState if the identity
// configuration (no holder, no sample, no equipment, no retracts) is
// already colliding — a malformed starting geometry.
func New(chamber, stage Part) (*Assembly, error) {
	a := &Assembly{
		chamber:  chamber,
		stage:    stage,
		retracts: make(map[Id]Retract),
	}
	if collidingEntries(a.candidateCollidables(IdentitySixAxis, nil, nil, nil)) {
		return nil, InvalidState
	}
	a.stageState = IdentitySixAxis
	return a, nil
}

// StageState returns the assembly's current stage pose.
func (a *Assembly) StageState() SixAxis {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stageState
}

// RetractState returns the current insertion state of the retract
// identified by id.
func (a *Assembly) RetractState(id Id) (LinearState, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	r, ok := a.retracts[id]
	if !ok {
		return LinearState{}, InvalidId
	}
	return r.State, nil
}

// AddRetract registers a new retract at its fully-retracted state and
// returns its Id. Rejects with InvalidState if the retracted pose
// collides with the rest of the assembly.
func (a *Assembly) AddRetract(r Retract) (Id, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	r.State = RetractedState
	id := NewId()

	entries := a.candidateCollidables(a.stageState, a.holder, a.sample, nil)
	entries = append(entries, r.asPart(r.State).collidable(spatialmath.Identity))
	if collidingEntries(entries) {
		return Id{}, InvalidState
	}
	a.retracts[id] = r
	return id, nil
}

// RemoveRetract drops a retract from the assembly entirely; removal can
// never introduce a collision, so it always succeeds once id is known.
func (a *Assembly) RemoveRetract(id Id) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.retracts[id]; !ok {
		return InvalidId
	}
	delete(a.retracts, id)
	return nil
}

// UpdateStage attempts to move the stage (and anything rigidly attached to
// it: holder, sample) to next. Commits only if the resulting configuration
// is collision-free against the chamber, equipment, and every retract.
func (a *Assembly) UpdateStage(next SixAxis) error {
	if !next.IsFinite() {
		return ErrNonFinite
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if collidingEntries(a.candidateCollidables(next, a.holder, a.sample, nil)) {
		return InvalidState
	}
	a.stageState = next
	return nil
}

// UpdateRetract attempts to move the named retract to state. Commits only
// if the resulting pose is collision-free against the rest of the
// assembly.
func (a *Assembly) UpdateRetract(id Id, state LinearState) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.retracts[id]; !ok {
		return InvalidId
	}

	override := map[Id]LinearState{id: state}
	if collidingEntries(a.candidateCollidables(a.stageState, a.holder, a.sample, override)) {
		return InvalidState
	}
	r := a.retracts[id]
	r.State = state
	a.retracts[id] = r
	return nil
}

// UpdateHolder replaces the holder (nil clears it). Commits only if the
// resulting configuration is collision-free.
func (a *Assembly) UpdateHolder(holder *Part) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if collidingEntries(a.candidateCollidables(a.stageState, holder, a.sample, nil)) {
		return InvalidState
	}
	a.holder = holder
	return nil
}

// UpdateSample replaces the sample's height map (nil clears it, returning
// the sample to "empty"). Commits only if the rasterised sample mesh is
// collision-free against the rest of the assembly.
func (a *Assembly) UpdateSample(hm *HeightMap) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var sample *Part
	if hm != nil {
		mesh := hm.Mesh()
		if mesh != nil {
			p := NewPart("sample", mesh, spatialmath.Identity, NonObstructive)
			sample = &p
		}
	}

	if collidingEntries(a.candidateCollidables(a.stageState, a.holder, sample, nil)) {
		return InvalidState
	}
	a.heightMap = hm
	a.sample = sample
	return nil
}

// AddEquipment appends an equipment part. Commits only if the resulting
// configuration is collision-free.
func (a *Assembly) AddEquipment(p Part) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	candidate := append(append([]Part{}, a.equipment...), p)
	entries := a.candidateCollidables(a.stageState, a.holder, a.sample, nil)
	entries = append(entries, p.collidable(spatialmath.Identity))
	if collidingEntries(entries) {
		return InvalidState
	}
	a.equipment = candidate
	return nil
}

// RemoveEquipment removes the equipment part at index i; removal can never
// introduce a collision.
func (a *Assembly) RemoveEquipment(i int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if i < 0 || i >= len(a.equipment) {
		return InvalidId
	}
	a.equipment = append(a.equipment[:i], a.equipment[i+1:]...)
	return nil
}

// Collides reports whether the current committed assembly state has a
// collision for stageState, applied as a hypothetical candidate
// without mutating the assembly. This is the read-only predicate a
// resolver polls while exploring neighbour states.
func (a *Assembly) Collides(stageState SixAxis) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return collidingEntries(a.candidateCollidables(stageState, a.holder, a.sample, nil))
}

// CollidesRetract is the read-only retract analogue of Collides.
func (a *Assembly) CollidesRetract(id Id, state LinearState) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	override := map[Id]LinearState{id: state}
	return collidingEntries(a.candidateCollidables(a.stageState, a.holder, a.sample, override))
}

// Triangles returns the world-space triangles of every part whose
// obstruction class is at most level, for the current committed state.
func (a *Assembly) Triangles(level ObstructionClass) []geometry.Triangle {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []geometry.Triangle
	out = append(out, a.chamber.triangles(spatialmath.Identity, level)...)

	stageWorld := spatialmath.Compose(a.stageState.Transform(), a.stage.Local)
	out = append(out, a.stage.triangles(a.stageState.Transform(), level)...)

	parentForSample := stageWorld
	if a.holder != nil {
		out = append(out, a.holder.triangles(stageWorld, level)...)
		parentForSample = spatialmath.Compose(stageWorld, a.holder.Local)
	}
	if a.sample != nil {
		out = append(out, a.sample.triangles(parentForSample, level)...)
	}

	for _, e := range VisibleParts(a.equipment, level) {
		out = append(out, e.triangles(spatialmath.Identity, level)...)
	}

	retractParts := make([]Part, 0, len(a.retracts))
	for _, r := range a.retracts {
		retractParts = append(retractParts, r.asPart(r.State))
	}
	for _, p := range VisibleParts(retractParts, level) {
		out = append(out, p.triangles(spatialmath.Identity, level)...)
	}

	return out
}

// TrianglesStageAt returns the world-space triangles of the stage, its
// holder, and its sample (in that parent-to-child order) at a hypothetical
// pose, without mutating the assembly. Presentation analogue of Collides.
func (a *Assembly) TrianglesStageAt(pose SixAxis, level ObstructionClass) []geometry.Triangle {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []geometry.Triangle
	stageWorld := spatialmath.Compose(pose.Transform(), a.stage.Local)
	out = append(out, a.stage.triangles(pose.Transform(), level)...)

	parentForSample := stageWorld
	if a.holder != nil {
		out = append(out, a.holder.triangles(stageWorld, level)...)
		parentForSample = spatialmath.Compose(stageWorld, a.holder.Local)
	}
	if a.sample != nil {
		out = append(out, a.sample.triangles(parentForSample, level)...)
	}
	return out
}

// TrianglesStage is TrianglesStageAt at the current committed stage pose.
func (a *Assembly) TrianglesStage(level ObstructionClass) []geometry.Triangle {
	return a.TrianglesStageAt(a.StageState(), level)
}

// TrianglesRetractAt returns the world-space triangles of the named retract
// at a hypothetical insertion state, without mutating the assembly.
func (a *Assembly) TrianglesRetractAt(id Id, state LinearState, level ObstructionClass) ([]geometry.Triangle, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	r, ok := a.retracts[id]
	if !ok {
		return nil, InvalidId
	}
	return r.asPart(state).triangles(spatialmath.Identity, level), nil
}

// TrianglesRetract is TrianglesRetractAt at the retract's current committed
// insertion state.
func (a *Assembly) TrianglesRetract(id Id, level ObstructionClass) ([]geometry.Triangle, error) {
	state, err := a.RetractState(id)
	if err != nil {
		return nil, err
	}
	return a.TrianglesRetractAt(id, state, level)
}

// candidateCollidables builds the full world-placed collidable list for a
// hypothetical state: stageState overrides the stage pose, holder/sample
// override the attached parts (nil meaning "none", not "unchanged" — pass
// a.holder/a.sample to keep the current ones), and retractOverride
// overrides individual retracts' LinearState by Id.
func (a *Assembly) candidateCollidables(stageState SixAxis, holder *Part, sample *Part, retractOverride map[Id]LinearState) []collision.Collidable {
	var entries []collision.Collidable
	entries = append(entries, a.chamber.collidable(spatialmath.Identity))

	stageWorld := a.stage.collidable(stageState.Transform()).Transform
	entries = append(entries, collision.Collidable{Mesh: a.stage.Mesh, BVH: a.stage.BVH, Transform: stageWorld})

	parentForSample := stageWorld
	if holder != nil {
		holderCollidable := holder.collidable(stageWorld)
		entries = append(entries, holderCollidable)
		parentForSample = holderCollidable.Transform
	}
	if sample != nil {
		entries = append(entries, sample.collidable(parentForSample))
	}

	for _, e := range a.equipment {
		entries = append(entries, e.collidable(spatialmath.Identity))
	}

	for id, r := range a.retracts {
		state := r.State
		if s, ok := retractOverride[id]; ok {
			state = s
		}
		entries = append(entries, r.asPart(state).collidable(spatialmath.Identity))
	}

	return entries
}

func collidingEntries(entries []collision.Collidable) bool {
	group := collision.ColliderGroup{Entries: entries}
	return group.AnyColliding(context.Background())
}
