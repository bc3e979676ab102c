package assembly

import (
	"math"
	"testing"

	"github.com/Jinderamarak/safe-stage/internal/geometry"
	"github.com/Jinderamarak/safe-stage/internal/spatialmath"
)

func boxPart(name string, center, size spatialmath.Vector3, local spatialmath.Transform, class ObstructionClass) Part {
	mesh := geometry.NewBoxMesh(center, size)
	return NewPart(name, mesh, local, class)
}

func unitCube(name string, local spatialmath.Transform, class ObstructionClass) Part {
	return boxPart(name, spatialmath.NewVector3(0, 0, 0), spatialmath.NewVector3(1, 1, 1), local, class)
}

// farChamberStage builds an assembly whose chamber sits far from the stage's
// identity pose, so the identity configuration is always collision-free.
func farChamberStage(t *testing.T) *Assembly {
	t.Helper()
	chamber := unitCube("chamber", spatialmath.NewTransform(spatialmath.NewVector3(10, 0, 0), spatialmath.IdentityQuaternion), NonObstructive)
	stage := unitCube("stage", spatialmath.Identity, NonObstructive)
	a, err := New(chamber, stage)
	if err != nil {
		t.Fatalf("New() returned unexpected error: %v", err)
	}
	return a
}

func TestNewRejectsCollidingInitialState(t *testing.T) {
	chamber := unitCube("chamber", spatialmath.Identity, NonObstructive)
	stage := unitCube("stage", spatialmath.Identity, NonObstructive)
	if _, err := New(chamber, stage); err != InvalidState {
		t.Fatalf("New() with overlapping chamber/stage: got %v, want InvalidState", err)
	}
}

func TestNewAcceptsDisjointInitialState(t *testing.T) {
	farChamberStage(t)
}

func TestUpdateStageCommitsOnSuccess(t *testing.T) {
	a := farChamberStage(t)
	next := SixAxis{X: 5}
	if err := a.UpdateStage(next); err != nil {
		t.Fatalf("UpdateStage into free space: unexpected error %v", err)
	}
	if got := a.StageState(); got != next {
		t.Fatalf("StageState() = %+v, want %+v", got, next)
	}
}

func TestUpdateStageRejectsAndPreservesPriorState(t *testing.T) {
	a := farChamberStage(t)
	prev := a.StageState()

	colliding := SixAxis{X: 10}
	if err := a.UpdateStage(colliding); err != InvalidState {
		t.Fatalf("UpdateStage into the chamber: got %v, want InvalidState", err)
	}
	if got := a.StageState(); got != prev {
		t.Fatalf("StageState() after rejected update = %+v, want unchanged %+v", got, prev)
	}
}

func TestUpdateStageRejectsNonFinite(t *testing.T) {
	a := farChamberStage(t)
	bad := SixAxis{X: math.NaN()}
	if err := a.UpdateStage(bad); err != ErrNonFinite {
		t.Fatalf("UpdateStage with NaN: got %v, want ErrNonFinite", err)
	}
}

func TestAddRetractAndUpdateRetract(t *testing.T) {
	a := farChamberStage(t)

	retracted := spatialmath.NewTransform(spatialmath.NewVector3(-10, 0, 0), spatialmath.IdentityQuaternion)
	inserted := spatialmath.NewTransform(spatialmath.NewVector3(10, 0, 0), spatialmath.IdentityQuaternion)
	r := NewRetract("probe", geometry.NewBoxMesh(spatialmath.NewVector3(0, 0, 0), spatialmath.NewVector3(1, 1, 1)), retracted, inserted, NonObstructive)

	id, err := a.AddRetract(r)
	if err != nil {
		t.Fatalf("AddRetract at retracted pose: unexpected error %v", err)
	}
	if id.IsZero() {
		t.Fatalf("AddRetract returned the zero Id")
	}

	state, err := a.RetractState(id)
	if err != nil || state != RetractedState {
		t.Fatalf("RetractState() = %+v, %v; want RetractedState, nil", state, err)
	}

	// Inserted pose overlaps the chamber at (10, 0, 0): must be rejected and
	// leave the retract's committed state untouched.
	if err := a.UpdateRetract(id, InsertedState); err != InvalidState {
		t.Fatalf("UpdateRetract to a colliding insertion: got %v, want InvalidState", err)
	}
	if state, _ := a.RetractState(id); state != RetractedState {
		t.Fatalf("RetractState() after rejected update = %+v, want unchanged RetractedState", state)
	}
}

func TestAddRetractRejectsCollidingRetractedPose(t *testing.T) {
	a := farChamberStage(t)
	collidingRetracted := spatialmath.NewTransform(spatialmath.NewVector3(10, 0, 0), spatialmath.IdentityQuaternion)
	inserted := spatialmath.NewTransform(spatialmath.NewVector3(-10, 0, 0), spatialmath.IdentityQuaternion)
	r := NewRetract("probe", geometry.NewBoxMesh(spatialmath.NewVector3(0, 0, 0), spatialmath.NewVector3(1, 1, 1)), collidingRetracted, inserted, NonObstructive)

	before := len(a.retracts)
	if _, err := a.AddRetract(r); err != InvalidState {
		t.Fatalf("AddRetract with a colliding retracted pose: got %v, want InvalidState", err)
	}
	if len(a.retracts) != before {
		t.Fatalf("AddRetract must not register the retract on rejection")
	}
}

func TestRemoveRetractUnknownId(t *testing.T) {
	a := farChamberStage(t)
	if err := a.RemoveRetract(NewId()); err != InvalidId {
		t.Fatalf("RemoveRetract of unknown id: got %v, want InvalidId", err)
	}
}

func TestUpdateHolderAndSample(t *testing.T) {
	a := farChamberStage(t)

	// The holder and the sample on it are lifted clear of the unit stage
	// cube, since every pair of parts is checked for intersection.
	holder := boxPart("holder", spatialmath.NewVector3(0, 0, -1), spatialmath.NewVector3(1, 1, 1), spatialmath.NewTransform(spatialmath.NewVector3(0, 0, 3), spatialmath.IdentityQuaternion), NonObstructive)
	if err := a.UpdateHolder(&holder); err != nil {
		t.Fatalf("UpdateHolder: unexpected error %v", err)
	}

	hm, err := NewHeightMap([]float64{1, 1, 1, 1}, 2, 2, 1, 1)
	if err != nil {
		t.Fatalf("NewHeightMap: unexpected error %v", err)
	}
	if err := a.UpdateSample(hm); err != nil {
		t.Fatalf("UpdateSample: unexpected error %v", err)
	}

	// Clearing the sample with nil must always succeed and return it to empty.
	if err := a.UpdateSample(nil); err != nil {
		t.Fatalf("UpdateSample(nil): unexpected error %v", err)
	}
	if a.sample != nil {
		t.Fatalf("UpdateSample(nil) should clear the sample")
	}
}

func TestUpdateSampleAllZeroHeightMapHasNoCollisionEffect(t *testing.T) {
	a := farChamberStage(t)
	hm, err := NewHeightMap([]float64{0, 0, 0, 0}, 2, 2, 1, 1)
	if err != nil {
		t.Fatalf("NewHeightMap: unexpected error %v", err)
	}
	if err := a.UpdateSample(hm); err != nil {
		t.Fatalf("UpdateSample with all-zero heights: unexpected error %v", err)
	}
	if a.sample != nil {
		t.Fatalf("all-zero height map should not produce a sample part")
	}
}

func TestAddAndRemoveEquipment(t *testing.T) {
	a := farChamberStage(t)
	far := unitCube("detector", spatialmath.NewTransform(spatialmath.NewVector3(-10, 0, 0), spatialmath.IdentityQuaternion), NonObstructive)
	if err := a.AddEquipment(far); err != nil {
		t.Fatalf("AddEquipment in free space: unexpected error %v", err)
	}
	if len(a.equipment) != 1 {
		t.Fatalf("expected 1 equipment part, got %d", len(a.equipment))
	}
	if err := a.RemoveEquipment(0); err != nil {
		t.Fatalf("RemoveEquipment: unexpected error %v", err)
	}
	if len(a.equipment) != 0 {
		t.Fatalf("expected 0 equipment parts after removal, got %d", len(a.equipment))
	}
}

func TestAddEquipmentRejectsCollision(t *testing.T) {
	a := farChamberStage(t)
	overlapsChamber := unitCube("bad", spatialmath.NewTransform(spatialmath.NewVector3(10, 0, 0), spatialmath.IdentityQuaternion), NonObstructive)
	if err := a.AddEquipment(overlapsChamber); err != InvalidState {
		t.Fatalf("AddEquipment overlapping the chamber: got %v, want InvalidState", err)
	}
	if len(a.equipment) != 0 {
		t.Fatalf("rejected AddEquipment must not register the part")
	}
}

func TestRemoveEquipmentOutOfRange(t *testing.T) {
	a := farChamberStage(t)
	if err := a.RemoveEquipment(0); err != InvalidId {
		t.Fatalf("RemoveEquipment on empty list: got %v, want InvalidId", err)
	}
}

func TestCollidesIsReadOnly(t *testing.T) {
	a := farChamberStage(t)
	prev := a.StageState()
	if !a.Collides(SixAxis{X: 10}) {
		t.Fatalf("Collides(10,0,0) should report true given the chamber sits there")
	}
	if got := a.StageState(); got != prev {
		t.Fatalf("Collides must never mutate committed state, got %+v want %+v", got, prev)
	}
	if a.Collides(SixAxis{X: 5}) {
		t.Fatalf("Collides(5,0,0) should report false in free space")
	}
}

func TestTrianglesRespectsObstructionLevel(t *testing.T) {
	a := farChamberStage(t)
	obstructive := unitCube("shield", spatialmath.NewTransform(spatialmath.NewVector3(-10, 0, 0), spatialmath.IdentityQuaternion), Full)
	if err := a.AddEquipment(obstructive); err != nil {
		t.Fatalf("AddEquipment: unexpected error %v", err)
	}

	low := a.Triangles(NonObstructive)
	high := a.Triangles(Full)
	if len(high) <= len(low) {
		t.Fatalf("Triangles(Full) should include strictly more triangles than Triangles(NonObstructive): got %d, %d", len(high), len(low))
	}
}
