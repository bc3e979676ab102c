package microscope

import (
	"github.com/Jinderamarak/safe-stage/internal/assembly"
	"github.com/Jinderamarak/safe-stage/internal/logging"
	"github.com/Jinderamarak/safe-stage/internal/resolver"
	"github.com/Jinderamarak/safe-stage/internal/spatialmath"
)

// Microscope is the live, mutable handle a caller drives: one assembly plus
// the resolver tuning needed to answer find-path requests against it. This
// is the boundary type everything external code touches after FromConfig
// succeeds.
type Microscope struct {
	asm *assembly.Assembly

	stageResolver    resolver.StageResolverConfig
	retractResolvers map[assembly.Id]ResolverRetractConfig
	retractKeys      map[RetractKey]assembly.Id
}

// FromConfig builds the chamber and stage parts, constructs the assembly,
// and then applies the holder, equipment, and retracts in turn. Any
// rejected part aborts construction with the same error the rejecting
// assembly call returned.
func FromConfig(cfg *Configuration) (*Microscope, error) {
	logging.Init()

	chamberPart := assembly.NewPart("chamber", cfg.chamber.Mesh.toMesh(), spatialmath.Identity, assembly.NonObstructive)
	stagePart := assembly.NewPart("stage", cfg.stage.Mesh.toMesh(), spatialmath.Identity, assembly.NonObstructive)

	asm, err := assembly.New(chamberPart, stagePart)
	if err != nil {
		logging.Warnf("Microscope: initial configuration rejected: %v", err)
		return nil, err
	}
	logging.Printf("Microscope: assembly built (%d equipment, %d retracts)", len(cfg.equipment), len(cfg.retracts))

	m := &Microscope{
		asm:              asm,
		stageResolver:    toStageResolverConfig(cfg.stageResolver),
		retractResolvers: make(map[assembly.Id]ResolverRetractConfig),
		retractKeys:      make(map[RetractKey]assembly.Id),
	}

	if cfg.holder != nil {
		holder := cfg.holder.toPart()
		if err := asm.UpdateHolder(&holder); err != nil {
			return nil, err
		}
	}

	for _, e := range cfg.equipment {
		if err := asm.AddEquipment(e.toPart()); err != nil {
			return nil, err
		}
	}

	for _, entry := range cfg.retracts {
		id, err := asm.AddRetract(entry.config.toRetract())
		if err != nil {
			return nil, err
		}
		m.retractKeys[entry.key] = id
		m.retractResolvers[id] = entry.resolver
	}

	return m, nil
}

func (c EquipmentConfig) toPart() assembly.Part {
	return assembly.NewPart(c.Name, c.Mesh.toMesh(), c.Local.toTransform(), c.Class.toAssemblyClass())
}

func (c HolderConfig) toPart() assembly.Part {
	return assembly.NewPart("holder", c.Mesh.toMesh(), c.Local.toTransform(), assembly.NonObstructive)
}

func (c RetractConfig) toRetract() assembly.Retract {
	return assembly.NewRetract(c.Name, c.Mesh.toMesh(), c.Retracted.toTransform(), c.Inserted.toTransform(), c.Class.toAssemblyClass())
}

func toStageResolverConfig(c ResolverStageConfig) resolver.StageResolverConfig {
	downStep, _ := c.DownStep.toSixAxis()
	return resolver.StageResolverConfig{
		SampleMin:     spatialmath.NewVector3(c.SampleMin[0], c.SampleMin[1], c.SampleMin[2]),
		SampleMax:     spatialmath.NewVector3(c.SampleMax[0], c.SampleMax[1], c.SampleMax[2]),
		SampleStep:    c.SampleStep,
		SampleEpsilon: c.SampleEpsilon,
		DownPoint:     spatialmath.NewVector3(c.DownPoint[0], c.DownPoint[1], c.DownPoint[2]),
		DownStep:      downStep,
		MoveSpeed:     c.MoveSpeed,
		LosStep:       c.LosStep,
		SmoothingStep: c.SmoothingStep,
	}
}

// id resolves a caller-facing RetractKey to the assembly's internal Id.
func (m *Microscope) id(key RetractKey) (assembly.Id, error) {
	id, ok := m.retractKeys[key]
	if !ok {
		return assembly.Id{}, assembly.InvalidId
	}
	return id, nil
}

// UpdateHolder replaces the holder (nil clears it).
func (m *Microscope) UpdateHolder(c *HolderConfig) error {
	if c == nil {
		return m.asm.UpdateHolder(nil)
	}
	p := c.toPart()
	return m.asm.UpdateHolder(&p)
}

// UpdateSample replaces the sample's height map (nil clears it).
func (m *Microscope) UpdateSample(hm *HeightMapConfig) error {
	if hm == nil {
		return m.asm.UpdateSample(nil)
	}
	built, err := hm.toHeightMap()
	if err != nil {
		return err
	}
	return m.asm.UpdateSample(built)
}

// UpdateStageState attempts to move the stage to the given pose.
func (m *Microscope) UpdateStageState(next SixAxisConfig) error {
	state, err := next.toSixAxis()
	if err != nil {
		return err
	}
	return m.asm.UpdateStage(state)
}

// UpdateResolvers re-validates the assembly's current committed state as a
// sanity check and, only if that passes, replaces the stage resolver's
// tuning and/or individual retracts' resolver tuning. Since every committed state already
// passed its own mutation's collision check, this can only fail if the
// assembly was left in a corrupt state by a programming error elsewhere, so
// the {Ok | InvalidState} outcome is still checked at this boundary call
// rather than assumed.
func (m *Microscope) UpdateResolvers(stage *ResolverStageConfig, retracts map[RetractKey]ResolverRetractConfig) error {
	if m.asm.Collides(m.asm.StageState()) {
		return assembly.InvalidState
	}
	if stage != nil {
		m.stageResolver = toStageResolverConfig(*stage)
	}
	for key, cfg := range retracts {
		id, err := m.id(key)
		if err != nil {
			return err
		}
		m.retractResolvers[id] = cfg
	}
	return nil
}

// StageState returns the assembly's current stage pose.
func (m *Microscope) StageState() SixAxisConfig {
	return fromSixAxis(m.asm.StageState())
}

// UpdateRetractState attempts to move the named retract to t. Returns
// assembly.InvalidId if key is unknown.
func (m *Microscope) UpdateRetractState(key RetractKey, t float64) error {
	id, err := m.id(key)
	if err != nil {
		return err
	}
	state, err := assembly.NewLinearState(t)
	if err != nil {
		return err
	}
	return m.asm.UpdateRetract(id, state)
}

// RetractState returns the current insertion level of the retract
// identified by key.
func (m *Microscope) RetractState(key RetractKey) (float64, error) {
	id, err := m.id(key)
	if err != nil {
		return 0, err
	}
	state, err := m.asm.RetractState(id)
	if err != nil {
		return 0, err
	}
	return state.T, nil
}

// FindStagePath runs the down-rotate-find resolver from the assembly's
// current committed stage pose to target.
func (m *Microscope) FindStagePath(target SixAxisConfig) (PathResult[SixAxisConfig], error) {
	targetState, err := target.toSixAxis()
	if err != nil {
		return PathResult[SixAxisConfig]{}, err
	}
	current := m.asm.StageState()
	path := resolver.ResolveDownRotateFindStage(current, targetState, m.stageResolver, m.asm.Collides, nil)
	return mapPath(path, fromSixAxis), nil
}

// FindRetractPath runs the linear resolver from the retract's current
// state to t.
func (m *Microscope) FindRetractPath(key RetractKey, t float64) (PathResult[float64], error) {
	id, err := m.id(key)
	if err != nil {
		return PathResult[float64]{}, err
	}
	target, err := assembly.NewLinearState(t)
	if err != nil {
		return PathResult[float64]{}, err
	}
	current, err := m.asm.RetractState(id)
	if err != nil {
		return PathResult[float64]{}, err
	}
	cfg, ok := m.retractResolvers[id]
	if !ok {
		cfg = ResolverRetractConfig{}
	}
	path := resolver.ResolveLinearRetract(current, target, cfg.Step, func(s assembly.LinearState) bool {
		return m.asm.CollidesRetract(id, s)
	})
	return mapPath(path, func(s assembly.LinearState) float64 { return s.T }), nil
}

func mapPath[T, U any](p resolver.Path[T], f func(T) U) PathResult[U] {
	mapped := pathResultFrom(p)
	nodes := make([]U, len(mapped.Nodes))
	for i, n := range mapped.Nodes {
		nodes[i] = f(n)
	}
	return PathResult[U]{State: mapped.State, Nodes: nodes}
}

// PresentStaticFull returns every chamber/stage/holder/sample/equipment/
// retract triangle, ignoring obstruction class entirely.
func (m *Microscope) PresentStaticFull() TriangleBuffer {
	return newTriangleBuffer(m.asm.Triangles(assembly.Full))
}

// PresentStaticLessObstructive suppresses fully-obstructive parts.
func (m *Microscope) PresentStaticLessObstructive() TriangleBuffer {
	return newTriangleBuffer(m.asm.Triangles(assembly.LessObstructive))
}

// PresentStaticNonObstructive returns only non-obstructive parts.
func (m *Microscope) PresentStaticNonObstructive() TriangleBuffer {
	return newTriangleBuffer(m.asm.Triangles(assembly.NonObstructive))
}

// PresentStage returns the stage (and its holder/sample, if any) at the
// assembly's current committed pose.
func (m *Microscope) PresentStage() TriangleBuffer {
	return newTriangleBuffer(m.asm.TrianglesStage(assembly.Full))
}

// PresentStageAt returns the stage (and its holder/sample, if any) at a
// hypothetical pose, without moving the assembly's committed stage state.
func (m *Microscope) PresentStageAt(pose SixAxisConfig) (TriangleBuffer, error) {
	state, err := pose.toSixAxis()
	if err != nil {
		return TriangleBuffer{}, err
	}
	return newTriangleBuffer(m.asm.TrianglesStageAt(state, assembly.Full)), nil
}

// PresentRetract returns the named retract's geometry at its current
// committed insertion state.
func (m *Microscope) PresentRetract(key RetractKey) (TriangleBuffer, error) {
	id, err := m.id(key)
	if err != nil {
		return TriangleBuffer{}, err
	}
	tris, err := m.asm.TrianglesRetract(id, assembly.Full)
	if err != nil {
		return TriangleBuffer{}, err
	}
	return newTriangleBuffer(tris), nil
}

// PresentRetractAt returns the named retract's geometry at a hypothetical
// insertion level t, without moving its committed state.
func (m *Microscope) PresentRetractAt(key RetractKey, t float64) (TriangleBuffer, error) {
	id, err := m.id(key)
	if err != nil {
		return TriangleBuffer{}, err
	}
	state, err := assembly.NewLinearState(t)
	if err != nil {
		return TriangleBuffer{}, err
	}
	tris, err := m.asm.TrianglesRetractAt(id, state, assembly.Full)
	if err != nil {
		return TriangleBuffer{}, err
	}
	return newTriangleBuffer(tris), nil
}
