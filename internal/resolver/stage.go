package resolver

import (
	"math"
	"sync"

	"github.com/samber/lo"

	"github.com/Jinderamarak/safe-stage/internal/assembly"
	"github.com/Jinderamarak/safe-stage/internal/logging"
	"github.com/Jinderamarak/safe-stage/internal/spatialmath"
)

var losStepWarnOnce sync.Once

// rotateFindMaxStepsPerAxis bounds phase 3's per-axis rotation sweep to a
// full turn's worth of steps at worst case, so a misconfigured (very small)
// downStep rotational component cannot make the sweep unbounded.
const rotateFindMaxStepsPerAxis = 36

// descentMaxSteps bounds phase 2's descent so a misconfigured (very small)
// downStep translation cannot make it loop indefinitely.
const descentMaxSteps = 10000

const defaultLosStep = 1e-3

// reachedTol is the tolerance used to detect "already at target" before
// running any of the three phases.
const reachedTol = 1e-9

// StageResolverConfig is the down-rotate-find resolver's tuning surface:
// sample-space bounds and step for phase 1, the descent target and per-axis
// step for phase 2, and the line-of-sight and smoothing granularities
// shared by phases 1 and 3. losStep is optional — callers that omit it get
// sampleStep's resolution instead (substituted, with a logged warning, at the
// start of ResolveDownRotateFindStage), never a silently inferred unrelated
// default.
type StageResolverConfig struct {
	SampleMin, SampleMax spatialmath.Vector3
	SampleStep           float64
	SampleEpsilon        float64

	DownPoint spatialmath.Vector3
	DownStep  assembly.SixAxis
	MoveSpeed float64

	LosStep       float64
	SmoothingStep float64
}

// ResolveDownRotateFindStage runs the three-phase stage planner: a BFS
// sample-space search at the current rotation, a descent toward DownPoint,
// and a rotation sweep that looks for a pose with a clear line of sight to
// target. trace may be nil.
func ResolveDownRotateFindStage(current, target assembly.SixAxis, cfg StageResolverConfig, collides func(assembly.SixAxis) bool, trace *Trace) Path[assembly.SixAxis] {
	trace.record(NotStarted)

	if current.ApproxEqual(target, reachedTol) && !collides(target) {
		trace.record(Done)
		return Path[assembly.SixAxis]{Nodes: []assembly.SixAxis{target}, Status: Reached}
	}

	trace.record(Exploring)

	if cfg.LosStep <= 0 {
		cfg.LosStep = cfg.SampleStep
		logging.Warnf("resolver: losStep unset, using sampleStep %g", cfg.SampleStep)
	}

	s := stepper[assembly.SixAxis]{collides: collides}

	explored := sampleSpaceSearch(s, current, cfg)
	if explored.Status == InvalidStart {
		trace.record(Failed)
		trace.record(Done)
		return explored
	}
	if explored.Status == UnreachableEnd {
		trace.record(Failed)
		trace.record(Done)
		return explored
	}

	descended := descendToward(s, explored.Nodes[len(explored.Nodes)-1], cfg)
	combined := append(append([]assembly.SixAxis{}, explored.Nodes...), descended.Nodes...)
	if descended.Status != Reached {
		trace.record(Failed)
		trace.record(Done)
		return Path[assembly.SixAxis]{Nodes: combined, Status: UnreachableEnd}
	}

	rotated := rotateFind(s, combined[len(combined)-1], target, cfg)
	if rotated.Status != Reached {
		trace.record(Failed)
		trace.record(Done)
		return Path[assembly.SixAxis]{Nodes: combined, Status: UnreachableEnd}
	}
	combined = append(combined, rotated.Nodes...)

	trace.record(Smoothing)
	smoothed := shortcutSmooth(s, combined, cfg.SmoothingStep)
	trace.record(Done)
	return Path[assembly.SixAxis]{Nodes: smoothed, Status: Reached}
}

// Smooth re-applies shortcut smoothing to an already-resolved path; useful
// when a caller wants to re-smooth with a different step after the fact.
// Non-Reached paths are returned unchanged.
func Smooth(path Path[assembly.SixAxis], smoothingStep float64, collides func(assembly.SixAxis) bool) Path[assembly.SixAxis] {
	if path.Status != Reached {
		return path
	}
	s := stepper[assembly.SixAxis]{collides: collides}
	return Path[assembly.SixAxis]{Nodes: shortcutSmooth(s, path.Nodes, smoothingStep), Status: Reached}
}

type gridCell struct{ X, Y, Z int }

// sampleSpaceSearch is phase 1: BFS over the discretised (x, y, z) grid at
// the stage's current rotation, from current's cell toward the cell nearest
// DownPoint, only stepping to neighbours whose pose (dilated by
// SampleEpsilon) and line-of-sight segment from the previous cell are both
// collision-free.
func sampleSpaceSearch(s stepper[assembly.SixAxis], current assembly.SixAxis, cfg StageResolverConfig) Path[assembly.SixAxis] {
	step := cfg.SampleStep
	if step <= 0 {
		return Path[assembly.SixAxis]{Status: InvalidStart}
	}

	toCell := func(p spatialmath.Vector3) gridCell {
		return gridCell{
			X: int(math.Round((p.X - cfg.SampleMin.X) / step)),
			Y: int(math.Round((p.Y - cfg.SampleMin.Y) / step)),
			Z: int(math.Round((p.Z - cfg.SampleMin.Z) / step)),
		}
	}
	toPoint := func(c gridCell) spatialmath.Vector3 {
		return spatialmath.NewVector3(
			cfg.SampleMin.X+float64(c.X)*step,
			cfg.SampleMin.Y+float64(c.Y)*step,
			cfg.SampleMin.Z+float64(c.Z)*step,
		)
	}
	inBounds := func(c gridCell) bool {
		p := toPoint(c)
		return p.X >= cfg.SampleMin.X-1e-9 && p.X <= cfg.SampleMax.X+1e-9 &&
			p.Y >= cfg.SampleMin.Y-1e-9 && p.Y <= cfg.SampleMax.Y+1e-9 &&
			p.Z >= cfg.SampleMin.Z-1e-9 && p.Z <= cfg.SampleMax.Z+1e-9
	}
	poseAt := func(c gridCell) assembly.SixAxis {
		p := toPoint(c)
		return assembly.SixAxis{X: p.X, Y: p.Y, Z: p.Z, RX: current.RX, RY: current.RY, RZ: current.RZ}
	}
	clear := func(c gridCell) bool {
		return clearWithMargin(s, poseAt(c), cfg.SampleEpsilon)
	}

	start := toCell(spatialmath.NewVector3(current.X, current.Y, current.Z))
	goal := toCell(cfg.DownPoint)
	if !inBounds(goal) {
		goal = clampCellToBounds(goal, cfg, step)
	}

	if !clear(start) {
		return Path[assembly.SixAxis]{Status: InvalidStart}
	}

	deltas := []gridCell{
		{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
	}

	visited := map[gridCell][]gridCell{start: {start}}
	queue := []gridCell{start}

	var goalPath []gridCell
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == goal {
			goalPath = visited[cur]
			break
		}

		candidates := lo.Map(deltas, func(d gridCell, _ int) gridCell {
			return gridCell{X: cur.X + d.X, Y: cur.Y + d.Y, Z: cur.Z + d.Z}
		})
		reachable := lo.Filter(candidates, func(next gridCell, _ int) bool {
			if _, seen := visited[next]; seen || !inBounds(next) || !clear(next) {
				return false
			}
			return losClear(s, poseAt(cur), poseAt(next), cfg.LosStep)
		})
		for _, next := range reachable {
			path := append(append([]gridCell{}, visited[cur]...), next)
			visited[next] = path
			queue = append(queue, next)
		}
	}

	if goalPath == nil {
		return Path[assembly.SixAxis]{Status: UnreachableEnd}
	}

	nodes := make([]assembly.SixAxis, len(goalPath))
	for i, c := range goalPath {
		nodes[i] = poseAt(c)
	}
	return Path[assembly.SixAxis]{Nodes: nodes, Status: Reached}
}

func clampCellToBounds(c gridCell, cfg StageResolverConfig, step float64) gridCell {
	nx := int(math.Round((cfg.SampleMax.X - cfg.SampleMin.X) / step))
	ny := int(math.Round((cfg.SampleMax.Y - cfg.SampleMin.Y) / step))
	nz := int(math.Round((cfg.SampleMax.Z - cfg.SampleMin.Z) / step))
	clampInt := func(v, lo, hi int) int {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	return gridCell{X: clampInt(c.X, 0, nx), Y: clampInt(c.Y, 0, ny), Z: clampInt(c.Z, 0, nz)}
}

// clearWithMargin approximates sampleEpsilon's wall dilation by additionally
// testing the pose offset by epsilon along each world axis, rather than
// growing the chamber geometry itself.
func clearWithMargin(s stepper[assembly.SixAxis], pose assembly.SixAxis, epsilon float64) bool {
	if s.collides(pose) {
		return false
	}
	if epsilon <= 0 {
		return true
	}
	offsets := [6]spatialmath.Vector3{
		spatialmath.NewVector3(epsilon, 0, 0), spatialmath.NewVector3(-epsilon, 0, 0),
		spatialmath.NewVector3(0, epsilon, 0), spatialmath.NewVector3(0, -epsilon, 0),
		spatialmath.NewVector3(0, 0, epsilon), spatialmath.NewVector3(0, 0, -epsilon),
	}
	for _, o := range offsets {
		p := pose
		p.X += o.X
		p.Y += o.Y
		p.Z += o.Z
		if s.collides(p) {
			return false
		}
	}
	return true
}

// losClear samples the straight segment between a and b at spacing losStep
// (falling back to defaultLosStep if unset), lerping translation and
// slerping rotation, and requires every sample to be collision-free.
func losClear(s stepper[assembly.SixAxis], a, b assembly.SixAxis, losStep float64) bool {
	if losStep <= 0 {
		losStep = defaultLosStep
		losStepWarnOnce.Do(func() {
			logging.Warnf("resolver: losStep unset, falling back to %g", defaultLosStep)
		})
	}
	dist := spatialmath.NewVector3(a.X, a.Y, a.Z).Distance(spatialmath.NewVector3(b.X, b.Y, b.Z))
	if dist == 0 {
		return true
	}
	steps := int(math.Ceil(dist / losStep))
	if steps < 1 {
		steps = 1
	}
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		if s.collides(lerpSixAxis(a, b, t)) {
			return false
		}
	}
	return true
}

func lerpSixAxis(a, b assembly.SixAxis, t float64) assembly.SixAxis {
	pa := spatialmath.NewVector3(a.X, a.Y, a.Z)
	pb := spatialmath.NewVector3(b.X, b.Y, b.Z)
	p := pa.Lerp(pb, t)

	ra := spatialmath.QuaternionFromEuler(a.RX, a.RY, a.RZ)
	rb := spatialmath.QuaternionFromEuler(b.RX, b.RY, b.RZ)
	rx, ry, rz := ra.Slerp(rb, t).ToEuler()

	return assembly.SixAxis{X: p.X, Y: p.Y, Z: p.Z, RX: rx, RY: ry, RZ: rz}
}

// descendToward is phase 2: move from's translation toward cfg.DownPoint in
// steps of cfg.DownStep's translation magnitude, scaled by MoveSpeed, while
// holding rotation fixed.
func descendToward(s stepper[assembly.SixAxis], from assembly.SixAxis, cfg StageResolverConfig) Path[assembly.SixAxis] {
	speed := cfg.MoveSpeed
	if speed <= 0 {
		speed = 1
	}
	stepMag := spatialmath.NewVector3(cfg.DownStep.X, cfg.DownStep.Y, cfg.DownStep.Z).Length() * speed
	if stepMag <= 0 {
		return Path[assembly.SixAxis]{Status: Reached}
	}

	var nodes []assembly.SixAxis
	current := from
	for i := 0; i < descentMaxSteps; i++ {
		pos := spatialmath.NewVector3(current.X, current.Y, current.Z)
		remaining := cfg.DownPoint.Sub(pos)
		dist := remaining.Length()

		var next assembly.SixAxis
		final := dist <= stepMag
		if final {
			next = assembly.SixAxis{X: cfg.DownPoint.X, Y: cfg.DownPoint.Y, Z: cfg.DownPoint.Z, RX: current.RX, RY: current.RY, RZ: current.RZ}
		} else {
			dir := remaining.Scale(1 / dist)
			nextPos := pos.Add(dir.Scale(stepMag))
			next = assembly.SixAxis{X: nextPos.X, Y: nextPos.Y, Z: nextPos.Z, RX: current.RX, RY: current.RY, RZ: current.RZ}
		}

		if s.collides(next) {
			return Path[assembly.SixAxis]{Nodes: nodes, Status: UnreachableEnd}
		}
		nodes = append(nodes, next)
		current = next
		if final {
			return Path[assembly.SixAxis]{Nodes: nodes, Status: Reached}
		}
	}
	return Path[assembly.SixAxis]{Nodes: nodes, Status: UnreachableEnd}
}

// rotateFind is phase 3: with translation held at from's position, sweep
// every combination of rotation steps (bounded at one full turn per axis)
// and accept the first one that is both collision-free and has a
// losStep-sampled clear segment straight to target.
func rotateFind(s stepper[assembly.SixAxis], from, target assembly.SixAxis, cfg StageResolverConfig) Path[assembly.SixAxis] {
	step := cfg.DownStep
	stepsFor := func(delta float64) int {
		if delta <= 0 {
			return 1
		}
		n := int(math.Ceil(2 * math.Pi / delta))
		if n < 1 {
			n = 1
		}
		if n > rotateFindMaxStepsPerAxis {
			n = rotateFindMaxStepsPerAxis
		}
		return n
	}
	nx, ny, nz := stepsFor(step.RX), stepsFor(step.RY), stepsFor(step.RZ)

	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			for iz := 0; iz < nz; iz++ {
				candidate := assembly.SixAxis{
					X: from.X, Y: from.Y, Z: from.Z,
					RX: from.RX + float64(ix)*step.RX,
					RY: from.RY + float64(iy)*step.RY,
					RZ: from.RZ + float64(iz)*step.RZ,
				}
				if s.collides(candidate) {
					continue
				}
				if !losClear(s, candidate, target, cfg.LosStep) {
					continue
				}
				return Path[assembly.SixAxis]{Nodes: []assembly.SixAxis{candidate, target}, Status: Reached}
			}
		}
	}
	return Path[assembly.SixAxis]{Status: UnreachableEnd}
}

// shortcutSmooth greedily drops redundant intermediate poses: from each
// retained node it jumps as far ahead as it can while the straight segment
// (sampled at smoothingStep) stays collision-free, matching the
// motion-planner "smoothPath over checkPath" shortcutting technique.
func shortcutSmooth(s stepper[assembly.SixAxis], nodes []assembly.SixAxis, smoothingStep float64) []assembly.SixAxis {
	if len(nodes) < 3 {
		return nodes
	}

	out := []assembly.SixAxis{nodes[0]}
	i := 0
	for i < len(nodes)-1 {
		j := len(nodes) - 1
		for j > i+1 && !losClear(s, nodes[i], nodes[j], smoothingStep) {
			j--
		}
		out = append(out, nodes[j])
		i = j
	}
	return out
}
