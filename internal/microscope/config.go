package microscope

import (
	"github.com/Jinderamarak/safe-stage/internal/assembly"
	"github.com/Jinderamarak/safe-stage/internal/geometry"
	"github.com/Jinderamarak/safe-stage/internal/spatialmath"
)

// MeshConfig carries triangles verbatim: no welding, no orientation
// fix-up. Binary STL parsing itself is an external collaborator; this
// struct is the in-scope surface such a loader would populate.
type MeshConfig struct {
	Triangles [][3][3]float64 `json:"triangles"`
}

func (m MeshConfig) toMesh() *geometry.TriangleMesh {
	tris := make([]geometry.Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		tris[i] = geometry.NewTriangle(
			spatialmath.NewVector3(t[0][0], t[0][1], t[0][2]),
			spatialmath.NewVector3(t[1][0], t[1][1], t[1][2]),
			spatialmath.NewVector3(t[2][0], t[2][1], t[2][2]),
		)
	}
	return geometry.NewTriangleMesh(tris)
}

// TransformConfig is the wire form of a rigid transform: translation plus
// fixed-XYZ-extrinsic Euler angles.
type TransformConfig struct {
	Translation [3]float64 `json:"translation"`
	RotationXYZ [3]float64 `json:"rotationXyz"`
}

func (t TransformConfig) toTransform() spatialmath.Transform {
	return spatialmath.NewTransform(
		spatialmath.NewVector3(t.Translation[0], t.Translation[1], t.Translation[2]),
		spatialmath.QuaternionFromEuler(t.RotationXYZ[0], t.RotationXYZ[1], t.RotationXYZ[2]),
	)
}

// SixAxisConfig is the wire form of assembly.SixAxis.
type SixAxisConfig struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
	RX float64 `json:"rx"`
	RY float64 `json:"ry"`
	RZ float64 `json:"rz"`
}

func (s SixAxisConfig) toSixAxis() (assembly.SixAxis, error) {
	return assembly.NewSixAxis(s.X, s.Y, s.Z, s.RX, s.RY, s.RZ)
}

func fromSixAxis(s assembly.SixAxis) SixAxisConfig {
	return SixAxisConfig{X: s.X, Y: s.Y, Z: s.Z, RX: s.RX, RY: s.RY, RZ: s.RZ}
}

// ObstructionClass is the wire form of assembly.ObstructionClass.
type ObstructionClass string

const (
	NonObstructive  ObstructionClass = "non-obstructive"
	LessObstructive ObstructionClass = "less-obstructive"
	Full            ObstructionClass = "full"
)

func (c ObstructionClass) toAssemblyClass() assembly.ObstructionClass {
	switch c {
	case LessObstructive:
		return assembly.LessObstructive
	case Full:
		return assembly.Full
	default:
		return assembly.NonObstructive
	}
}

// ChamberConfig is the static chamber's geometry.
type ChamberConfig struct {
	Mesh MeshConfig `json:"mesh"`
}

// StageConfig is the stage's geometry, placed at the chamber frame's origin.
type StageConfig struct {
	Mesh MeshConfig `json:"mesh"`
}

// HolderConfig is the optional specimen holder attached to the stage.
type HolderConfig struct {
	Mesh  MeshConfig      `json:"mesh"`
	Local TransformConfig `json:"local"`
}

// EquipmentConfig is one static part attached directly to the chamber.
type EquipmentConfig struct {
	Name  string           `json:"name"`
	Mesh  MeshConfig       `json:"mesh"`
	Local TransformConfig  `json:"local"`
	Class ObstructionClass `json:"class,omitempty"`
}

// RetractConfig is one one-DOF device attached directly to the chamber,
// interpolating between a retracted and an inserted pose.
type RetractConfig struct {
	Name      string           `json:"name"`
	Mesh      MeshConfig       `json:"mesh"`
	Retracted TransformConfig  `json:"retracted"`
	Inserted  TransformConfig  `json:"inserted"`
	Class     ObstructionClass `json:"class,omitempty"`
}

// ResolverStageConfig is the wire form of resolver.StageResolverConfig.
type ResolverStageConfig struct {
	SampleMin            [3]float64    `json:"sampleMin"`
	SampleMax            [3]float64    `json:"sampleMax"`
	SampleStep           float64       `json:"sampleStep"`
	SampleEpsilon        float64       `json:"sampleEpsilon"`
	DownPoint            [3]float64    `json:"downPoint"`
	DownStep             SixAxisConfig `json:"downStep"`
	MoveSpeed            float64       `json:"moveSpeed"`
	LosStep              float64       `json:"losStep"`
	SmoothingStep        float64       `json:"smoothingStep"`
}

// ResolverRetractConfig is the wire form of the linear resolver's tuning.
type ResolverRetractConfig struct {
	Step float64 `json:"step"`
}

// HeightMapConfig is the wire form of assembly.HeightMap.
type HeightMapConfig struct {
	Heights []float64 `json:"heights"`
	Nx      int       `json:"nx"`
	Ny      int       `json:"ny"`
	RealX   float64   `json:"realX"`
	RealY   float64   `json:"realY"`
}

func (h HeightMapConfig) toHeightMap() (*assembly.HeightMap, error) {
	return assembly.NewHeightMap(h.Heights, h.Nx, h.Ny, h.RealX, h.RealY)
}
