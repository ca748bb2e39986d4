// Package host is the editor SDK surface the importer writes into. Only the
// operations the import pipeline needs are part of the contract; everything
// here is strictly additive to the scene.
package host

import "github.com/go-gl/mathgl/mgl32"

type TRSPath string

const (
	PathTranslation TRSPath = "translation"
	PathRotation    TRSPath = "rotation"
	PathScale       TRSPath = "scale"
	PathWeights     TRSPath = "weights"
)

type Scene interface {
	NewObject(name string) Object
	NewMeshData(name string, vertices []mgl32.Vec3) MeshData
	NewCameraData(name string) CameraData
	NewArmatureData(name string) ArmatureData

	// Link adds the object to the scene collection.
	Link(o Object)

	// PushTrack creates an animation track stacked on top of every track
	// created before it and makes it the active one.
	PushTrack(name string) Track
	// ActivateTrack selects a track by name. Reports whether it was found.
	ActivateTrack(name string) bool

	DeselectAll()
	SetActive(o Object)
}

type Object interface {
	Name() string
	SetParent(p Object)
	SetLocalTRS(t mgl32.Vec3, r mgl32.Quat, s mgl32.Vec3)
	AttachMesh(m MeshData)
	AttachCamera(c CameraData)
	AttachArmature(a ArmatureData)
	Select(state bool)
}

type MeshData interface {
	Name() string
	// Transform bakes the matrix into the mesh vertices.
	Transform(m mgl32.Mat4)
}

type CameraData interface {
	Name() string
}

type ArmatureData interface {
	Name() string
	// NewBone creates a bone parented to parent, or a root bone when parent
	// is nil. The owning armature object must already exist.
	NewBone(name string, parent Bone) Bone
}

type Bone interface {
	Name() string
	SetRest(t mgl32.Vec3, r mgl32.Quat, s mgl32.Vec3)
	SetInverseBind(m mgl32.Mat4)
}

// Sampled is one keyframed curve as read from a glTF sampler. Exactly one of
// Vec3, Quat or Floats is set depending on the path.
type Sampled struct {
	Times         []float32
	Vec3          []mgl32.Vec3
	Quat          []mgl32.Quat
	Floats        []float32
	Interpolation int
}

type Track interface {
	Name() string
	AddObjectCurve(o Object, path TRSPath, s Sampled)
	AddBoneCurve(b Bone, path TRSPath, s Sampled)
}
