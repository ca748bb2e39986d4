package vnode

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/gltf_scene_browser/host"
)

type Kind int

const (
	KindObject Kind = iota
	KindBone
	KindDummyRoot
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "Object"
	case KindBone:
		return "Bone"
	case KindDummyRoot:
		return "DummyRoot"
	}
	return "Unknown"
}

type ID int32

const (
	// Root is the identifier of the synthetic node every scene root hangs from.
	Root ID = -1
	// None marks an absent parent or armature reference.
	None ID = -2
)

// VNode is one entry of the virtual node graph. Identifiers below
// len(document.Nodes) correspond to glTF node indices; identifiers at or
// above it belong to synthetic bones created by joint/mesh splits.
type VNode struct {
	ID   ID
	Name string
	Kind Kind

	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3

	Parent   ID
	Children []ID

	// BoneArma points at the armature object owning this bone. Valid only
	// when Kind == KindBone.
	BoneArma ID

	// HasArmature is set on objects that own at least one skin's bones.
	HasArmature bool

	Mesh   *uint32
	Camera *uint32
	Skin   *uint32

	// Filled during materialization, nil before.
	HostObject host.Object
	HostBone   host.Bone
}

func (vn *VNode) LocalMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(vn.Translation[0], vn.Translation[1], vn.Translation[2]).
		Mul4(vn.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(vn.Scale[0], vn.Scale[1], vn.Scale[2]))
}

type Graph struct {
	Nodes map[ID]*VNode

	// Joints maps a glTF node index referenced as a skin joint to the vnode
	// actually carrying the skinning relationship. Differs from the node's
	// own identifier after a joint/mesh split.
	Joints map[uint32]ID

	// Armatures maps a skin index to its resolved armature object.
	Armatures map[uint32]ID

	// jointSkin remembers which skin first claimed a joint vnode.
	jointSkin map[ID]uint32
	// shells marks split objects so skeleton walks can pass through them.
	shells map[ID]bool

	nextSynthetic ID
}

func (g *Graph) Get(id ID) *VNode {
	return g.Nodes[id]
}

func (g *Graph) Root() *VNode {
	return g.Nodes[Root]
}

func (g *Graph) allocSynthetic() ID {
	id := g.nextSynthetic
	g.nextSynthetic++
	return id
}
