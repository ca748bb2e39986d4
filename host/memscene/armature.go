package memscene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/gltf_scene_browser/host"
)

type ArmatureData struct {
	name  string
	Bones []*Bone
}

func (a *ArmatureData) Name() string { return a.name }

func (a *ArmatureData) NewBone(name string, parent host.Bone) host.Bone {
	b := &Bone{
		name:     name,
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
	}
	if parent != nil {
		b.parent = parent.(*Bone)
		b.parent.children = append(b.parent.children, b)
	}
	a.Bones = append(a.Bones, b)
	return b
}

// FindBone returns the first bone with the given name, nil when absent.
func (a *ArmatureData) FindBone(name string) *Bone {
	for _, b := range a.Bones {
		if b.name == name {
			return b
		}
	}
	return nil
}

type Bone struct {
	name string

	translation mgl32.Vec3
	rotation    mgl32.Quat
	scale       mgl32.Vec3

	InverseBind mgl32.Mat4

	parent   *Bone
	children []*Bone
}

func (b *Bone) Name() string      { return b.name }
func (b *Bone) Parent() *Bone     { return b.parent }
func (b *Bone) Children() []*Bone { return b.children }

func (b *Bone) SetRest(t mgl32.Vec3, r mgl32.Quat, s mgl32.Vec3) {
	b.translation = t
	b.rotation = r
	b.scale = s
}

func (b *Bone) SetInverseBind(m mgl32.Mat4) {
	b.InverseBind = m
}

func (b *Bone) RestMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(b.translation[0], b.translation[1], b.translation[2]).
		Mul4(b.rotation.Mat4()).
		Mul4(mgl32.Scale3D(b.scale[0], b.scale[1], b.scale[2]))
}
