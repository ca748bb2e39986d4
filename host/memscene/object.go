package memscene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/gltf_scene_browser/host"
)

type Object struct {
	name string
	seq  int

	translation mgl32.Vec3
	rotation    mgl32.Quat
	scale       mgl32.Vec3

	parent   *Object
	children []*Object

	Mesh     *MeshData
	Camera   *CameraData
	Armature *ArmatureData

	Selected bool
}

func (o *Object) Name() string { return o.name }

// Seq is the creation sequence number, monotonically increasing per scene.
func (o *Object) Seq() int { return o.seq }

func (o *Object) Parent() *Object     { return o.parent }
func (o *Object) Children() []*Object { return o.children }

func (o *Object) SetParent(p host.Object) {
	if p == nil {
		o.parent = nil
		return
	}
	o.parent = p.(*Object)
	o.parent.children = append(o.parent.children, o)
}

func (o *Object) SetLocalTRS(t mgl32.Vec3, r mgl32.Quat, s mgl32.Vec3) {
	o.translation = t
	o.rotation = r
	o.scale = s
}

func (o *Object) Translation() mgl32.Vec3 { return o.translation }
func (o *Object) Rotation() mgl32.Quat    { return o.rotation }
func (o *Object) Scale() mgl32.Vec3       { return o.scale }

func (o *Object) SetTranslation(t mgl32.Vec3) { o.translation = t }

func (o *Object) LocalMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(o.translation[0], o.translation[1], o.translation[2]).
		Mul4(o.rotation.Mat4()).
		Mul4(mgl32.Scale3D(o.scale[0], o.scale[1], o.scale[2]))
}

func (o *Object) WorldMatrix() mgl32.Mat4 {
	m := o.LocalMatrix()
	for p := o.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

func (o *Object) AttachMesh(m host.MeshData) {
	o.Mesh = m.(*MeshData)
}

func (o *Object) AttachCamera(c host.CameraData) {
	o.Camera = c.(*CameraData)
}

func (o *Object) AttachArmature(a host.ArmatureData) {
	o.Armature = a.(*ArmatureData)
}

func (o *Object) Select(state bool) {
	o.Selected = state
}

// DetachMesh drops the mesh reference, turning the object into an empty.
func (o *Object) DetachMesh() {
	o.Mesh = nil
}

type MeshData struct {
	name     string
	Vertices []mgl32.Vec3
}

func (m *MeshData) Name() string { return m.name }

func (m *MeshData) Transform(mat mgl32.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i] = mat.Mul4x1(v.Vec4(1)).Vec3()
	}
}

// Centroid is the average of the mesh vertices, the zero vector for empty
// meshes.
func (m *MeshData) Centroid() mgl32.Vec3 {
	if len(m.Vertices) == 0 {
		return mgl32.Vec3{}
	}
	var sum mgl32.Vec3
	for _, v := range m.Vertices {
		sum = sum.Add(v)
	}
	return sum.Mul(1 / float32(len(m.Vertices)))
}

type CameraData struct {
	name string
}

func (c *CameraData) Name() string { return c.name }
