package imp

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/mogaika/gltf_scene_browser/host"
	"github.com/mogaika/gltf_scene_browser/vnode"
)

// createVNode materializes one vnode and recurses into its children.
// Pre-order traversal guarantees a parent's host entity exists before any of
// its children are created, which both object parenting and bone creation
// rely on.
func createVNode(ctx *Context, id vnode.ID) {
	vn := ctx.Graph.Get(id)
	ctx.DisplayCurrentNode++

	switch vn.Kind {
	case vnode.KindObject:
		createObject(ctx, vn)
	case vnode.KindBone:
		createBone(ctx, vn)
	case vnode.KindDummyRoot:
		// no host entity, children become scene roots
	}

	if vn.Kind != vnode.KindDummyRoot {
		for _, e := range ctx.Extensions {
			e.AfterNodeCreate(ctx, id)
		}
	}

	for _, cid := range vn.Children {
		createVNode(ctx, cid)
	}
}

func createObject(ctx *Context, vn *vnode.VNode) {
	obj := ctx.Scene.NewObject(ctx.entityName(vn.Name))
	vn.HostObject = obj

	if vn.Mesh != nil {
		if m := ctx.meshData(*vn.Mesh); m != nil {
			obj.AttachMesh(m)
		}
	}
	if vn.Camera != nil {
		if c := ctx.cameraData(*vn.Camera); c != nil {
			obj.AttachCamera(c)
		}
	}
	if vn.HasArmature {
		arma := ctx.Scene.NewArmatureData(obj.Name())
		obj.AttachArmature(arma)
		ctx.armatures[vn.ID] = arma
	}

	obj.SetLocalTRS(vn.Translation, vn.Rotation, vn.Scale)
	ctx.Scene.Link(obj)

	switch parent := ctx.Graph.Get(vn.Parent); parent.Kind {
	case vnode.KindObject:
		obj.SetParent(parent.HostObject)
	case vnode.KindBone:
		// the host cannot parent objects to bones, the owning armature
		// object is the closest thing
		obj.SetParent(ctx.Graph.Get(parent.BoneArma).HostObject)
	}
}

func createBone(ctx *Context, vn *vnode.VNode) {
	arma := ctx.armatures[vn.BoneArma]
	if arma == nil {
		log.Printf("[imp] No armature materialized for bone %v (arma %v)", vn.ID, vn.BoneArma)
		return
	}

	var parentBone host.Bone
	if parent := ctx.Graph.Get(vn.Parent); parent.Kind == vnode.KindBone {
		parentBone = parent.HostBone
	}

	b := arma.NewBone(ctx.entityName(vn.Name), parentBone)
	b.SetRest(vn.Translation, vn.Rotation, vn.Scale)
	if ib, ok := ctx.inverseBinds[vn.ID]; ok {
		b.SetInverseBind(ib)
	}
	vn.HostBone = b
}

// meshData loads the vertex positions of a glTF mesh once and shares the
// host mesh data between instances. Unreadable meshes degrade to empty mesh
// data instead of failing the import.
func (ctx *Context) meshData(index uint32) host.MeshData {
	if m, ok := ctx.meshes[index]; ok {
		return m
	}
	if int(index) >= len(ctx.Document.Meshes) {
		log.Printf("[imp] Mesh index %v out of range", index)
		return nil
	}

	mesh := ctx.Document.Meshes[index]
	m := ctx.Scene.NewMeshData(ctx.entityName(mesh.Name), ctx.meshPositions(index))
	ctx.meshes[index] = m
	return m
}

func (ctx *Context) meshPositions(index uint32) []mgl32.Vec3 {
	mesh := ctx.Document.Meshes[index]
	vertices := make([]mgl32.Vec3, 0)
	for _, prim := range mesh.Primitives {
		ai, ok := prim.Attributes[gltf.POSITION]
		if !ok || int(ai) >= len(ctx.Document.Accessors) {
			continue
		}
		positions, err := modeler.ReadPosition(ctx.Document, ctx.Document.Accessors[ai], nil)
		if err != nil {
			log.Printf("[imp] Failed to read positions of mesh %v: %v", index, err)
			continue
		}
		for _, p := range positions {
			vertices = append(vertices, mgl32.Vec3(p))
		}
	}
	return vertices
}

func (ctx *Context) cameraData(index uint32) host.CameraData {
	if c, ok := ctx.cameras[index]; ok {
		return c
	}
	if int(index) >= len(ctx.Document.Cameras) {
		log.Printf("[imp] Camera index %v out of range", index)
		return nil
	}

	c := ctx.Scene.NewCameraData(ctx.entityName(ctx.Document.Cameras[index].Name))
	ctx.cameras[index] = c
	return c
}

// loadInverseBinds reads every skin's inverse bind matrices so bones can
// carry them. Missing or unreadable accessors are not fatal, the bones just
// keep identity.
func (ctx *Context) loadInverseBinds() {
	for si, skin := range ctx.Document.Skins {
		if skin.InverseBindMatrices == nil {
			continue
		}
		ai := *skin.InverseBindMatrices
		if int(ai) >= len(ctx.Document.Accessors) {
			continue
		}

		data, err := modeler.ReadAccessor(ctx.Document, ctx.Document.Accessors[ai], nil)
		if err != nil {
			log.Printf("[imp] Failed to read inverse bind matrices of skin %v: %v", si, err)
			continue
		}
		mats, ok := data.([][4][4]float32)
		if !ok {
			log.Printf("[imp] Unexpected inverse bind accessor layout for skin %v", si)
			continue
		}

		for j, ji := range skin.Joints {
			if j >= len(mats) {
				break
			}
			if id, ok := ctx.Graph.Joints[ji]; ok {
				ctx.inverseBinds[id] = mat4FromColumns(mats[j])
			}
		}
	}
}

func mat4FromColumns(m [4][4]float32) mgl32.Mat4 {
	var out mgl32.Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[c*4+r] = m[c][r]
		}
	}
	return out
}
