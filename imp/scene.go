package imp

import (
	"github.com/mogaika/gltf_scene_browser/status"
	"github.com/mogaika/gltf_scene_browser/vnode"
)

// CreateScene runs the full import into ctx.Scene. Graph construction errors
// abort immediately with nothing materialized; later failures leave already
// created entities in place (no rollback).
func CreateScene(ctx *Context) error {
	for _, e := range ctx.Extensions {
		e.BeforeSceneCreate(ctx)
	}

	status.Info("Building virtual node graph (%v nodes)", len(ctx.Document.Nodes))
	g, err := vnode.Compute(ctx.Document)
	if err != nil {
		return err
	}
	ctx.Graph = g

	ctx.loadInverseBinds()

	status.Info("Materializing %v nodes", len(g.Nodes)-1)
	createVNode(ctx, vnode.Root)

	if err := createAnimations(ctx); err != nil {
		return err
	}

	finalizeScene(ctx)
	status.Info("Import finished: %v objects, %v animations",
		len(ctx.Document.Nodes), len(ctx.Document.Animations))
	return nil
}

// finalizeScene selects every imported object and resolves the active one:
// first root of the default scene, else first root of the first scene, else
// the first dummy root child. A bone resolves to its owning armature object
// since bones are not independently selectable.
func finalizeScene(ctx *Context) {
	ctx.Scene.DeselectAll()
	for _, vn := range ctx.Graph.Nodes {
		if vn.Kind == vnode.KindObject && vn.HostObject != nil {
			vn.HostObject.Select(true)
		}
	}

	if vn := resolveActiveVNode(ctx); vn != nil && vn.HostObject != nil {
		ctx.Scene.SetActive(vn.HostObject)
	}
}

func resolveActiveVNode(ctx *Context) *vnode.VNode {
	doc := ctx.Document

	var vn *vnode.VNode
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		if scene := doc.Scenes[*doc.Scene]; len(scene.Nodes) > 0 {
			vn = ctx.Graph.Get(vnode.ID(scene.Nodes[0]))
		}
	}

	if vn == nil {
		for _, scene := range doc.Scenes {
			if len(scene.Nodes) > 0 {
				vn = ctx.Graph.Get(vnode.ID(scene.Nodes[0]))
				break
			}
		}
	}

	if vn == nil {
		root := ctx.Graph.Root()
		if len(root.Children) == 0 {
			return nil // empty document, no active object
		}
		vn = ctx.Graph.Get(root.Children[0])
	}

	if vn != nil && vn.Kind == vnode.KindBone {
		vn = ctx.Graph.Get(vn.BoneArma)
	}
	return vn
}
