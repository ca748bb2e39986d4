// Package vnode converts the flat glTF node array into a hierarchical graph
// of typed virtual nodes. The graph is the single source of truth for the
// rest of the import: materialization, animation layering and finalization
// all consume it and never look at raw node indices again.
package vnode

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// Compute builds the virtual node graph for a parsed document.
//
// The result contains one vnode per glTF node plus the synthetic root, plus
// one synthetic bone per node that is referenced both as a skin joint and as
// a mesh/camera carrier. Construction order:
//
//	parents from children lists -> root attachment -> cycle check ->
//	joint marking -> joint/mesh splits -> armature resolution
//
// Any returned error means the document is unusable and nothing should be
// materialized from it.
func Compute(doc *gltf.Document) (*Graph, error) {
	g := &Graph{
		Nodes:         make(map[ID]*VNode, len(doc.Nodes)+1),
		Joints:        make(map[uint32]ID),
		Armatures:     make(map[uint32]ID),
		jointSkin:     make(map[ID]uint32),
		shells:        make(map[ID]bool),
		nextSynthetic: ID(len(doc.Nodes)),
	}

	g.Nodes[Root] = &VNode{
		ID:       Root,
		Name:     "root",
		Kind:     KindDummyRoot,
		Parent:   None,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		BoneArma: None,
	}

	for i, node := range doc.Nodes {
		t, r, s := nodeTRS(node)
		g.Nodes[ID(i)] = &VNode{
			ID:          ID(i),
			Name:        node.Name,
			Kind:        KindObject,
			Translation: t,
			Rotation:    r,
			Scale:       s,
			Parent:      None,
			BoneArma:    None,
			Mesh:        node.Mesh,
			Camera:      node.Camera,
			Skin:        node.Skin,
		}
	}

	if err := g.linkParents(doc); err != nil {
		return nil, err
	}
	g.attachRoots(doc)
	if err := g.checkCycles(); err != nil {
		return nil, err
	}
	if err := g.markJoints(doc); err != nil {
		return nil, err
	}
	g.splitMeshJoints(doc)
	if err := g.resolveArmatures(doc); err != nil {
		return nil, err
	}

	return g, nil
}

// linkParents copies children lists verbatim and derives the parent link of
// every node, rejecting out of range indices and multi-parented nodes.
func (g *Graph) linkParents(doc *gltf.Document) error {
	n := len(doc.Nodes)
	for i, node := range doc.Nodes {
		vn := g.Nodes[ID(i)]
		vn.Children = make([]ID, 0, len(node.Children))
		for _, ci := range node.Children {
			if int(ci) >= n {
				return invalidf("node %v references child %v out of range", i, ci)
			}
			child := g.Nodes[ID(ci)]
			if child.Parent != None {
				return invalidf("node %v has parents %v and %v", ci, child.Parent, i)
			}
			child.Parent = ID(i)
			vn.Children = append(vn.Children, ID(ci))
		}
	}
	return nil
}

// attachRoots hangs every parentless node from the dummy root: nodes listed
// by scenes first, in scene declaration order, then any leftovers in index
// order. Scene entries that are not actually roots are ignored.
func (g *Graph) attachRoots(doc *gltf.Document) {
	root := g.Nodes[Root]
	attached := make(map[ID]bool)

	attach := func(id ID) {
		vn := g.Nodes[id]
		if vn.Parent != None || attached[id] {
			return
		}
		attached[id] = true
		root.Children = append(root.Children, id)
	}

	for _, scene := range doc.Scenes {
		for _, ni := range scene.Nodes {
			if int(ni) < len(doc.Nodes) {
				attach(ID(ni))
			}
		}
	}
	for i := range doc.Nodes {
		attach(ID(i))
	}

	for _, id := range root.Children {
		g.Nodes[id].Parent = Root
	}
}

// checkCycles walks the tree from the root. Since parent links are unique, a
// node the walk never reaches can only hang off a parent/child cycle.
func (g *Graph) checkCycles() error {
	const (
		colorOpen = iota + 1
		colorClosed
	)
	color := make(map[ID]int, len(g.Nodes))

	var visit func(id ID) error
	visit = func(id ID) error {
		switch color[id] {
		case colorOpen:
			return GraphCycleError{Node: id}
		case colorClosed:
			return nil
		}
		color[id] = colorOpen
		for _, cid := range g.Nodes[id].Children {
			if err := visit(cid); err != nil {
				return err
			}
		}
		color[id] = colorClosed
		return nil
	}

	if err := visit(Root); err != nil {
		return err
	}

	for id := range g.Nodes {
		if color[id] != colorClosed {
			return GraphCycleError{Node: id}
		}
	}
	return nil
}

// markJoints flags every node referenced as a skin joint as a bone. A joint
// claimed by several skins stays with the skin declared first.
func (g *Graph) markJoints(doc *gltf.Document) error {
	for si, skin := range doc.Skins {
		for _, ji := range skin.Joints {
			if int(ji) >= len(doc.Nodes) {
				return invalidf("skin %v references joint %v out of range", si, ji)
			}
			id := ID(ji)
			if _, claimed := g.jointSkin[id]; claimed {
				continue
			}
			g.jointSkin[id] = uint32(si)
			g.Nodes[id].Kind = KindBone
			g.Joints[ji] = id
		}
	}
	return nil
}

// splitMeshJoints resolves the multi-parenting conflict of nodes used both
// as skin joints and as mesh or camera carriers. The original node stays an
// object shell keeping the mesh and transform; the skinning moves to a fresh
// bone child with identity transform. Same-skin bone children follow the new
// bone so bone chains stay connected.
func (g *Graph) splitMeshJoints(doc *gltf.Document) {
	for i := range doc.Nodes {
		vn := g.Nodes[ID(i)]
		if vn.Kind != KindBone || (vn.Mesh == nil && vn.Camera == nil) {
			continue
		}

		skin := g.jointSkin[vn.ID]
		bone := &VNode{
			ID:       g.allocSynthetic(),
			Name:     vn.Name,
			Kind:     KindBone,
			Parent:   vn.ID,
			Rotation: mgl32.QuatIdent(),
			Scale:    mgl32.Vec3{1, 1, 1},
			BoneArma: None,
		}
		g.Nodes[bone.ID] = bone

		kept := make([]ID, 0, len(vn.Children))
		for _, cid := range vn.Children {
			child := g.Nodes[cid]
			if child.Kind == KindBone && g.jointSkin[cid] == skin {
				child.Parent = bone.ID
				bone.Children = append(bone.Children, cid)
			} else {
				kept = append(kept, cid)
			}
		}
		vn.Children = append(kept, bone.ID)

		vn.Kind = KindObject
		g.shells[vn.ID] = true
		delete(g.jointSkin, vn.ID)
		g.jointSkin[bone.ID] = skin
		g.Joints[uint32(i)] = bone.ID
	}
}

// resolveArmatures finds each skin's owning armature object and stamps it
// onto the skin's bones. The walk starts at the skeleton hint when present,
// otherwise at the first joint, and climbs through bones and split shells
// until it hits an opaque object. A skeleton living directly under the dummy
// root can still resolve when the walk passed a split shell: the outermost
// shell becomes the armature. Every joint of the skin must then have the
// armature among its ancestors or the skeleton is unresolvable.
func (g *Graph) resolveArmatures(doc *gltf.Document) error {
	for si, skin := range doc.Skins {
		if len(skin.Joints) == 0 {
			continue
		}

		start := ID(skin.Joints[0])
		if skin.Skeleton != nil && int(*skin.Skeleton) < len(doc.Nodes) {
			start = ID(*skin.Skeleton)
		}
		if mapped, ok := g.Joints[uint32(start)]; ok {
			start = mapped
		}

		arma, ok := g.climbToArmature(start)
		if !ok {
			return UnresolvedSkeletonError{Skin: uint32(si), Joint: start}
		}

		for _, ji := range skin.Joints {
			boneID := g.Joints[ji]
			if boneID != arma && !g.hasAncestor(boneID, arma) {
				return UnresolvedSkeletonError{Skin: uint32(si), Joint: ID(ji)}
			}
			bone := g.Nodes[boneID]
			if bone.BoneArma == None {
				bone.BoneArma = arma
			}
		}

		g.Armatures[uint32(si)] = arma
		g.Nodes[arma].HasArmature = true
	}
	return nil
}

// climbToArmature walks parent links until it leaves the skeleton (bones and
// split shells are transparent). When the walk falls off the dummy root the
// outermost shell it passed, if any, is the armature. Cycle safety is
// already guaranteed by checkCycles, still the walk is bounded by the node
// count.
func (g *Graph) climbToArmature(from ID) (ID, bool) {
	lastShell := None
	cur := g.Nodes[from]
	for steps := 0; steps <= len(g.Nodes); steps++ {
		if g.shells[cur.ID] {
			lastShell = cur.ID
		} else if cur.Kind == KindObject {
			return cur.ID, true
		} else if cur.Kind == KindDummyRoot {
			break
		}
		if cur.Parent == None {
			break
		}
		cur = g.Nodes[cur.Parent]
	}
	if lastShell != None {
		return lastShell, true
	}
	return None, false
}

func (g *Graph) hasAncestor(from, target ID) bool {
	cur := g.Nodes[from]
	for steps := 0; steps <= len(g.Nodes); steps++ {
		if cur.Parent == None {
			return false
		}
		if cur.Parent == target {
			return true
		}
		cur = g.Nodes[cur.Parent]
	}
	return false
}
