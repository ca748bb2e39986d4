package vnode_test

import (
	"errors"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogaika/gltf_scene_browser/vnode"
)

func TestComputeSimpleScene(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Name: "House", Mesh: gltf.Index(0)},
			{Name: "Camera", Camera: gltf.Index(0)},
		},
		Scenes: []*gltf.Scene{{Nodes: []uint32{0, 1}}},
		Scene:  gltf.Index(0),
	}

	g, err := vnode.Compute(doc)
	require.NoError(t, err)

	require.Len(t, g.Nodes, 3)
	root := g.Root()
	require.NotNil(t, root)
	assert.Equal(t, vnode.KindDummyRoot, root.Kind)
	assert.Equal(t, []vnode.ID{0, 1}, root.Children)

	for _, id := range root.Children {
		vn := g.Get(id)
		assert.Equal(t, vnode.KindObject, vn.Kind)
		assert.Equal(t, vnode.Root, vn.Parent)
	}
}

func TestComputeMappingSize(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Children: []uint32{1, 2}},
			{},
			{Children: []uint32{3}},
			{},
			{},
		},
	}

	g, err := vnode.Compute(doc)
	require.NoError(t, err)
	assert.Len(t, g.Nodes, len(doc.Nodes)+1)
}

func TestComputeParentChainsReachRoot(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Children: []uint32{1}},
			{Children: []uint32{2}},
			{Children: []uint32{3}},
			{},
			{},
		},
	}

	g, err := vnode.Compute(doc)
	require.NoError(t, err)

	for id, vn := range g.Nodes {
		steps := 0
		for vn.Parent != vnode.None {
			vn = g.Get(vn.Parent)
			require.NotNil(t, vn, "node %v has a dangling parent", id)
			steps++
			require.LessOrEqual(t, steps, len(g.Nodes), "node %v never reaches the root", id)
		}
		assert.Equal(t, vnode.KindDummyRoot, vn.Kind)
	}
}

func TestComputeChildOrderPreserved(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Children: []uint32{3, 1, 2}},
			{},
			{},
			{},
		},
	}

	g, err := vnode.Compute(doc)
	require.NoError(t, err)
	assert.Equal(t, []vnode.ID{3, 1, 2}, g.Get(0).Children)
}

func TestComputeBidirectionalIntegrity(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Children: []uint32{1, 2}},
			{Children: []uint32{3}},
			{},
			{},
		},
	}

	g, err := vnode.Compute(doc)
	require.NoError(t, err)

	for id, vn := range g.Nodes {
		for _, cid := range vn.Children {
			assert.Equal(t, id, g.Get(cid).Parent)
		}
		if vn.Parent != vnode.None {
			assert.Contains(t, g.Get(vn.Parent).Children, id)
		}
	}
}

func TestComputeCycleSelf(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Children: []uint32{0}},
		},
	}

	_, err := vnode.Compute(doc)
	var gce vnode.GraphCycleError
	require.True(t, errors.As(err, &gce), "got %v", err)
}

func TestComputeCycleTransitive(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Children: []uint32{1}},
			{Children: []uint32{2}},
			{Children: []uint32{0}},
		},
	}

	_, err := vnode.Compute(doc)
	var gce vnode.GraphCycleError
	require.True(t, errors.As(err, &gce), "got %v", err)
}

func TestComputeMultiParentRejected(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Children: []uint32{2}},
			{Children: []uint32{2}},
			{},
		},
	}

	_, err := vnode.Compute(doc)
	var ide vnode.InvalidDocumentError
	require.True(t, errors.As(err, &ide), "got %v", err)
}

func TestComputeChildOutOfRange(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Children: []uint32{7}},
		},
	}

	_, err := vnode.Compute(doc)
	var ide vnode.InvalidDocumentError
	require.True(t, errors.As(err, &ide), "got %v", err)
}

func TestComputeSkinBones(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Name: "Character", Children: []uint32{1}},
			{Name: "Hip", Children: []uint32{2}},
			{Name: "Spine"},
		},
		Skins: []*gltf.Skin{
			{Joints: []uint32{1, 2}},
		},
	}

	g, err := vnode.Compute(doc)
	require.NoError(t, err)

	assert.Equal(t, vnode.KindObject, g.Get(0).Kind)
	assert.True(t, g.Get(0).HasArmature)

	for _, id := range []vnode.ID{1, 2} {
		vn := g.Get(id)
		assert.Equal(t, vnode.KindBone, vn.Kind)
		assert.Equal(t, vnode.ID(0), vn.BoneArma)
	}
	assert.Equal(t, vnode.ID(0), g.Armatures[0])
}

func TestComputeMeshJointSplit(t *testing.T) {
	// node 1 is both a skin joint and a mesh carrier
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Name: "Rig", Children: []uint32{1}},
			{Name: "Chest", Mesh: gltf.Index(0), Children: []uint32{2}},
			{Name: "Arm"},
		},
		Skins: []*gltf.Skin{
			{Joints: []uint32{1, 2}},
		},
	}

	g, err := vnode.Compute(doc)
	require.NoError(t, err)

	// root + 3 nodes + 1 synthetic bone
	require.Len(t, g.Nodes, 5)

	shell := g.Get(1)
	assert.Equal(t, vnode.KindObject, shell.Kind)
	assert.NotNil(t, shell.Mesh)

	boneID := g.Joints[1]
	require.NotEqual(t, vnode.ID(1), boneID)
	bone := g.Get(boneID)
	require.NotNil(t, bone)
	assert.Equal(t, vnode.KindBone, bone.Kind)
	assert.Equal(t, shell.ID, bone.Parent)
	assert.Contains(t, shell.Children, boneID)

	// the same-skin child bone follows the synthetic bone
	assert.Equal(t, boneID, g.Get(2).Parent)
	assert.Contains(t, bone.Children, vnode.ID(2))
}

func TestComputeMeshJointSplitAtSceneRoot(t *testing.T) {
	// the whole skeleton hangs from a mesh-bearing joint at the scene root;
	// the split shell becomes the armature
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Name: "RootJoint", Mesh: gltf.Index(0), Children: []uint32{1}},
			{Name: "Child"},
		},
		Skins: []*gltf.Skin{
			{Joints: []uint32{0, 1}},
		},
	}

	g, err := vnode.Compute(doc)
	require.NoError(t, err)

	shell := g.Get(0)
	assert.Equal(t, vnode.KindObject, shell.Kind)
	assert.True(t, shell.HasArmature)
	assert.Equal(t, vnode.ID(0), g.Armatures[0])

	bone := g.Get(g.Joints[0])
	assert.Equal(t, vnode.KindBone, bone.Kind)
	assert.Equal(t, vnode.ID(0), bone.BoneArma)
}

func TestComputeSharedJointFirstSkinWins(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Name: "A", Children: []uint32{2}},
			{Name: "B", Children: []uint32{3}},
			{Name: "Shared"},
			{Name: "Other"},
		},
		Skins: []*gltf.Skin{
			{Joints: []uint32{2}},
			{Joints: []uint32{2}},
		},
	}

	g, err := vnode.Compute(doc)
	require.NoError(t, err)

	shared := g.Get(2)
	assert.Equal(t, vnode.KindBone, shared.Kind)
	assert.Equal(t, vnode.ID(0), shared.BoneArma, "first declared skin keeps the joint")
	assert.Equal(t, vnode.ID(0), g.Armatures[0])
	assert.Equal(t, vnode.ID(0), g.Armatures[1])
}

func TestComputeUnresolvedSkeleton(t *testing.T) {
	// the joint is a scene root with no object ancestor and no split shell
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Name: "LoneJoint"},
		},
		Skins: []*gltf.Skin{
			{Joints: []uint32{0}},
		},
	}

	_, err := vnode.Compute(doc)
	var use vnode.UnresolvedSkeletonError
	require.True(t, errors.As(err, &use), "got %v", err)
}

func TestComputeJointOutOfRange(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{{}},
		Skins: []*gltf.Skin{
			{Joints: []uint32{5}},
		},
	}

	_, err := vnode.Compute(doc)
	var ide vnode.InvalidDocumentError
	require.True(t, errors.As(err, &ide), "got %v", err)
}

func TestComputeEmptyDocument(t *testing.T) {
	g, err := vnode.Compute(&gltf.Document{})
	require.NoError(t, err)
	require.Len(t, g.Nodes, 1)
	assert.Empty(t, g.Root().Children)
}
