// Package imp drives one glTF import: virtual node graph construction, node
// materialization into the host scene, NLA-style animation layering and
// scene finalization. All state for a run lives in a Context passed through
// every call; nothing is ambient and nothing survives the import except what
// was written into the host scene.
package imp

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"

	"github.com/mogaika/gltf_scene_browser/host"
	"github.com/mogaika/gltf_scene_browser/utils"
	"github.com/mogaika/gltf_scene_browser/vnode"
)

type DanglingPolicy int

const (
	// DanglingSkip drops a channel targeting a node absent from the graph
	// and keeps importing.
	DanglingSkip DanglingPolicy = iota
	// DanglingAbort fails the whole import on the first such channel.
	DanglingAbort
)

type Options struct {
	// RestoreFirstAnim re-activates the first declared animation after all
	// tracks are layered. Hooks may override it before layering starts.
	RestoreFirstAnim bool
	OnDanglingTarget DanglingPolicy
}

// Extension is one registered import hook. Implementations are invoked
// synchronously, in registration order.
type Extension interface {
	BeforeSceneCreate(ctx *Context)
	AfterNodeCreate(ctx *Context, id vnode.ID)
	BeforeAnimationLayering(ctx *Context, opts *AnimationOptions)
	AfterAnimationCreate(ctx *Context, index int, name string)
}

// NopExtension implements Extension with empty methods, for embedding.
type NopExtension struct{}

func (NopExtension) BeforeSceneCreate(*Context)                        {}
func (NopExtension) AfterNodeCreate(*Context, vnode.ID)                {}
func (NopExtension) BeforeAnimationLayering(*Context, *AnimationOptions) {}
func (NopExtension) AfterAnimationCreate(*Context, int, string)        {}

type Context struct {
	Document *gltf.Document
	Graph    *vnode.Graph
	Scene    host.Scene
	Options  Options

	Extensions []Extension

	// DisplayCurrentNode counts materialized vnodes, for debugging.
	DisplayCurrentNode int

	armatures    map[vnode.ID]host.ArmatureData
	inverseBinds map[vnode.ID]mgl32.Mat4
	meshes       map[uint32]host.MeshData
	cameras      map[uint32]host.CameraData
	trackNames   []string
	names        utils.RandomNameGenerator
}

func NewContext(doc *gltf.Document, scene host.Scene, opts Options, extensions ...Extension) *Context {
	return &Context{
		Document:     doc,
		Scene:        scene,
		Options:      opts,
		Extensions:   extensions,
		armatures:    make(map[vnode.ID]host.ArmatureData),
		inverseBinds: make(map[vnode.ID]mgl32.Mat4),
		meshes:       make(map[uint32]host.MeshData),
		cameras:      make(map[uint32]host.CameraData),
	}
}

// entityName decodes a raw glTF name, generating one for unnamed entities.
func (ctx *Context) entityName(raw string) string {
	if name := utils.DecodeLegacyName(raw); name != "" {
		return name
	}
	return ctx.names.RandomName()
}
