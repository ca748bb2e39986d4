package web

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mogaika/gltf_scene_browser/utils"
	"github.com/mogaika/gltf_scene_browser/vnode"
	"github.com/mogaika/gltf_scene_browser/webutils"
)

type jVNode struct {
	Id       vnode.ID   `json:"id"`
	Name     string     `json:"name"`
	Kind     string     `json:"kind"`
	Parent   vnode.ID   `json:"parent"`
	Children []vnode.ID `json:"children"`
	BoneArma *vnode.ID  `json:"bone_arma,omitempty"`
}

func makeJVNode(vn *vnode.VNode) *jVNode {
	j := &jVNode{
		Id:       vn.ID,
		Name:     vn.Name,
		Kind:     vn.Kind.String(),
		Parent:   vn.Parent,
		Children: vn.Children,
	}
	if vn.Kind == vnode.KindBone {
		arma := vn.BoneArma
		j.BoneArma = &arma
	}
	return j
}

func HandlerScene(w http.ResponseWriter, r *http.Request) {
	type jScene struct {
		Nodes      int    `json:"nodes"`
		Objects    int    `json:"objects"`
		Meshes     int    `json:"meshes"`
		Armatures  int    `json:"armatures"`
		Animations int    `json:"animations"`
		Active     string `json:"active,omitempty"`
	}
	s := jScene{
		Nodes:      len(serverView.Document.Nodes),
		Objects:    len(serverView.Scene.Objects),
		Meshes:     len(serverView.Scene.Meshes),
		Armatures:  len(serverView.Scene.Armatures),
		Animations: len(serverView.Scene.Tracks),
	}
	if serverView.Scene.Active != nil {
		s.Active = serverView.Scene.Active.Name()
	}
	webutils.WriteJson(w, &s)
}

func HandlerVNodes(w http.ResponseWriter, r *http.Request) {
	nodes := make(map[vnode.ID]*jVNode, len(serverView.Graph.Nodes))
	for id, vn := range serverView.Graph.Nodes {
		nodes[id] = makeJVNode(vn)
	}
	webutils.WriteJson(w, nodes)
}

func HandlerVNode(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		webutils.WriteError(w, errors.Errorf("Id %q is not integer", mux.Vars(r)["id"]))
		return
	}
	vn := serverView.Graph.Get(vnode.ID(id))
	if vn == nil {
		webutils.WriteError(w, errors.Errorf("No vnode with id %v", id))
		return
	}
	webutils.WriteJson(w, makeJVNode(vn))
}

func HandlerObjects(w http.ResponseWriter, r *http.Request) {
	type jObject struct {
		Name     string `json:"name"`
		Seq      int    `json:"seq"`
		Parent   string `json:"parent,omitempty"`
		Mesh     string `json:"mesh,omitempty"`
		Camera   string `json:"camera,omitempty"`
		Armature string `json:"armature,omitempty"`
		Bones    int    `json:"bones,omitempty"`
		Selected bool   `json:"selected"`
	}
	objects := make([]jObject, 0, len(serverView.Scene.Objects))
	for _, o := range serverView.Scene.Objects {
		j := jObject{Name: o.Name(), Seq: o.Seq(), Selected: o.Selected}
		if o.Parent() != nil {
			j.Parent = o.Parent().Name()
		}
		if o.Mesh != nil {
			j.Mesh = o.Mesh.Name()
		}
		if o.Camera != nil {
			j.Camera = o.Camera.Name()
		}
		if o.Armature != nil {
			j.Armature = o.Armature.Name()
			j.Bones = len(o.Armature.Bones)
		}
		objects = append(objects, j)
	}
	webutils.WriteJson(w, objects)
}

func HandlerAnimations(w http.ResponseWriter, r *http.Request) {
	type jTrack struct {
		Name     string `json:"name"`
		Priority int    `json:"priority"`
		Curves   int    `json:"curves"`
		Active   bool   `json:"active"`
	}
	tracks := make([]jTrack, 0, len(serverView.Scene.Tracks))
	for i, t := range serverView.Scene.Tracks {
		tracks = append(tracks, jTrack{
			Name:     t.Name(),
			Priority: i,
			Curves:   len(t.Curves),
			Active:   t == serverView.Scene.ActiveTrack,
		})
	}
	webutils.WriteJson(w, tracks)
}

func HandlerDumpVNodes(w http.ResponseWriter, r *http.Request) {
	webutils.WriteResult(w, []byte(utils.SDump(serverView.Graph.Nodes)))
}
