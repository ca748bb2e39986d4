// Package web exposes the imported scene for inspection: JSON views of the
// virtual node graph, the materialized scene and the animation stack, plus a
// websocket stream of import events.
package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/qmuntal/gltf"

	"github.com/mogaika/gltf_scene_browser/host/memscene"
	"github.com/mogaika/gltf_scene_browser/status"
	"github.com/mogaika/gltf_scene_browser/vnode"
)

// View is the read-only result of one import.
type View struct {
	Document *gltf.Document
	Graph    *vnode.Graph
	Scene    *memscene.Scene
}

var serverView *View

func StartServer(addr string, v *View) error {
	serverView = v

	r := mux.NewRouter()
	r.HandleFunc("/json/scene", HandlerScene)
	r.HandleFunc("/json/vnodes", HandlerVNodes)
	r.HandleFunc("/json/vnode/{id}", HandlerVNode)
	r.HandleFunc("/json/objects", HandlerObjects)
	r.HandleFunc("/json/animations", HandlerAnimations)
	r.HandleFunc("/dump/vnodes", HandlerDumpVNodes)
	r.HandleFunc("/ws/status", status.HandlerWebsocket)

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
