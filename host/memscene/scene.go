// Package memscene is the in-memory reference implementation of the host
// SDK. The command line tool and the web layer import into it, and tests use
// its creation sequence numbers and track stack to observe import ordering.
package memscene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/gltf_scene_browser/host"
)

type Scene struct {
	Objects   []*Object
	Meshes    []*MeshData
	Cameras   []*CameraData
	Armatures []*ArmatureData

	// Collection holds scene-linked objects in link order.
	Collection []*Object

	// Tracks is the NLA stack, bottom first. The last pushed track is the
	// topmost one and wins evaluation priority.
	Tracks []*Track

	Active      *Object
	ActiveTrack *Track

	seq int
}

func New() *Scene {
	return &Scene{}
}

func (s *Scene) nextSeq() int {
	s.seq++
	return s.seq
}

func (s *Scene) NewObject(name string) host.Object {
	o := &Object{
		name:     name,
		seq:      s.nextSeq(),
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
	}
	s.Objects = append(s.Objects, o)
	return o
}

func (s *Scene) NewMeshData(name string, vertices []mgl32.Vec3) host.MeshData {
	m := &MeshData{name: name, Vertices: vertices}
	s.Meshes = append(s.Meshes, m)
	return m
}

func (s *Scene) NewCameraData(name string) host.CameraData {
	c := &CameraData{name: name}
	s.Cameras = append(s.Cameras, c)
	return c
}

func (s *Scene) NewArmatureData(name string) host.ArmatureData {
	a := &ArmatureData{name: name}
	s.Armatures = append(s.Armatures, a)
	return a
}

func (s *Scene) Link(o host.Object) {
	s.Collection = append(s.Collection, o.(*Object))
}

func (s *Scene) PushTrack(name string) host.Track {
	t := &Track{name: name}
	s.Tracks = append(s.Tracks, t)
	s.ActiveTrack = t
	return t
}

func (s *Scene) ActivateTrack(name string) bool {
	for i := len(s.Tracks) - 1; i >= 0; i-- {
		if s.Tracks[i].name == name {
			s.ActiveTrack = s.Tracks[i]
			return true
		}
	}
	return false
}

func (s *Scene) DeselectAll() {
	for _, o := range s.Objects {
		o.Selected = false
	}
}

func (s *Scene) SetActive(o host.Object) {
	if o == nil {
		s.Active = nil
		return
	}
	s.Active = o.(*Object)
}

// TrackPriority reports the evaluation priority of a track by name, higher
// wins. Returns -1 for unknown tracks.
func (s *Scene) TrackPriority(name string) int {
	for i, t := range s.Tracks {
		if t.name == name {
			return i
		}
	}
	return -1
}

// Selected returns scene objects currently selected, in creation order.
func (s *Scene) Selected() []*Object {
	sel := make([]*Object, 0, len(s.Objects))
	for _, o := range s.Objects {
		if o.Selected {
			sel = append(sel, o)
		}
	}
	return sel
}

// RemoveMeshData unlinks mesh data from the scene pool. Used by the regroup
// pass when collapsing instances.
func (s *Scene) RemoveMeshData(m *MeshData) {
	for i, sm := range s.Meshes {
		if sm == m {
			s.Meshes = append(s.Meshes[:i], s.Meshes[i+1:]...)
			return
		}
	}
}
