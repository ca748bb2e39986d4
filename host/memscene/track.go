package memscene

import (
	"github.com/mogaika/gltf_scene_browser/host"
)

type Curve struct {
	Object *Object
	Bone   *Bone
	Path   host.TRSPath
	Keys   host.Sampled
}

type Track struct {
	name   string
	Curves []Curve
}

func (t *Track) Name() string { return t.name }

func (t *Track) AddObjectCurve(o host.Object, path host.TRSPath, s host.Sampled) {
	t.Curves = append(t.Curves, Curve{Object: o.(*Object), Path: path, Keys: s})
}

func (t *Track) AddBoneCurve(b host.Bone, path host.TRSPath, s host.Sampled) {
	t.Curves = append(t.Curves, Curve{Bone: b.(*Bone), Path: path, Keys: s})
}
