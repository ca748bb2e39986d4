// Package regroup is the post-import pass collapsing mesh duplicates that
// exporters emit per placed instance. Objects following the naming
// convention are grouped, every group member gets its mesh origin moved to
// the vertex centroid, and all members past the first become empty
// placeholders sharing the first member's mesh. The pass is pure glue over
// the host scene and independent of the import pipeline.
package regroup

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/gltf_scene_browser/host/memscene"
)

// Convention: object names look like <prefix>_<id>_<part>_<lod>_<rot>, the
// parent name carries the placement type in its third field. Instances of
// the same (type, id, rot) triple are one group.
type GroupKey struct {
	Type string
	Id   string
	Rot  string
}

type Options struct {
	// SkipNameContains excludes objects whose name contains any entry.
	SkipNameContains []string
}

// ByNamingConvention runs the pass and reports how many instances were
// collapsed into placeholders.
func ByNamingConvention(s *memscene.Scene, opts Options) int {
	keys := make([]GroupKey, 0)
	groups := make(map[GroupKey][]*memscene.Object)

	for _, obj := range s.Objects {
		key, ok := groupKeyFor(obj, opts)
		if !ok {
			continue
		}
		if _, exists := groups[key]; !exists {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], obj)
	}

	recentered := make(map[*memscene.MeshData]mgl32.Vec3)
	for _, key := range keys {
		for _, obj := range groups[key] {
			recenterOrigin(obj, recentered)
		}
	}

	collapsed := 0
	for _, key := range keys {
		for _, obj := range groups[key][1:] {
			collapseInstance(s, obj)
			collapsed++
		}
	}
	return collapsed
}

func groupKeyFor(obj *memscene.Object, opts Options) (GroupKey, bool) {
	if obj.Mesh == nil || obj.Parent() == nil {
		return GroupKey{}, false
	}
	for _, skip := range opts.SkipNameContains {
		if strings.Contains(obj.Name(), skip) {
			return GroupKey{}, false
		}
	}

	fields, err := parseFields(obj.Name())
	if err != nil || len(fields) < 5 {
		return GroupKey{}, false
	}
	parentFields, err := parseFields(obj.Parent().Name())
	if err != nil || len(parentFields) < 3 {
		return GroupKey{}, false
	}

	return GroupKey{
		Type: parentFields[2],
		Id:   fields[1],
		Rot:  fields[4],
	}, true
}

// recenterOrigin moves the mesh data so its origin sits at the vertex
// centroid and compensates on the object transform. Shared mesh data is
// transformed once; every user still gets the translation fix.
func recenterOrigin(obj *memscene.Object, recentered map[*memscene.MeshData]mgl32.Vec3) {
	mesh := obj.Mesh

	origin, done := recentered[mesh]
	if !done {
		origin = mesh.Centroid()
		mesh.Transform(mgl32.Translate3D(-origin[0], -origin[1], -origin[2]))
		recentered[mesh] = origin
	}

	moved := obj.LocalMatrix().Mul4x1(origin.Vec4(1)).Vec3()
	obj.SetTranslation(moved)
}

// collapseInstance turns a duplicate into an empty placeholder, dropping the
// mesh data from the scene when nobody else uses it.
func collapseInstance(s *memscene.Scene, obj *memscene.Object) {
	mesh := obj.Mesh
	obj.DetachMesh()

	for _, other := range s.Objects {
		if other.Mesh == mesh {
			return
		}
	}
	s.RemoveMeshData(mesh)
}
