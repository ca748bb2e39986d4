package vnode

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
)

func TestNodeTRSDefaults(t *testing.T) {
	tr, r, s := nodeTRS(&gltf.Node{})
	assert.Equal(t, mgl32.Vec3{}, tr)
	assert.Equal(t, mgl32.QuatIdent(), r)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, s)
}

func TestNodeTRSFromFields(t *testing.T) {
	tr, r, s := nodeTRS(&gltf.Node{
		Translation: [3]float32{1, 2, 3},
		Rotation:    [4]float32{0, 0, 0, 1},
		Scale:       [3]float32{2, 2, 2},
	})
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, tr)
	assert.Equal(t, mgl32.QuatIdent(), r)
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, s)
}

func TestNodeTRSFromMatrix(t *testing.T) {
	m := mgl32.Translate3D(5, 6, 7).Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(90))).
		Mul4(mgl32.Scale3D(2, 3, 4))

	tr, r, s := nodeTRS(&gltf.Node{Matrix: [16]float32(m)})

	assert.InDeltaSlice(t, []float32{5, 6, 7}, tr[:], 1e-5)
	assert.InDeltaSlice(t, []float32{2, 3, 4}, s[:], 1e-5)

	rotated := r.Rotate(mgl32.Vec3{1, 0, 0})
	assert.InDeltaSlice(t, []float32{0, 1, 0}, rotated[:], 1e-5)
}

func TestDecomposeRecompose(t *testing.T) {
	m := mgl32.Translate3D(-1, 2, 0.5).
		Mul4(mgl32.HomogRotate3D(0.7, mgl32.Vec3{1, 1, 0}.Normalize())).
		Mul4(mgl32.Scale3D(1.5, 1.5, 1.5))

	tr, r, s := decomposeMatrix(m)
	back := mgl32.Translate3D(tr[0], tr[1], tr[2]).
		Mul4(r.Mat4()).
		Mul4(mgl32.Scale3D(s[0], s[1], s[2]))

	assert.InDeltaSlice(t, m[:], back[:], 1e-4)
}
