package vnode

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

var matrixIdentity = [16]float32{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// nodeTRS extracts the local transform of a glTF node, decomposing the matrix
// form when present. Zero-value nodes built in code get the same defaults the
// decoder would apply.
func nodeTRS(n *gltf.Node) (t mgl32.Vec3, r mgl32.Quat, s mgl32.Vec3) {
	if n.Matrix != matrixIdentity && n.Matrix != [16]float32{} {
		return decomposeMatrix(mgl32.Mat4(n.Matrix))
	}

	t = mgl32.Vec3(n.Translation)

	if n.Rotation == [4]float32{} {
		r = mgl32.QuatIdent()
	} else {
		r = mgl32.Quat{
			W: n.Rotation[3],
			V: mgl32.Vec3{n.Rotation[0], n.Rotation[1], n.Rotation[2]},
		}
	}

	if n.Scale == [3]float32{} {
		s = mgl32.Vec3{1, 1, 1}
	} else {
		s = mgl32.Vec3(n.Scale)
	}
	return
}

func decomposeMatrix(m mgl32.Mat4) (t mgl32.Vec3, r mgl32.Quat, s mgl32.Vec3) {
	t = m.Col(3).Vec3()

	c0 := m.Col(0).Vec3()
	c1 := m.Col(1).Vec3()
	c2 := m.Col(2).Vec3()

	s = mgl32.Vec3{c0.Len(), c1.Len(), c2.Len()}
	if mat3FromCols(c0, c1, c2).Det() < 0 {
		s[0] = -s[0]
	}

	for i := 0; i < 3; i++ {
		if mgl32.FloatEqual(s[i], 0) {
			r = mgl32.QuatIdent()
			return
		}
	}

	rot := mat3FromCols(
		c0.Mul(1/s[0]),
		c1.Mul(1/s[1]),
		c2.Mul(1/s[2]))
	r = mgl32.Mat4ToQuat(rot.Mat4()).Normalize()
	return
}

func mat3FromCols(c0, c1, c2 mgl32.Vec3) mgl32.Mat3 {
	return mgl32.Mat3{
		c0[0], c0[1], c0[2],
		c1[0], c1[1], c1[2],
		c2[0], c2[1], c2[2],
	}
}
