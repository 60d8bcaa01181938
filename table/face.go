package table

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Canonical face normals in die-local space, indexed by face value - 1.
// Opposite faces sum to seven: +Y/-Y = 1/6, +Z/-Z = 2/5, +X/-X = 3/4.
var faceNormals = [6]mgl64.Vec3{
	{0, 1, 0},  // 1
	{0, 0, 1},  // 2
	{1, 0, 0},  // 3
	{-1, 0, 0}, // 4
	{0, 0, -1}, // 5
	{0, -1, 0}, // 6
}

var worldUp = mgl64.Vec3{0, 1, 0}

// TopFace returns the face value pointing most upward for the given die
// orientation. The six normals are mutually orthogonal, so any generic
// orientation has a unique winner; exact ties go to the lowest face value.
func TopFace(q mgl64.Quat) int {
	best := 1
	bestDot := -2.0
	for i, n := range faceNormals {
		if d := q.Rotate(n).Dot(worldUp); d > bestDot {
			bestDot = d
			best = i + 1
		}
	}
	return best
}

// faceOrientations[v-1] rotates the canonical normal of face v onto +Y.
var faceOrientations = [6]mgl64.Quat{
	mgl64.QuatIdent(),
	mgl64.QuatRotate(-math.Pi/2, mgl64.Vec3{1, 0, 0}),
	mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}),
	mgl64.QuatRotate(-math.Pi/2, mgl64.Vec3{0, 0, 1}),
	mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0}),
	mgl64.QuatRotate(math.Pi, mgl64.Vec3{1, 0, 0}),
}

// FaceNormal returns the die-local outward normal of the given face
// value. Out-of-range values fall back to face 1.
func FaceNormal(value int) mgl64.Vec3 {
	if value < 1 || value > 6 {
		return faceNormals[0]
	}
	return faceNormals[value-1]
}

// OrientationFor returns an orientation showing the given face value on
// top. Inverse of TopFace; out-of-range values fall back to face 1.
func OrientationFor(top int) mgl64.Quat {
	if top < 1 || top > 6 {
		return mgl64.QuatIdent()
	}
	return faceOrientations[top-1]
}
