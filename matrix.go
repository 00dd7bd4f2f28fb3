package envmap

import "github.com/go-gl/mathgl/mgl32"

// Matrices are stored in the flat order of a row-vector float4x4 literal,
// which mgl32 reads column-major. The result is the column-vector form:
// m.Mul4x1(v) here equals v*m in row-vector notation, and m[4*i+j] is
// element [i][j] of the row-vector matrix. View space is left-handed,
// looking down +Z, and device depth runs from 0 at FaceNear to 1 at FaceFar.

// fov    == 90°
// aspect == 1.0
// h      == cot(fov/2) == 1
// w      == h/aspect   == 1
var faceProj = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, FaceFar / (FaceFar - FaceNear), 1,
	0, 0, -FaceNear * FaceFar / (FaceFar - FaceNear), 0,
}

// FaceProjMatrix returns the projection matrix shared by all six faces
func FaceProjMatrix() mgl32.Mat4 {
	return faceProj
}

// FaceViewMatrix returns the view matrix looking from cameraPos along the
// direction of face. An invalid face yields a *DomainError.
func FaceViewMatrix(cameraPos mgl32.Vec3, face Face) (mgl32.Mat4, error) {
	if !face.Valid() {
		return mgl32.Mat4{}, &DomainError{Face: face}
	}

	// The directions are axis aligned unit vectors, so the basis can be
	// written out directly instead of crossing with an up vector, which
	// would degenerate on the ±Y faces.
	z := faceDirections[face]
	x := mgl32.Vec3{mgl32.Abs(z.Y()) + z.Z(), 0, -z.X()}
	y := mgl32.Vec3{0, mgl32.Abs(z.X() + z.Z()), -z.Y()}

	return mgl32.Mat4{
		x.X(), y.X(), z.X(), 0,
		x.Y(), y.Y(), z.Y(), 0,
		x.Z(), y.Z(), z.Z(), 0,
		-x.Dot(cameraPos), -y.Dot(cameraPos), -z.Dot(cameraPos), 1,
	}, nil
}

// MustFaceViewMatrix is like FaceViewMatrix but panics on an invalid face
func MustFaceViewMatrix(cameraPos mgl32.Vec3, face Face) mgl32.Mat4 {
	m, err := FaceViewMatrix(cameraPos, face)
	if err != nil {
		panic(err)
	}
	return m
}

// FaceViewProjMatrix returns the projection applied after the face view,
// transforming world positions straight to clip space.
func FaceViewProjMatrix(cameraPos mgl32.Vec3, face Face) (mgl32.Mat4, error) {
	view, err := FaceViewMatrix(cameraPos, face)
	if err != nil {
		return mgl32.Mat4{}, err
	}
	return faceProj.Mul4(view), nil
}
