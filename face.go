package envmap

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// Face indexes one side of the cubemap
type Face int

const (
	FacePositiveX Face = iota
	FaceNegativeX
	FacePositiveY
	FaceNegativeY
	FacePositiveZ
	FaceNegativeZ

	faceCount = 6
)

var faceDirections = [faceCount]mgl32.Vec3{
	{+1, 0, 0}, // +X
	{-1, 0, 0}, // -X
	{0, +1, 0}, // +Y
	{0, -1, 0}, // -Y
	{0, 0, +1}, // +Z
	{0, 0, -1}, // -Z
}

var faceNames = [faceCount]string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}

// Faces returns all faces in cubemap order
func Faces() []Face {
	return []Face{
		FacePositiveX, FaceNegativeX,
		FacePositiveY, FaceNegativeY,
		FacePositiveZ, FaceNegativeZ,
	}
}

// Valid reports whether f is one of the six faces
func (f Face) Valid() bool {
	return f >= 0 && f < faceCount
}

// Dir returns the unit view direction of the face, or the zero vector
// for an invalid face.
func (f Face) Dir() mgl32.Vec3 {
	if !f.Valid() {
		return mgl32.Vec3{}
	}
	return faceDirections[f]
}

// String returns the face name, such as +X
func (f Face) String() string {
	if !f.Valid() {
		return "Face(" + strconv.Itoa(int(f)) + ")"
	}
	return faceNames[f]
}
