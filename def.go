// Package envmap holds the constants and matrices used to render the six
// faces of an IBL environment cubemap.
package envmap

const (
	// FaceSize is the width and height of one cubemap face, 128 or 256
	FaceSize = 128

	// SrcSize is the width and height of the texture each face is rendered into
	SrcSize = 256

	// TexFormat is the pixel format of the cubemap texture (16-bit float RGBA)
	TexFormat = "A16B16G16R16F"

	// FaceNear is the near clip distance used for every face
	FaceNear float32 = 1.0

	// FaceFar is the far clip distance used for every face
	FaceFar float32 = 65535.0
)

// ValidFaceSize reports whether n is a supported face size
func ValidFaceSize(n int) bool {
	return n == 128 || n == 256
}
