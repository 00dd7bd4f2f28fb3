package raster

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"envmap"
)

var white = color.RGBA{255, 255, 255, 255}

func lit(img *image.RGBA) int {
	var n int
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			n++
		}
	}
	return n
}

func TestDrawLine(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))

	DrawLine(img, 2, 3, 10, 3, white)
	for x := 2; x <= 10; x++ {
		assert.Equal(t, white, img.RGBAAt(x, 3), "x=%d", x)
	}
	assert.Equal(t, 9, lit(img))

	// single point
	DrawLine(img, 5, 5, 5, 5, white)
	assert.Equal(t, white, img.RGBAAt(5, 5))

	// clipped to bounds
	DrawLine(img, -10, 0, 30, 0, white)
	assert.Equal(t, white, img.RGBAAt(0, 0))
	assert.Equal(t, white, img.RGBAAt(15, 0))

	// far off-image end points are clipped before walking
	img = image.NewRGBA(image.Rect(0, 0, 16, 16))
	start := time.Now()
	DrawLine(img, -1e9, 5, 1e9, 5, white)
	DrawLine(img, -1e9, -1e9, -1e9+3, 1e9, white)
	assert.Less(t, time.Since(start), time.Second)
	for x := 0; x < 16; x++ {
		assert.Equal(t, white, img.RGBAAt(x, 5), "x=%d", x)
	}
	assert.Equal(t, 16, lit(img))
}

func TestProjectPoint(t *testing.T) {
	vp, err := envmap.FaceViewProjMatrix(mgl32.Vec3{}, envmap.FacePositiveZ)
	require.NoError(t, err)

	testCases := map[string]struct {
		p     mgl32.Vec3
		x, y  int
		depth float32
		ok    bool
	}{
		"Near":    {p: mgl32.Vec3{0, 0, envmap.FaceNear}, x: 64, y: 64, depth: 0, ok: true},
		"Far":     {p: mgl32.Vec3{0, 0, envmap.FaceFar}, x: 64, y: 64, depth: 1, ok: true},
		"Corner":  {p: mgl32.Vec3{-1, -1, 4}, x: 48, y: 80, depth: 0.75, ok: true},
		"Behind":  {p: mgl32.Vec3{0, 0, -3}, ok: false},
		"Outside": {p: mgl32.Vec3{10, 0, 2}, ok: false},
	}
	for name, tt := range testCases {
		t.Run(name, func(t *testing.T) {
			x, y, depth, ok := ProjectPoint(vp, tt.p, 128)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.x, x)
			assert.Equal(t, tt.y, y)
			assert.InDelta(t, tt.depth, depth, 1e-4)
		})
	}
}

func TestClipSegment(t *testing.T) {
	testCases := map[string]struct {
		a, b   mgl32.Vec4
		ca, cb mgl32.Vec4
		ok     bool
	}{
		"Inside": {
			a: mgl32.Vec4{0, 0, 1, 2}, b: mgl32.Vec4{1, 1, 2, 3},
			ca: mgl32.Vec4{0, 0, 1, 2}, cb: mgl32.Vec4{1, 1, 2, 3}, ok: true,
		},
		"CrossesNear": {
			a: mgl32.Vec4{0, 0, 2, 4}, b: mgl32.Vec4{0, 0, -2, 0},
			ca: mgl32.Vec4{0, 0, 2, 4}, cb: mgl32.Vec4{0, 0, 0, 2}, ok: true,
		},
		"CrossesRight": {
			a: mgl32.Vec4{0, 0, 1, 2}, b: mgl32.Vec4{4, 0, 1, 2},
			ca: mgl32.Vec4{0, 0, 1, 2}, cb: mgl32.Vec4{2, 0, 1, 2}, ok: true,
		},
		"Behind": {
			a: mgl32.Vec4{0, 0, -1, 1}, b: mgl32.Vec4{0, 0, -2, 0}, ok: false,
		},
		"Beside": {
			a: mgl32.Vec4{5, 0, 1, 2}, b: mgl32.Vec4{6, 3, 1, 2}, ok: false,
		},
	}
	for name, tt := range testCases {
		t.Run(name, func(t *testing.T) {
			ca, cb, ok := ClipSegment(tt.a, tt.b)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.True(t, ca.ApproxEqualThreshold(tt.ca, 1e-5), "got %v", ca)
			assert.True(t, cb.ApproxEqualThreshold(tt.cb, 1e-5), "got %v", cb)
		})
	}
}

func TestRenderFace(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 128, 128))
	mesh := Cube(mgl32.Vec3{0, 0, 5}, 2)

	require.NoError(t, RenderFace(img, mgl32.Vec3{}, envmap.FacePositiveZ, mesh, white))

	// bottom edge of the near square
	assert.Equal(t, white, img.RGBAAt(64, 80))
	assert.Equal(t, white, img.RGBAAt(48, 64))
	// center is inside the far square, not on an edge
	assert.Equal(t, color.RGBA{}, img.RGBAAt(64, 64))

	err := RenderFace(img, mgl32.Vec3{}, envmap.Face(9), mesh, white)
	assert.ErrorIs(t, err, envmap.ErrFaceOutOfRange)
}

func TestRenderFaceNearPlane(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	mesh := Mesh{
		Vertices: []mgl32.Vec3{{-1, -1, 5}, {-1, -1, -5}},
		Indices:  []uint32{0, 1},
	}
	require.NoError(t, RenderFace(img, mgl32.Vec3{}, envmap.FacePositiveZ, mesh, white))

	// visible from z=5 down to the near plane at the bottom left corner
	assert.NotZero(t, lit(img))
	assert.Equal(t, white, img.RGBAAt(25, 38))
	assert.Equal(t, white, img.RGBAAt(12, 51))
}

func TestRenderFaceWideSegment(t *testing.T) {
	vp, err := envmap.FaceViewProjMatrix(mgl32.Vec3{}, envmap.FacePositiveZ)
	require.NoError(t, err)

	p0, p1 := mgl32.Vec3{0, 0, 5}, mgl32.Vec3{1e7, 0, 1.01}
	x0, y0, x1, y1, ok := ProjectSegment(vp, p0, p1, 64)
	require.True(t, ok)
	for _, v := range []int{x0, y0, x1, y1} {
		assert.True(t, v >= 0 && v < 64, "pixel coordinate %d", v)
	}

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	start := time.Now()
	require.NoError(t, RenderFace(img, mgl32.Vec3{}, envmap.FacePositiveZ,
		Mesh{Vertices: []mgl32.Vec3{p0, p1}, Indices: []uint32{0, 1}}, white))
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, white, img.RGBAAt(40, 32))
}

func TestRenderFaceDirections(t *testing.T) {
	cameraPos := mgl32.Vec3{10, -3, 2}
	opposite := map[envmap.Face]envmap.Face{
		envmap.FacePositiveX: envmap.FaceNegativeX,
		envmap.FaceNegativeX: envmap.FacePositiveX,
		envmap.FacePositiveY: envmap.FaceNegativeY,
		envmap.FaceNegativeY: envmap.FacePositiveY,
		envmap.FacePositiveZ: envmap.FaceNegativeZ,
		envmap.FaceNegativeZ: envmap.FacePositiveZ,
	}
	for _, face := range envmap.Faces() {
		t.Run(face.String(), func(t *testing.T) {
			mesh := Cube(cameraPos.Add(face.Dir().Mul(5)), 2)

			img := image.NewRGBA(image.Rect(0, 0, 64, 64))
			require.NoError(t, RenderFace(img, cameraPos, face, mesh, white))
			assert.NotZero(t, lit(img))

			img = image.NewRGBA(image.Rect(0, 0, 64, 64))
			require.NoError(t, RenderFace(img, cameraPos, opposite[face], mesh, white))
			assert.Zero(t, lit(img))
		})
	}
}

func TestRenderCross(t *testing.T) {
	bg := color.RGBA{0, 0, 64, 255}
	img := RenderCross(mgl32.Vec3{}, Cube(mgl32.Vec3{0, 0, 5}, 2), 32, white, bg)
	assert.Equal(t, image.Rect(0, 0, 128, 96), img.Rect)

	// unused cells stay empty
	assert.Equal(t, color.RGBA{}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(127, 95))

	// +Z cell center is background, its near square is drawn
	assert.Equal(t, bg, img.RGBAAt(32+16, 32+16))
	assert.Equal(t, white, img.RGBAAt(32+16, 32+20))

	// -Z cell sees nothing
	for y := 32; y < 64; y++ {
		for x := 96; x < 128; x++ {
			require.Equal(t, bg, img.RGBAAt(x, y))
		}
	}
}

func TestCrossOffset(t *testing.T) {
	seen := map[[2]int]bool{}
	for _, face := range envmap.Faces() {
		c, r := CrossOffset(face)
		assert.False(t, seen[[2]int{c, r}], "%v shares a cell", face)
		seen[[2]int{c, r}] = true
	}
	c, r := CrossOffset(envmap.Face(6))
	assert.Equal(t, -1, c)
	assert.Equal(t, -1, r)
}

func TestMesh(t *testing.T) {
	a := Cube(mgl32.Vec3{}, 1)
	assert.Len(t, a.Vertices, 8)
	assert.Len(t, a.Indices, 24)
	assert.Equal(t, mgl32.Vec3{-0.5, -0.5, 0.5}, a.Vertices[0])

	b := a.Append(Cube(mgl32.Vec3{10, 0, 0}, 1))
	assert.Len(t, b.Vertices, 16)
	assert.Len(t, b.Indices, 48)
	assert.Equal(t, uint32(8), b.Indices[24])
	assert.Len(t, a.Vertices, 8, "Append must not modify the receiver")

	flat := b.Flat()
	assert.Len(t, flat, 48)
	assert.Equal(t, []float32{9.5, -0.5, 0.5}, flat[24:27])
}
