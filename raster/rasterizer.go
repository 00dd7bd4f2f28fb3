// Package raster draws wireframe meshes into cubemap faces on the CPU.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"envmap"
)

// DrawLine draws a line on the image from (x1, y1) to (x2, y2) using a DDA walk.
// The line is clipped to the image bounds first, so the walk never leaves
// the image.
func DrawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	fx1, fy1, fx2, fy2, ok := clipLine(img.Rect, float64(x1), float64(y1), float64(x2), float64(y2))
	if !ok {
		return
	}

	dx := fx2 - fx1
	dy := fy2 - fy1
	steps := math.Round(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		setPixel(img, int(math.Round(fx1)), int(math.Round(fy1)), col)
		return
	}

	xInc := dx / steps
	yInc := dy / steps

	x := fx1
	y := fy1

	for i := 0; i <= int(steps); i++ {
		setPixel(img, int(math.Round(x)), int(math.Round(y)), col)
		x += xInc
		y += yInc
	}
}

// clipLine clips a line to the pixel centers of r with Liang-Barsky
func clipLine(r image.Rectangle, x1, y1, x2, y2 float64) (cx1, cy1, cx2, cy2 float64, ok bool) {
	if r.Empty() {
		return 0, 0, 0, 0, false
	}
	dx, dy := x2-x1, y2-y1
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{
		x1 - float64(r.Min.X),
		float64(r.Max.X-1) - x1,
		y1 - float64(r.Min.Y),
		float64(r.Max.Y-1) - y1,
	}

	t0, t1 := 0.0, 1.0
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}
	return x1 + t0*dx, y1 + t0*dy, x1 + t1*dx, y1 + t1*dy, true
}

func setPixel(img *image.RGBA, x, y int, col color.RGBA) {
	if !(image.Point{x, y}.In(img.Rect)) {
		return
	}
	offset := img.PixOffset(x, y)
	img.Pix[offset] = col.R
	img.Pix[offset+1] = col.G
	img.Pix[offset+2] = col.B
	img.Pix[offset+3] = col.A
}

// RenderFace draws mesh as seen from cameraPos through face into img.
// img must be square; its bounds give the face size. Segments are clipped
// to the view volume, so parts behind the near plane or beyond the far
// plane are not drawn.
func RenderFace(img *image.RGBA, cameraPos mgl32.Vec3, face envmap.Face, mesh Mesh, col color.RGBA) error {
	vp, err := envmap.FaceViewProjMatrix(cameraPos, face)
	if err != nil {
		return err
	}
	renderMesh(img, vp, mesh, col)
	return nil
}

func renderMesh(img *image.RGBA, vp mgl32.Mat4, mesh Mesh, col color.RGBA) {
	size := img.Rect.Dx()
	origin := img.Rect.Min
	for i := 0; i+1 < len(mesh.Indices); i += 2 {
		x1, y1, x2, y2, ok := ProjectSegment(vp,
			mesh.Vertices[mesh.Indices[i]], mesh.Vertices[mesh.Indices[i+1]], size)
		if !ok {
			continue
		}
		DrawLine(img, origin.X+x1, origin.Y+y1, origin.X+x2, origin.Y+y2, col)
	}
}

// CrossOffset returns the cell of face in a 4x3 horizontal cross layout
func CrossOffset(face envmap.Face) (col, row int) {
	switch face {
	case envmap.FacePositiveY:
		return 1, 0
	case envmap.FaceNegativeX:
		return 0, 1
	case envmap.FacePositiveZ:
		return 1, 1
	case envmap.FacePositiveX:
		return 2, 1
	case envmap.FaceNegativeZ:
		return 3, 1
	case envmap.FaceNegativeY:
		return 1, 2
	}
	return -1, -1
}

// RenderCross renders all six faces of mesh into a 4x3 cross image with
// faces of size x size pixels on a background of bg.
func RenderCross(cameraPos mgl32.Vec3, mesh Mesh, size int, col, bg color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4*size, 3*size))
	for _, face := range envmap.Faces() {
		c, r := CrossOffset(face)
		cell := image.Rect(c*size, r*size, (c+1)*size, (r+1)*size)
		sub := img.SubImage(cell).(*image.RGBA)
		draw.Draw(sub, cell, image.NewUniform(bg), image.Point{}, draw.Src)
		vp := envmap.FaceProjMatrix().Mul4(envmap.MustFaceViewMatrix(cameraPos, face))
		renderMesh(sub, vp, mesh, col)
	}
	return img
}
