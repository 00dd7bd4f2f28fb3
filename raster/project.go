package raster

import "github.com/go-gl/mathgl/mgl32"

// boundaries of the clip volume 0 <= z <= w, -w <= x <= w, -w <= y <= w,
// each one inside where it is >= 0
var clipPlanes = [...]func(v mgl32.Vec4) float32{
	func(v mgl32.Vec4) float32 { return v.Z() },
	func(v mgl32.Vec4) float32 { return v.W() - v.Z() },
	func(v mgl32.Vec4) float32 { return v.W() + v.X() },
	func(v mgl32.Vec4) float32 { return v.W() - v.X() },
	func(v mgl32.Vec4) float32 { return v.W() + v.Y() },
	func(v mgl32.Vec4) float32 { return v.W() - v.Y() },
}

// ClipSegment clips the clip-space segment a-b to the view volume with
// Liang-Barsky. ok is false if no part of the segment is visible.
func ClipSegment(a, b mgl32.Vec4) (mgl32.Vec4, mgl32.Vec4, bool) {
	t0, t1 := float32(0), float32(1)
	for _, plane := range clipPlanes {
		fa, fb := plane(a), plane(b)
		switch {
		case fa < 0 && fb < 0:
			return a, b, false
		case fa < 0:
			t0 = max(t0, fa/(fa-fb))
		case fb < 0:
			t1 = min(t1, fa/(fa-fb))
		}
		if t0 > t1 {
			return a, b, false
		}
	}

	d := b.Sub(a)
	ca, cb := a, b
	if t0 > 0 {
		ca = a.Add(d.Mul(t0))
	}
	if t1 < 1 {
		cb = a.Add(d.Mul(t1))
	}
	// z >= 0 and z <= w only leave w == 0 for a degenerate projection
	if ca.W() <= 0 || cb.W() <= 0 {
		return a, b, false
	}
	return ca, cb, true
}

// toPixel maps a clip-space point inside the view volume to pixel
// coordinates of a size x size face.
func toPixel(clip mgl32.Vec4, size int) (x, y int) {
	w := clip.W()
	// NDC y points up, image rows go down
	x = clampPixel((clip.X()/w+1)/2*float32(size), size)
	y = clampPixel((1-clip.Y()/w)/2*float32(size), size)
	return x, y
}

func clampPixel(v float32, size int) int {
	if !(v >= 0) {
		return 0
	}
	if v >= float32(size) {
		return size - 1
	}
	return int(v)
}

// ProjectPoint transforms p by the view-projection matrix vp and maps it
// to pixel coordinates of a size x size face. Depth is 0 at the near
// plane and 1 at the far plane. ok is false if p is outside the view
// volume.
func ProjectPoint(vp mgl32.Mat4, p mgl32.Vec3, size int) (x, y int, depth float32, ok bool) {
	clip := vp.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, 0, false
	}
	for _, plane := range clipPlanes {
		if plane(clip) < 0 {
			return 0, 0, clip.Z() / w, false
		}
	}
	x, y = toPixel(clip, size)
	return x, y, clip.Z() / w, true
}

// ProjectSegment transforms the segment p0-p1 by vp, clips it to the view
// volume and returns its pixel end points on a size x size face.
func ProjectSegment(vp mgl32.Mat4, p0, p1 mgl32.Vec3, size int) (x0, y0, x1, y1 int, ok bool) {
	a, b, ok := ClipSegment(vp.Mul4x1(p0.Vec4(1)), vp.Mul4x1(p1.Vec4(1)))
	if !ok {
		return 0, 0, 0, 0, false
	}
	x0, y0 = toPixel(a, size)
	x1, y1 = toPixel(b, size)
	return x0, y0, x1, y1, true
}
