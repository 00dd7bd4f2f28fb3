package raster

import "github.com/go-gl/mathgl/mgl32"

// Mesh is a set of vertices joined by line segments
type Mesh struct {
	Vertices []mgl32.Vec3
	// Pairs of indices into Vertices, one pair per segment
	Indices []uint32
}

// Cube returns a wireframe cube with the given center and edge length
func Cube(center mgl32.Vec3, size float32) Mesh {
	h := size / 2
	corners := []mgl32.Vec3{
		// Front face
		{-h, -h, h},
		{h, -h, h},
		{h, h, h},
		{-h, h, h},
		// Back face
		{-h, -h, -h},
		{h, -h, -h},
		{h, h, -h},
		{-h, h, -h},
	}
	for i := range corners {
		corners[i] = corners[i].Add(center)
	}
	return Mesh{
		Vertices: corners,
		Indices: []uint32{
			0, 1, 1, 2, 2, 3, 3, 0, // Front face
			4, 5, 5, 6, 6, 7, 7, 4, // Back face
			0, 4, 1, 5, 2, 6, 3, 7, // Connecting lines
		},
	}
}

// Append returns a mesh holding the segments of both m and o
func (m Mesh) Append(o Mesh) Mesh {
	base := uint32(len(m.Vertices))
	out := Mesh{
		Vertices: append(append([]mgl32.Vec3{}, m.Vertices...), o.Vertices...),
		Indices:  append([]uint32{}, m.Indices...),
	}
	for _, i := range o.Indices {
		out.Indices = append(out.Indices, base+i)
	}
	return out
}

// Flat returns the vertices as a tightly packed xyz slice for vertex buffers
func (m Mesh) Flat() []float32 {
	out := make([]float32, 0, 3*len(m.Vertices))
	for _, v := range m.Vertices {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}
