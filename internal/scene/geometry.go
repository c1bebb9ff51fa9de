package scene

import "github.com/Faultbox/fractals/pkg/math"

// VertexStride is the number of floats per vertex in Geometry: position then normal.
const VertexStride = 6

type cubeFace struct {
	normal, u, v math.Vec3
}

// u x v == normal for every face, which keeps triangles counter-clockwise
// when viewed from outside.
var cubeFaces = [6]cubeFace{
	{math.Vec3{X: 1}, math.Vec3{Y: 1}, math.Vec3{Z: 1}},
	{math.Vec3{X: -1}, math.Vec3{Z: 1}, math.Vec3{Y: 1}},
	{math.Vec3{Y: 1}, math.Vec3{Z: 1}, math.Vec3{X: 1}},
	{math.Vec3{Y: -1}, math.Vec3{X: 1}, math.Vec3{Z: 1}},
	{math.Vec3{Z: 1}, math.Vec3{X: 1}, math.Vec3{Y: 1}},
	{math.Vec3{Z: -1}, math.Vec3{Y: 1}, math.Vec3{X: 1}},
}

// Geometry returns flat-shaded triangles for the primitive as interleaved
// position/normal floats. Every shape fits the unit cube centered on the origin.
func (p Primitive) Geometry() []float32 {
	switch p {
	case Cube:
		return cubeGeometry()
	case Octahedron:
		return octahedronGeometry()
	}
	return nil
}

func cubeGeometry() []float32 {
	data := make([]float32, 0, 6*6*VertexStride)
	for _, f := range cubeFaces {
		center := f.normal.Scale(0.5)
		corner := func(su, sv float32) math.Vec3 {
			return center.Add(f.u.Scale(su * 0.5)).Add(f.v.Scale(sv * 0.5))
		}
		quad := [6]math.Vec3{
			corner(-1, -1), corner(1, -1), corner(1, 1),
			corner(-1, -1), corner(1, 1), corner(-1, 1),
		}
		for _, pos := range quad {
			data = appendVertex(data, pos, f.normal)
		}
	}
	return data
}

func octahedronGeometry() []float32 {
	data := make([]float32, 0, 8*3*VertexStride)
	signs := [2]float32{1, -1}
	for _, sx := range signs {
		for _, sy := range signs {
			for _, sz := range signs {
				a := math.Vec3{X: sx * 0.5}
				b := math.Vec3{Y: sy * 0.5}
				c := math.Vec3{Z: sz * 0.5}
				if sx*sy*sz < 0 {
					b, c = c, b
				}
				n := math.Vec3{X: sx, Y: sy, Z: sz}.Normalize()
				data = appendVertex(data, a, n)
				data = appendVertex(data, b, n)
				data = appendVertex(data, c, n)
			}
		}
	}
	return data
}

func appendVertex(data []float32, pos, normal math.Vec3) []float32 {
	return append(data, pos.X, pos.Y, pos.Z, normal.X, normal.Y, normal.Z)
}
