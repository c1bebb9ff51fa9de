package fractal

import "github.com/Faultbox/fractals/pkg/math"

// Direction places a child relative to its parent.
type Direction struct {
	Name        string
	Offset      math.Vec3
	Orientation math.Quat
}

// Directions is the ordered child template table. A child's index is its
// position in this table.
var Directions = [...]Direction{
	{"up", math.Up, math.QuatIdentity()},
	{"right", math.Right, math.QuatFromEuler(0, 0, -90)},
	{"left", math.Left, math.QuatFromEuler(0, 0, 90)},
	{"forward", math.Forward, math.QuatFromEuler(90, 0, 0)},
	{"back", math.Back, math.QuatFromEuler(-90, 0, 0)},
}

// ChildOffset returns the local position of a child in direction i.
// The factor keeps a child of any scale touching its parent's face.
func ChildOffset(i int, childScale float32) math.Vec3 {
	return Directions[i].Offset.Scale(0.5 + 0.5*childScale)
}
