package renderer

import (
	"github.com/Faultbox/fractals/internal/scene"
	"github.com/Faultbox/fractals/pkg/math"
)

// Surface holds the shading inputs for one draw.
type Surface struct {
	Color     math.Vec3
	Ambient   float32
	Specular  float32
	Shininess float32
}

var defaultSurface = Surface{
	Color:     math.One,
	Ambient:   0.25,
	Specular:  0.3,
	Shininess: 32,
}

// surfaceOf derives shading inputs from an entity's material. Materials other
// than *scene.Material only contribute their color.
func surfaceOf(e *scene.Entity) Surface {
	s := defaultSurface
	mat := e.Material()
	if mat == nil {
		return s
	}
	c := mat.Color()
	s.Color = math.Vec3{X: c.R, Y: c.G, Z: c.B}
	if m, ok := mat.(*scene.Material); ok {
		s.Ambient = m.Ambient
		s.Specular = m.Specular
		s.Shininess = m.Shininess
	}
	return s
}
