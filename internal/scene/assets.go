package scene

import (
	"fmt"

	"github.com/Faultbox/fractals/internal/fractal"
)

// Primitive names a built-in mesh shape.
type Primitive string

// Built-in primitives, all fitting a unit cube centered on the origin.
const (
	Cube       Primitive = "cube"
	Octahedron Primitive = "octahedron"
)

// Name implements fractal.Mesh.
func (p Primitive) Name() string { return string(p) }

// Primitives lists the shapes every renderer must support.
var Primitives = []Primitive{Cube, Octahedron}

// Meshes resolves primitive names into mesh handles.
func Meshes(names []string) ([]fractal.Mesh, error) {
	meshes := make([]fractal.Mesh, 0, len(names))
	for _, name := range names {
		p, err := ParsePrimitive(name)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, p)
	}
	return meshes, nil
}

// ParsePrimitive returns the primitive with the given name.
func ParsePrimitive(name string) (Primitive, error) {
	for _, p := range Primitives {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown primitive %q", name)
}

// Material is a simple lit surface.
type Material struct {
	Name      string
	Tint      fractal.Color
	Ambient   float32
	Specular  float32
	Shininess float32
}

// DefaultMaterial returns the template used when no other is configured.
func DefaultMaterial() *Material {
	return &Material{
		Name:      "fractal",
		Tint:      fractal.White,
		Ambient:   0.25,
		Specular:  0.35,
		Shininess: 32,
	}
}

// Color implements fractal.Material.
func (m *Material) Color() fractal.Color { return m.Tint }

// WithColor implements fractal.Material. The copy shares nothing with m.
func (m *Material) WithColor(c fractal.Color) fractal.Material {
	clone := *m
	clone.Tint = c
	return &clone
}
