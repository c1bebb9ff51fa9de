// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// FractalVertexShader transforms lit, flat-shaded primitives.
//
//go:embed fractal.vert
var FractalVertexShader string

// FractalFragmentShader shades primitives with one directional light.
//
//go:embed fractal.frag
var FractalFragmentShader string
