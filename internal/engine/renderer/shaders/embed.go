// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// RoadVertexShader is the vertex shader for the road mesh.
//
//go:embed road.vert
var RoadVertexShader string

// RoadFragmentShader is the fragment shader for the road mesh.
//
//go:embed road.frag
var RoadFragmentShader string

// LineVertexShader is the vertex shader for colored debug lines.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader is the fragment shader for colored debug lines.
//
//go:embed line.frag
var LineFragmentShader string
