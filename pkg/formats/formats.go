// Package formats reads and writes interchange formats for generated meshes.
package formats

// Note: Wavefront OBJ and its MTL material library are implemented in obj.go
