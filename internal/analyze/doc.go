// Package analyze finds annotated type definitions and classifies their fields.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to locate type
// specs carrying the //dupgen:derive directive and reduce each one to a closed
// field shape:
//   - ShapeNone: struct{} or a zero-length array
//   - ShapePositional: an array type, fields addressed by index
//   - ShapeNamed: a struct type, fields addressed by name
//
// Interfaces, aliases, generic types and named non-struct, non-array types are
// rejected with a ShapeError.
package analyze
