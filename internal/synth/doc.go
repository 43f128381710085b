// Package synth derives the generated artifacts of an annotated type.
//
// For every classified type definition it produces a Bundle:
//   - a size expression, 0 followed by one heapsize call per field in
//     declaration order, each term carrying the position of its field
//   - the companion type <Name>Bson with the fixed fields a and b (uint32),
//     independent of the original fields
//   - the association of the original type with the duplicate.Marker capability
//
// Synthesis is pure: it reads go/types information and never mutates it.
package synth
