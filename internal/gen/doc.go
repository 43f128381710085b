// Package gen renders the companion code of annotated types.
//
// Generation approach uses text/template + go/format for readable,
// deterministic Go code. One file is emitted per package and holds, for each
// annotated type in declaration order:
//   - The companion record type with its String and JSON methods
//   - The DuplicateMarker method and the compile-time capability assertions
//
// followed by every HeapSizeOfChildren method. Size methods come last so that
// optional line directives inside them cannot shift the positions of other
// declarations.
package gen
