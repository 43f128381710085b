package analyze

import (
	"fmt"
	"go/token"
	"go/types"
	"strconv"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "type-duplicate/store"
	Name    string // e.g., "Order"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

//go:generate go tool stringer -type=ShapeKind -trimprefix=Shape -output=shapekind_string.go

// ShapeKind is the structural category of a type's fields.
type ShapeKind int

const (
	ShapeNone       ShapeKind = iota // no fields
	ShapePositional                  // fields addressed by index
	ShapeNamed                       // fields addressed by name
)

// Accessor addresses one field: by index for positional shapes, by name otherwise.
type Accessor struct {
	Index int
	Name  string
}

// IndexAccessor returns a positional accessor.
func IndexAccessor(i int) Accessor {
	return Accessor{Index: i}
}

// NameAccessor returns a named accessor.
func NameAccessor(name string) Accessor {
	return Accessor{Name: name}
}

// IsPositional reports whether the accessor is an index.
func (a Accessor) IsPositional() bool {
	return a.Name == ""
}

// String returns the index or the field name.
func (a Accessor) String() string {
	if a.IsPositional() {
		return strconv.Itoa(a.Index)
	}

	return a.Name
}

// Selector returns the Go expression reading the field from recv.
func (a Accessor) Selector(recv string) string {
	if a.IsPositional() {
		return recv + "[" + strconv.Itoa(a.Index) + "]"
	}

	return recv + "." + a.Name
}

// FieldDescriptor describes one field of a classified type.
type FieldDescriptor struct {
	Accessor Accessor
	Span     token.Position // where diagnostics about this field are reported
	Type     types.Type
}

// FieldShape is the classified field layout of a type.
type FieldShape struct {
	Kind   ShapeKind
	Fields []FieldDescriptor
}

// NoFields returns the empty shape.
func NoFields() FieldShape {
	return FieldShape{Kind: ShapeNone}
}

// PositionalFields returns a shape of index-addressed fields.
func PositionalFields(fields ...FieldDescriptor) FieldShape {
	return FieldShape{Kind: ShapePositional, Fields: fields}
}

// NamedFields returns a shape of name-addressed fields.
func NamedFields(fields ...FieldDescriptor) FieldShape {
	return FieldShape{Kind: ShapeNamed, Fields: fields}
}

// Len returns the number of fields.
func (s FieldShape) Len() int {
	return len(s.Fields)
}

// TypeDef is an annotated type definition after classification.
type TypeDef struct {
	ID    TypeID
	Pos   token.Position
	Shape FieldShape
	// Named is the go/types view of the definition, used for capability and
	// collision checks.
	Named *types.Named
	// Skipped holds blank fields, which cannot be addressed.
	Skipped []FieldDescriptor
}

// ShapeError reports a type definition whose shape cannot be processed.
type ShapeError struct {
	Type   string
	Pos    token.Position
	Reason string
}

func (e *ShapeError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: type %s is not supported: %s", e.Pos, e.Type, e.Reason)
	}

	return fmt.Sprintf("type %s is not supported: %s", e.Type, e.Reason)
}

// PackageInfo holds the annotated definitions of one loaded package.
type PackageInfo struct {
	Path  string // Import path
	Name  string // Package name
	Dir   string // Source directory
	Defs  []TypeDef
	Types *types.Package
	Fset  *token.FileSet
}
