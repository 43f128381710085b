package analyze

import (
	"go/types"
	"strconv"
	"strings"
)

// TypePath builds a readable path string for a field.
// Examples:
//   - "Order" for a type
//   - "Order.Items" for a named field
//   - "Vec[1]" for a positional field
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// Index appends an index "[i]" to the last element of the path.
func (p *TypePath) Index(i int) *TypePath {
	suffix := "[" + strconv.Itoa(i) + "]"
	if len(p.parts) == 0 {
		return &TypePath{parts: []string{suffix}}
	}

	newParts := make([]string, len(p.parts))
	copy(newParts, p.parts)
	newParts[len(newParts)-1] += suffix

	return &TypePath{parts: newParts}
}

// Accessor appends a field accessor to the path.
func (p *TypePath) Accessor(a Accessor) *TypePath {
	if a.IsPositional() {
		return p.Index(a.Index)
	}

	return p.Field(a.Name)
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// FieldPath returns a path string for a field within a type.
// Example: Order, Items -> "Order.Items"
func FieldPath(typeName string, a Accessor) string {
	return NewTypePath(typeName).Accessor(a).String()
}

// TypeString renders t relative to pkg, so local types appear unqualified.
func TypeString(t types.Type, pkg *types.Package) string {
	if t == nil {
		return "<nil>"
	}

	return types.TypeString(t, types.RelativeTo(pkg))
}
