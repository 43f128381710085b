package synth

import (
	"go/token"
	"strings"

	"type-duplicate/internal/analyze"
)

// Names used in generated code.
const (
	// Receiver is the receiver name of the generated size method.
	Receiver = "x"
	// SizeMethod is the size-measurement capability method.
	SizeMethod = "HeapSizeOfChildren"
	// MarkerMethod is the only method of the marker capability.
	MarkerMethod = "DuplicateMarker"
	// MarkerInterface is the marker capability as referenced from generated code.
	MarkerInterface = "duplicate.Marker"
	// SizerInterface is the size capability as referenced from generated code.
	SizerInterface = "heapsize.HeapSizer"
)

// Term is one field's contribution to a size expression.
type Term struct {
	Field analyze.Accessor
	// Call is the Go expression measuring the field, e.g. heapsize.OfString(x.Name).
	Call string
	// Span is the position of the field the term was derived from.
	Span token.Position
}

// SizeExpr is the sum of a literal 0 and one term per field.
type SizeExpr struct {
	Receiver string
	Terms    []Term
}

// String renders the expression on a single line.
func (e SizeExpr) String() string {
	var sb strings.Builder

	sb.WriteString("0")

	for _, t := range e.Terms {
		sb.WriteString(" + ")
		sb.WriteString(t.Call)
	}

	return sb.String()
}

// DerivedField is one field of the generated companion type.
type DerivedField struct {
	Name string
	Type string
}

// DerivedType is the generated companion type.
type DerivedType struct {
	Name   string
	Fields []DerivedField
	// Printable adds a String method rendering the debug form.
	Printable bool
	// Serializable adds JSON marshalling.
	Serializable bool
}

// MarkerAssociation binds the original type to the marker capability.
type MarkerAssociation struct {
	TypeName  string
	Interface string
	Method    string
}

// Bundle is everything generated for one original type.
type Bundle struct {
	Original analyze.TypeID
	Pos      token.Position
	Shape    analyze.ShapeKind
	Size     SizeExpr
	Derived  DerivedType
	Marker   MarkerAssociation
}
