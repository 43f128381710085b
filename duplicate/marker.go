// Package duplicate holds the naming convention and the marker capability shared by
// dupgen and the code it generates.
package duplicate

// Suffix is appended to an original type name to form the name of its generated companion.
const Suffix = "Bson"

// Marker is implemented by every type processed by dupgen.
// It carries no behaviour; it only tags the type.
type Marker interface {
	DuplicateMarker()
}

// DerivedName returns the companion type name for the given original type name.
func DerivedName(name string) string {
	return name + Suffix
}

// IsMarked reports whether v (or a pointer to it) was processed by dupgen.
func IsMarked(v any) bool {
	_, ok := v.(Marker)
	return ok
}
