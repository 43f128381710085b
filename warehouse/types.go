// Package warehouse holds annotated types the generator must reject.
package warehouse

// Storage is an interface and therefore has alternatives instead of fields.
//
//dupgen:derive
type Storage interface {
	Capacity() int
}

// SKU is a named basic type.
//
//dupgen:derive
type SKU string

// Stock is an alias.
//
//dupgen:derive
type Stock = map[string]int

// Bin is generic.
//
//dupgen:derive
type Bin[T any] struct {
	Items []T
}

// Shelf has fields without the heap-size capability.
//
//dupgen:derive
type Shelf struct {
	Label  string
	Counts map[string]int
	Events chan struct{}
}

// Pallet holds pointers to strings, which cannot be measured.
//
//dupgen:derive
type Pallet [2]*string

// Crate collides with CrateBson below.
//
//dupgen:derive
type Crate struct{}

// CrateBson is declared by hand.
type CrateBson int

// Box already declares the marker method.
//
//dupgen:derive
type Box struct {
	Size int
}

// DuplicateMarker is declared by hand.
func (Box) DuplicateMarker() {}
