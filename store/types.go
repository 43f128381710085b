// Package store holds annotated types covering every supported field shape.
package store

// Product is an item available for sale.
//
//dupgen:derive
type Product struct {
	ID         int64
	SKU        string
	Name       string
	Tags       []string
	PriceCents int64
	Inventory  int
	Thumbnail  []byte
}

// Customer is the user placing orders.
//
//dupgen:derive
type Customer struct {
	ID       int64
	Email    string
	FullName string
	Address  *Address
	IsActive bool
}

// Address implements the heap-size capability by hand and is not annotated.
type Address struct {
	Lines []string
}

// HeapSizeOfChildren reports the bytes held by the address lines.
func (a *Address) HeapSizeOfChildren() int {
	n := 0
	for _, l := range a.Lines {
		n += len(l)
	}

	return n
}

// Order is a transaction made by a customer.
//
//dupgen:derive
type Order struct {
	ID         int64
	CustomerID int64
	Status     OrderStatus
	TotalCents int64
	Items      []OrderItem
	Billing    Address
	Buyer      *Customer
}

// OrderItem is a product line within an order.
//
//dupgen:derive
type OrderItem struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice int64
}

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// AuditedOrder embeds an order.
//
//dupgen:derive
type AuditedOrder struct {
	Order
	Note string
}

// Wrapped embeds a hand-measured address.
//
//dupgen:derive
type Wrapped struct {
	Address
	Note string
}

// Padded has a blank field that cannot be measured.
//
//dupgen:derive
type Padded struct {
	_     [8]byte
	Count uint32
}

// Tombstone has no fields.
//
//dupgen:derive
type Tombstone struct{}

// Point is a plain 2D point.
//
//dupgen:derive
type Point struct {
	X, Y float64
}

// Coordinates are addressed by position.
//
//dupgen:derive
type Coordinates [3]float64

// Segment is a pair of annotated points.
//
//dupgen:derive
type Segment [2]Point

// Nothing is a zero-length array.
//
//dupgen:derive
type Nothing [0]int

// Unmarked is not annotated and must be ignored.
type Unmarked struct {
	Index map[string]int
}

//dupgen:derive
type (
	// Left and Right share a marked declaration group.
	Left  struct{ Name string }
	Right struct{ Name string }
)
