// Package heapsize defines the size-measurement capability used by dupgen output.
//
// Generated HeapSizeOfChildren methods call one helper per field. The helpers are
// constrained generically, so a field whose type lacks the capability fails to
// compile at the call for that field.
package heapsize

import "unsafe"

// HeapSizer reports the heap memory owned by a value, excluding the value itself.
type HeapSizer interface {
	HeapSizeOfChildren() int
}

// Scalar lists the kinds that never own heap memory.
type Scalar interface {
	~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 |
		~complex64 | ~complex128
}

// Of measures a value implementing the capability. A nil sizer owns nothing.
//
// Only a nil interface counts as nil. A typed nil pointer is passed to its
// HeapSizeOfChildren method, and generated methods dereference their receiver,
// so measure pointers that may be nil with OfPointer.
func Of(v HeapSizer) int {
	if v == nil {
		return 0
	}

	return v.HeapSizeOfChildren()
}

// OfScalar always returns 0.
func OfScalar[T Scalar](T) int {
	return 0
}

// OfString returns the length of the string's backing bytes.
func OfString[T ~string](s T) int {
	return len(s)
}

// OfSlice returns the size of the backing array of a slice of scalars.
func OfSlice[S ~[]E, E Scalar](s S) int {
	var zero E

	return cap(s) * int(unsafe.Sizeof(zero))
}

// OfStrings returns the backing array size plus the bytes of every string.
func OfStrings[S ~[]E, E ~string](s S) int {
	var zero E

	n := cap(s) * int(unsafe.Sizeof(zero))
	for _, v := range s {
		n += len(v)
	}

	return n
}

// OfSliceOf returns the backing array size plus what every element owns.
func OfSliceOf[S ~[]E, E any, P interface {
	*E
	HeapSizer
}](s S) int {
	var zero E

	n := cap(s) * int(unsafe.Sizeof(zero))
	for i := range s {
		n += P(&s[i]).HeapSizeOfChildren()
	}

	return n
}

// OfPointer returns the size of the pointee plus what it owns, or 0 for nil.
func OfPointer[T any, P interface {
	*T
	HeapSizer
}](p P) int {
	if (*T)(p) == nil {
		return 0
	}

	var zero T

	return int(unsafe.Sizeof(zero)) + p.HeapSizeOfChildren()
}
