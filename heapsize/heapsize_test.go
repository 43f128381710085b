package heapsize_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"type-duplicate/heapsize"
)

type blob struct {
	data []byte
}

func (b *blob) HeapSizeOfChildren() int {
	return cap(b.data)
}

type status string

type level uint8

func TestOf(t *testing.T) {
	assert.Equal(t, 4, heapsize.Of(&blob{data: make([]byte, 2, 4)}))
	assert.Equal(t, 0, heapsize.Of(nil))

	// A typed nil reaches the method.
	var nilBlob *blob
	assert.Panics(t, func() { heapsize.Of(nilBlob) })
	assert.Equal(t, 0, heapsize.OfPointer(nilBlob))
}

func TestOfScalar(t *testing.T) {
	assert.Equal(t, 0, heapsize.OfScalar(42))
	assert.Equal(t, 0, heapsize.OfScalar(true))
	assert.Equal(t, 0, heapsize.OfScalar(level(3)))
	assert.Equal(t, 0, heapsize.OfScalar(complex(1, 2)))
}

func TestOfString(t *testing.T) {
	assert.Equal(t, 0, heapsize.OfString(""))
	assert.Equal(t, 5, heapsize.OfString("hello"))
	assert.Equal(t, 6, heapsize.OfString(status("active")))
}

func TestOfSlice(t *testing.T) {
	assert.Equal(t, 0, heapsize.OfSlice([]int32(nil)))
	assert.Equal(t, 8*4, heapsize.OfSlice(make([]int32, 1, 8)))
	assert.Equal(t, 3, heapsize.OfSlice([]level{1, 2, 3}))
}

func TestOfStrings(t *testing.T) {
	s := []string{"ab", "cde"}
	want := cap(s)*int(unsafe.Sizeof("")) + 5

	assert.Equal(t, want, heapsize.OfStrings(s))
	assert.Equal(t, 0, heapsize.OfStrings([]status(nil)))
}

func TestOfSliceOf(t *testing.T) {
	s := []blob{{data: make([]byte, 3)}, {data: make([]byte, 0, 7)}}
	want := cap(s)*int(unsafe.Sizeof(blob{})) + 3 + 7

	assert.Equal(t, want, heapsize.OfSliceOf(s))
	assert.Equal(t, 0, heapsize.OfSliceOf([]blob(nil)))
}

func TestOfPointer(t *testing.T) {
	var nilBlob *blob
	assert.Equal(t, 0, heapsize.OfPointer(nilBlob))

	b := &blob{data: make([]byte, 10)}
	assert.Equal(t, int(unsafe.Sizeof(blob{}))+10, heapsize.OfPointer(b))
}
