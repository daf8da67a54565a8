package pool

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// IntBufferPool implements a pool of int slices used as dynamic-programming rows
type IntBufferPool struct {
	pool sync.Pool
	size int
}

// NewIntBufferPool creates a pool whose fresh buffers have the given capacity
func NewIntBufferPool(size int) *IntBufferPool {
	return &IntBufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]int, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves a buffer of length n. Its contents are unspecified.
func (bp *IntBufferPool) Get(n int) *[]int {
	buffer := bp.pool.Get().(*[]int)
	if cap(*buffer) < n {
		*buffer = make([]int, n)
	}
	*buffer = (*buffer)[:n]
	return buffer
}

// Put returns a buffer to the pool for reuse
func (bp *IntBufferPool) Put(buffer *[]int) {
	*buffer = (*buffer)[:0]
	bp.pool.Put(buffer)
}

// CaserPool pools lowercasing casers. A cases.Caser keeps state between
// calls and must not be shared by concurrent goroutines.
type CaserPool struct {
	pool sync.Pool
}

// NewLowerCaserPool creates a pool of language-neutral lowercasers
func NewLowerCaserPool() *CaserPool {
	return &CaserPool{
		pool: sync.Pool{
			New: func() interface{} {
				c := cases.Lower(language.Und)
				return &c
			},
		},
	}
}

// String lowercases s with full Unicode case mapping.
func (cp *CaserPool) String(s string) string {
	c := cp.pool.Get().(*cases.Caser)
	defer cp.pool.Put(c)
	c.Reset()
	return c.String(s)
}
