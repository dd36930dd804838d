package buffer

import (
	"math/bits"
	"sync"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// ISource supplies reusable byte buffers on demand. Implementations must be
// safe for concurrent use. A buffer obtained from Acquire is owned
// exclusively by the caller until it is handed back via Release.
type ISource interface {
	// Acquire returns a buffer with len == size and cap >= size
	Acquire(size int) []byte

	// Release returns a buffer to the source for reuse. Releasing a buffer
	// that did not come from this source is allowed and simply discards it.
	Release(buf []byte)
}

// --------------------------------------------------------------------------
// Pooled implementation
// --------------------------------------------------------------------------

const (
	// minClassBits is the smallest pooled size class (32 bytes)
	minClassBits = 5
	// maxClassBits is the largest pooled size class (16 MB); larger buffers
	// bypass the pools entirely
	maxClassBits = 24
)

// pooledSource implements ISource with one sync.Pool per power-of-two size
// class between minClassBits and maxClassBits.
type pooledSource struct {
	pools [maxClassBits - minClassBits + 1]sync.Pool
}

// NewPooledSource creates a buffer source backed by size-class pools.
func NewPooledSource() ISource {
	s := &pooledSource{}
	for i := range s.pools {
		capacity := 1 << (minClassBits + i)
		s.pools[i].New = func() interface{} {
			return make([]byte, capacity)
		}
	}
	return s
}

// classIndex returns the pool index for a size, or -1 if the size is not pooled
func classIndex(size int) int {
	if size <= 0 {
		return 0
	}
	classBits := bits.Len(uint(size - 1))
	if classBits < minClassBits {
		return 0
	}
	if classBits > maxClassBits {
		return -1
	}
	return classBits - minClassBits
}

func (s *pooledSource) Acquire(size int) []byte {
	idx := classIndex(size)
	if idx < 0 {
		// Oversize request, allocate directly
		return make([]byte, size)
	}
	buf := s.pools[idx].Get().([]byte)
	return buf[:size]
}

func (s *pooledSource) Release(buf []byte) {
	capacity := cap(buf)
	if capacity < 1<<minClassBits {
		return
	}
	classBits := bits.Len(uint(capacity)) - 1
	if classBits > maxClassBits {
		return
	}
	// Only pool buffers whose capacity is exactly a size class, so that a
	// pooled buffer can always satisfy any request of its class
	if capacity != 1<<classBits {
		return
	}
	s.pools[classBits-minClassBits].Put(buf[:capacity])
}
