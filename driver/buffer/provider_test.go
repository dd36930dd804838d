package buffer

import (
	"sync"
	"testing"
)

func TestPooledSource(t *testing.T) {
	t.Run("AcquireReturnsRequestedLength", func(t *testing.T) {
		source := NewPooledSource()

		for _, size := range []int{1, 16, 32, 33, 1024, 4096, 100_000} {
			buf := source.Acquire(size)
			if len(buf) != size {
				t.Errorf("Acquire(%d): len = %d, want %d", size, len(buf), size)
			}
			if cap(buf) < size {
				t.Errorf("Acquire(%d): cap = %d, want >= %d", size, cap(buf), size)
			}
			source.Release(buf)
		}
	})

	t.Run("OversizeBypassesPools", func(t *testing.T) {
		source := NewPooledSource()

		size := (1 << maxClassBits) + 1
		buf := source.Acquire(size)
		if len(buf) != size {
			t.Fatalf("len = %d, want %d", len(buf), size)
		}
		// Releasing an oversize buffer must not panic
		source.Release(buf)
	})

	t.Run("ReleaseOfForeignBufferIsIgnored", func(t *testing.T) {
		source := NewPooledSource()
		// Odd capacity, not a size class
		source.Release(make([]byte, 100))
	})

	t.Run("ConcurrentUse", func(t *testing.T) {
		source := NewPooledSource()

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 1000; i++ {
					buf := source.Acquire(16 + i%2048)
					buf[0] = byte(i)
					source.Release(buf)
				}
			}()
		}
		wg.Wait()
	})
}

func TestClassIndex(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{0, 0},
		{1, 0},
		{32, 0},
		{33, 1},
		{64, 1},
		{65, 2},
		{1 << maxClassBits, maxClassBits - minClassBits},
		{(1 << maxClassBits) + 1, -1},
	}

	for _, tt := range tests {
		if got := classIndex(tt.size); got != tt.want {
			t.Errorf("classIndex(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}
