package stats

import (
	"sync"
	"testing"
	"time"
)

func TestLatencyHistogram(t *testing.T) {
	t.Run("CountAndAverage", func(t *testing.T) {
		h := NewLatencyHistogram()

		h.AddSample(time.Millisecond)
		h.AddSample(3 * time.Millisecond)

		if h.Count() != 2 {
			t.Errorf("expected 2 samples, got %d", h.Count())
		}
		if h.Average() != 2*time.Millisecond {
			t.Errorf("expected average 2ms, got %v", h.Average())
		}
	})

	t.Run("Empty", func(t *testing.T) {
		h := NewLatencyHistogram()

		if h.Count() != 0 {
			t.Errorf("expected 0 samples, got %d", h.Count())
		}
		if h.Average() != 0 {
			t.Errorf("expected zero average on an empty histogram")
		}
		if h.PercentileEstimate(99) != 0 {
			t.Errorf("expected zero percentile on an empty histogram")
		}
	})

	t.Run("PercentileEstimates", func(t *testing.T) {
		h := NewLatencyHistogram()

		// 90 fast samples, 10 slow ones
		for i := 0; i < 90; i++ {
			h.AddSample(100 * time.Microsecond)
		}
		for i := 0; i < 10; i++ {
			h.AddSample(100 * time.Millisecond)
		}

		p50 := h.PercentileEstimate(50)
		p99 := h.PercentileEstimate(99)

		if p50 > time.Millisecond {
			t.Errorf("p50 should be in the fast bucket, got %v", p50)
		}
		if p99 < 10*time.Millisecond {
			t.Errorf("p99 should be in the slow bucket, got %v", p99)
		}
		if h.MedianEstimate() != p50 {
			t.Errorf("median must equal the 50th percentile")
		}
	})

	t.Run("InvalidPercentile", func(t *testing.T) {
		h := NewLatencyHistogram()
		h.AddSample(time.Millisecond)

		if h.PercentileEstimate(-1) != 0 || h.PercentileEstimate(101) != 0 {
			t.Errorf("out-of-range percentiles must return 0")
		}
	})

	t.Run("Reset", func(t *testing.T) {
		h := NewLatencyHistogram()
		h.AddSample(time.Second)
		h.Reset()

		if h.Count() != 0 {
			t.Errorf("expected empty histogram after reset, got %d samples", h.Count())
		}
	})

	t.Run("Distribution", func(t *testing.T) {
		h := NewLatencyHistogram()
		h.AddSample(time.Microsecond)
		h.AddSample(time.Minute) // beyond the last boundary

		boundaries, percentages := h.Distribution()
		if len(percentages) != len(boundaries)+1 {
			t.Fatalf("expected one more bucket than boundaries")
		}

		var total float64
		for _, p := range percentages {
			total += p
		}
		if total < 99.9 || total > 100.1 {
			t.Errorf("percentages must sum to 100, got %f", total)
		}
	})

	t.Run("ConcurrentSampling", func(t *testing.T) {
		h := NewLatencyHistogram()

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 1000; i++ {
					h.AddSample(time.Duration(i) * time.Microsecond)
				}
			}()
		}
		wg.Wait()

		if h.Count() != 8000 {
			t.Errorf("expected 8000 samples, got %d", h.Count())
		}
	})
}
