package stats

import (
	"math"
	"sync"
	"time"
)

// ----------------------------------------------------------------------------
// LatencyHistogram
// ----------------------------------------------------------------------------

// LatencyHistogram tracks the distribution of round-trip wait times.
// It organizes samples into buckets for efficient memory usage while still
// providing accurate latency estimations. Supports tracking values from
// microseconds to multiple seconds.
type LatencyHistogram struct {
	mutex      sync.RWMutex
	boundaries []time.Duration // Bucket boundaries covering µs to multi-second range
	buckets    []int64         // Count of samples in each bucket
	count      int64           // Total number of samples
	sum        time.Duration   // Sum of all sampled durations
}

// NewLatencyHistogram creates a new latency histogram with default bucket
// boundaries calibrated to handle round trips from microseconds to seconds.
func NewLatencyHistogram() *LatencyHistogram {
	// Using exponential bucket sizes to cover a wide range efficiently
	return &LatencyHistogram{
		boundaries: []time.Duration{
			16 * time.Microsecond, 64 * time.Microsecond, 256 * time.Microsecond,
			time.Millisecond, 4 * time.Millisecond, 16 * time.Millisecond,
			64 * time.Millisecond, 256 * time.Millisecond,
			time.Second, 4 * time.Second, 16 * time.Second,
		},
		buckets: make([]int64, 12), // 11 boundaries + 1 for larger values
	}
}

// AddSample adds a round-trip duration to the histogram
//
// Thread-safe: This method is safe for concurrent use
func (h *LatencyHistogram) AddSample(d time.Duration) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	// Find the appropriate bucket for this duration
	bucketIndex := 0
	for i, boundary := range h.boundaries {
		if d <= boundary {
			bucketIndex = i
			break
		}
		bucketIndex = len(h.boundaries) // Last bucket for all larger values
	}

	// Update statistics
	h.buckets[bucketIndex]++
	h.count++
	h.sum += d
}

// Count returns the total number of samples
//
// Thread-safe: This method is safe for concurrent use
func (h *LatencyHistogram) Count() int64 {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.count
}

// Average returns the mean round-trip duration across all samples
//
// Thread-safe: This method is safe for concurrent use
func (h *LatencyHistogram) Average() time.Duration {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if h.count == 0 {
		return 0
	}
	return h.sum / time.Duration(h.count)
}

// MedianEstimate estimates the median round trip based on the histogram
//
// Thread-safe: This method is safe for concurrent use
func (h *LatencyHistogram) MedianEstimate() time.Duration {
	return h.PercentileEstimate(50)
}

// PercentileEstimate returns an estimate for the given percentile (0-100)
//
// Thread-safe: This method is safe for concurrent use
func (h *LatencyHistogram) PercentileEstimate(percentile int) time.Duration {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if h.count == 0 || percentile < 0 || percentile > 100 {
		return 0
	}

	// Calculate target count for percentile
	targetCount := int64(math.Ceil(float64(h.count) * float64(percentile) / 100.0))
	cumulativeCount := int64(0)

	for i, count := range h.buckets {
		cumulativeCount += count
		if cumulativeCount >= targetCount {
			// Found the percentile bucket
			if i == 0 {
				// For the first bucket, estimate as half of the boundary
				return h.boundaries[0] / 2
			} else if i < len(h.boundaries) {
				// For middle buckets, use the average of boundaries
				return (h.boundaries[i-1] + h.boundaries[i]) / 2
			} else {
				// For the last bucket, estimate as 2x the last boundary
				return h.boundaries[len(h.boundaries)-1] * 2
			}
		}
	}

	// Shouldn't happen but as a fallback
	return h.sum / time.Duration(h.count)
}

// Reset clears all histogram data
//
// Thread-safe: This method is safe for concurrent use
func (h *LatencyHistogram) Reset() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.count = 0
	h.sum = 0
	for i := range h.buckets {
		h.buckets[i] = 0
	}
}

// Distribution returns the bucket boundaries and the percentage of samples
// in each bucket
//
// Thread-safe: This method is safe for concurrent use
func (h *LatencyHistogram) Distribution() ([]time.Duration, []float64) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if h.count == 0 {
		return h.boundaries, make([]float64, len(h.buckets))
	}

	// Calculate percentages
	percentages := make([]float64, len(h.buckets))
	for i, count := range h.buckets {
		percentages[i] = float64(count) * 100.0 / float64(h.count)
	}

	return h.boundaries, percentages
}
