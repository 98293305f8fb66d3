package util

import (
	"sync"

	"github.com/asecurityteam/rolling"
)

func CreateRollingWindow(size int) *rolling.PointPolicy {
	return rolling.NewPointPolicy(rolling.NewWindow(size))
}

// SampleWindow holds the most recent temperature readings and provides
// their moving average. When the window is full, the oldest sample is evicted.
type SampleWindow struct {
	mu       sync.Mutex
	capacity int
	// total number of samples ever appended, used to locate the oldest bucket
	appended int
	window   *rolling.PointPolicy
}

func NewSampleWindow(capacity int) *SampleWindow {
	if capacity < 1 {
		capacity = 1
	}
	return &SampleWindow{
		capacity: capacity,
		window:   CreateRollingWindow(capacity),
	}
}

// AddSample appends the given value and returns the average of all samples currently held.
// While the window is not yet full, the average is computed over fewer samples.
func (w *SampleWindow) AddSample(value float64) float64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.window.Append(value)
	w.appended++
	return Avg(w.samples())
}

// Len returns the number of samples currently held
func (w *SampleWindow) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return min(w.appended, w.capacity)
}

func (w *SampleWindow) Capacity() int {
	return w.capacity
}

// Samples returns a copy of the samples currently held, oldest first
func (w *SampleWindow) Samples() []float64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.samples()
}

func (w *SampleWindow) samples() []float64 {
	count := min(w.appended, w.capacity)
	result := make([]float64, 0, count)
	if count == 0 {
		return result
	}

	// buckets are filled round-robin, so once the window is full
	// the next bucket to be overwritten holds the oldest sample
	start := 0
	if w.appended >= w.capacity {
		start = w.appended % w.capacity
	}
	w.window.Reduce(func(window rolling.Window) float64 {
		for i := 0; i < count; i++ {
			bucket := window[(start+i)%len(window)]
			if len(bucket) > 0 {
				result = append(result, bucket[len(bucket)-1])
			}
		}
		return 0
	})
	return result
}
