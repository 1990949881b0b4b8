package timing

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Recorder aggregates elapsed times in an HDR histogram, tracked in
// microseconds for precision. It satisfies the builder's
// LatencyRecorder interface and is safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	hist *hdrhistogram.Histogram
}

// NewRecorder tracks latencies between 1 microsecond and 10 minutes
// at three significant figures.
func NewRecorder() *Recorder {
	return &Recorder{
		hist: hdrhistogram.New(1, int64(10*time.Minute/time.Microsecond), 3),
	}
}

func (r *Recorder) Record(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = r.hist.RecordValue(d.Microseconds())
}

func (r *Recorder) Count() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hist.TotalCount()
}

// Percentile returns the latency at percentile p (0 < p <= 100).
func (r *Recorder) Percentile(p float64) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Duration(r.hist.ValueAtQuantile(p)) * time.Microsecond
}

func (r *Recorder) P50() time.Duration { return r.Percentile(50) }
func (r *Recorder) P95() time.Duration { return r.Percentile(95) }
func (r *Recorder) P99() time.Duration { return r.Percentile(99) }

func (r *Recorder) Min() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Duration(r.hist.Min()) * time.Microsecond
}

func (r *Recorder) Max() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Duration(r.hist.Max()) * time.Microsecond
}

func (r *Recorder) Mean() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Duration(r.hist.Mean()) * time.Microsecond
}
