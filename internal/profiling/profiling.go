// Package profiling is a lightweight per-frame CPU profiler.
package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// SlowFrame is the frame time above which a frame is reported as slow.
const SlowFrame = 16 * time.Millisecond

// Frame accumulates named durations for one frame.
type Frame struct {
	mu     sync.Mutex
	totals map[string]time.Duration
}

// NewFrame creates an empty frame.
func NewFrame() *Frame {
	return &Frame{totals: make(map[string]time.Duration)}
}

// Track returns a stop function that records the elapsed time under name.
// Usage: defer frame.Track("renderer.Render")()
func (f *Frame) Track(name string) func() {
	start := time.Now()
	return func() {
		f.Add(name, time.Since(start))
	}
}

// Add records d under name.
func (f *Frame) Add(name string, d time.Duration) {
	f.mu.Lock()
	f.totals[name] += d
	f.mu.Unlock()
}

// Reset clears the totals. Call at the start of each frame.
func (f *Frame) Reset() {
	f.mu.Lock()
	clear(f.totals)
	f.mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func (f *Frame) Snapshot() map[string]time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]time.Duration, len(f.totals))
	for k, v := range f.totals {
		out[k] = v
	}
	return out
}

// SumWithPrefix adds up every bucket whose name starts with prefix.
func (f *Frame) SumWithPrefix(prefix string) time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum time.Duration
	for k, v := range f.totals {
		if strings.HasPrefix(k, prefix) {
			sum += v
		}
	}
	return sum
}

// TopN formats the n longest buckets, longest first.
// Example: "renderer.Render:4.2ms, app.Update:0.3ms"
func (f *Frame) TopN(n int) string {
	ss := f.Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, list[i].name+":"+formatMs(list[i].dur))
	}
	return strings.Join(parts, ", ")
}

func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	s := strings.TrimSuffix(fmt.Sprintf("%.1f", ms), ".0")
	return s + "ms"
}
