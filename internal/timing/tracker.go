package timing

import (
	"context"
	"sync"
	"time"
)

type timingKey struct{}

type TimingInfo struct {
	Operation string
	StartTime time.Time
}

// Tracker records how long each pipeline stage took.
type Tracker struct {
	timings map[string][]time.Duration
	order   []string
	mu      sync.RWMutex
	now     func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		timings: make(map[string][]time.Duration),
		now:     time.Now,
	}
}

func (tt *Tracker) StartTiming(operation string) context.Context {
	return context.WithValue(context.Background(), timingKey{}, TimingInfo{
		Operation: operation,
		StartTime: tt.now(),
	})
}

// EndTiming stores the elapsed time and returns it. Contexts not produced by
// StartTiming are ignored.
func (tt *Tracker) EndTiming(ctx context.Context) time.Duration {
	info, ok := ctx.Value(timingKey{}).(TimingInfo)
	if !ok {
		return 0
	}

	duration := tt.now().Sub(info.StartTime)

	tt.mu.Lock()
	if _, seen := tt.timings[info.Operation]; !seen {
		tt.order = append(tt.order, info.Operation)
	}
	tt.timings[info.Operation] = append(tt.timings[info.Operation], duration)
	tt.mu.Unlock()

	return duration
}

func (tt *Tracker) GetTimings(operation string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[operation]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

// Operations lists recorded operations in the order they first finished.
func (tt *Tracker) Operations() []string {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	result := make([]string, len(tt.order))
	copy(result, tt.order)
	return result
}

func (tt *Tracker) Total() time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	var total time.Duration
	for _, timings := range tt.timings {
		for _, d := range timings {
			total += d
		}
	}
	return total
}
