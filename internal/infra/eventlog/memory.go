package eventlog

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/outfit-concierge/internal/domain/stylist"
)

// MemoryRecorder keeps recommendation events in process memory.
type MemoryRecorder struct {
	mu     sync.Mutex
	events []stylist.RecommendationEvent
	counts map[string]int64
}

// NewMemoryRecorder constructs an empty recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{counts: make(map[string]int64)}
}

func (r *MemoryRecorder) RecordRecommendation(_ context.Context, event stylist.RecommendationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	if event.Mood != "" {
		r.counts[event.Mood]++
	}
	return nil
}

func (r *MemoryRecorder) TrendingMoods(_ context.Context, limit int) ([]stylist.MoodCount, error) {
	if limit <= 0 {
		limit = 10
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]stylist.MoodCount, 0, len(r.counts))
	for mood, count := range r.counts {
		out = append(out, stylist.MoodCount{Mood: mood, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Mood < out[j].Mood
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Events returns a copy of everything recorded, oldest first.
func (r *MemoryRecorder) Events() []stylist.RecommendationEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]stylist.RecommendationEvent, len(r.events))
	copy(out, r.events)
	return out
}

var _ stylist.EventRecorder = (*MemoryRecorder)(nil)
