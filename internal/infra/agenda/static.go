package agenda

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/outfit-concierge/internal/domain/dayplan"
	"github.com/yanqian/outfit-concierge/pkg/util"
)

// StaticProvider serves calendar events from process memory, keyed by user and
// day. Used for demos and tests when no calendar integration is configured.
type StaticProvider struct {
	mu     sync.RWMutex
	events map[string][]dayplan.Event
}

// NewStaticProvider constructs an empty provider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{events: make(map[string][]dayplan.Event)}
}

// SetEvents replaces the events for one user and day.
func (p *StaticProvider) SetEvents(userID string, day time.Time, events []dayplan.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events[key(userID, day)] = events
}

func (p *StaticProvider) Events(_ context.Context, userID string, day time.Time) ([]dayplan.Event, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.events[key(userID, day)], nil
}

func key(userID string, day time.Time) string {
	return userID + ":" + util.DayKey(day)
}

var _ dayplan.EventsProvider = (*StaticProvider)(nil)
