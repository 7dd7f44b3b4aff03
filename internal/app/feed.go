package app

import (
	"context"
	"sync"

	"survey-service/internal/domain"
)

// FeedRepository abstracts how live result feeds are tracked and fanned out (in-memory, Redis).
type FeedRepository interface {
	GetOrCreate(surveyID string) *Feed
	DeleteIfEmpty(surveyID string)
	// Publish delivers results to every subscriber of results.SurveyID, on this
	// instance and, for shared backends, on every other instance too.
	Publish(ctx context.Context, results domain.Results)
}

// Feed fans out result snapshots for one survey to its local subscribers.
type Feed struct {
	surveyID    string
	mu          sync.Mutex
	latest      domain.Results
	subscribers map[chan domain.Results]struct{}
}

// NewFeed is exported for infrastructure layers that track feeds.
func NewFeed(surveyID string) *Feed {
	return &Feed{
		surveyID:    surveyID,
		subscribers: make(map[chan domain.Results]struct{}),
	}
}

// SurveyID returns the survey this feed belongs to.
func (f *Feed) SurveyID() string {
	return f.surveyID
}

// IsEmpty reports whether the feed has no subscribers.
func (f *Feed) IsEmpty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers) == 0
}

// Subscribe registers a subscriber primed with initial, or with the last published
// snapshot when that one is newer. cancel closes the channel.
func (f *Feed) Subscribe(initial domain.Results) (<-chan domain.Results, func()) {
	ch := make(chan domain.Results, 8)

	f.mu.Lock()
	if f.latest.UpdatedAt.After(initial.UpdatedAt) {
		initial = f.latest
	}
	// buffered and empty: never blocks, and no publish can overtake it
	ch <- initial
	f.subscribers[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subscribers[ch]; ok {
			delete(f.subscribers, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Publish sends results to every local subscriber. Older snapshots than the
// last one published are dropped.
func (f *Feed) Publish(results domain.Results) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.latest.UpdatedAt.After(results.UpdatedAt) {
		return
	}
	f.latest = results
	for ch := range f.subscribers {
		select {
		case ch <- results:
		default:
			// slow subscriber: replace the oldest snapshot with the newest
			select {
			case <-ch:
			default:
			}
			ch <- results
		}
	}
}
