package memory

import (
	"context"
	"sync"

	"survey-service/internal/app"
	"survey-service/internal/domain"
)

// FeedStore keeps result feeds in process; publishes only reach this instance.
type FeedStore struct {
	mu    sync.Mutex
	feeds map[string]*app.Feed
}

func NewFeedStore() *FeedStore {
	return &FeedStore{
		feeds: make(map[string]*app.Feed),
	}
}

func (s *FeedStore) GetOrCreate(surveyID string) *app.Feed {
	s.mu.Lock()
	defer s.mu.Unlock()
	if feed, ok := s.feeds[surveyID]; ok {
		return feed
	}
	feed := app.NewFeed(surveyID)
	s.feeds[surveyID] = feed
	return feed
}

func (s *FeedStore) DeleteIfEmpty(surveyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if feed, ok := s.feeds[surveyID]; ok && feed.IsEmpty() {
		delete(s.feeds, surveyID)
	}
}

// Publish is a no-op for surveys nobody watches.
func (s *FeedStore) Publish(_ context.Context, results domain.Results) {
	s.mu.Lock()
	feed, ok := s.feeds[results.SurveyID]
	s.mu.Unlock()
	if ok {
		feed.Publish(results)
	}
}

// Len reports how many surveys currently have a feed.
func (s *FeedStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.feeds)
}
