package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"survey-service/internal/app"
	"survey-service/internal/domain"
)

// FeedStore fans result updates out through Redis Pub/Sub so subscribers on every
// instance see them. Each watched survey has one subscription on survey:feed:{id}
// whose messages are forwarded into the local app.Feed.
type FeedStore struct {
	client *redis.Client

	mu    sync.Mutex
	feeds map[string]*watchedFeed
}

type watchedFeed struct {
	feed   *app.Feed
	pubsub *redis.PubSub
	done   chan struct{}
}

func NewFeedStore(client *redis.Client) *FeedStore {
	return &FeedStore{
		client: client,
		feeds:  make(map[string]*watchedFeed),
	}
}

func (s *FeedStore) GetOrCreate(surveyID string) *app.Feed {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.feeds[surveyID]; ok {
		return w.feed
	}

	ctx := context.Background()
	pubsub := s.client.Subscribe(ctx, s.channel(surveyID))
	// wait for the confirmation so a publish right after subscribing is not missed
	if _, err := pubsub.Receive(ctx); err != nil {
		slog.Warn("feed subscription not confirmed", "survey_id", surveyID, "error", err)
	}
	w := &watchedFeed{
		feed:   app.NewFeed(surveyID),
		pubsub: pubsub,
		done:   make(chan struct{}),
	}
	go s.forward(w)
	s.feeds[surveyID] = w
	return w.feed
}

func (s *FeedStore) forward(w *watchedFeed) {
	defer close(w.done)
	for msg := range w.pubsub.Channel() {
		var results domain.Results
		if err := json.Unmarshal([]byte(msg.Payload), &results); err != nil {
			slog.Warn("dropping malformed feed message", "channel", msg.Channel, "error", err)
			continue
		}
		w.feed.Publish(results)
	}
}

func (s *FeedStore) DeleteIfEmpty(surveyID string) {
	s.mu.Lock()
	w, ok := s.feeds[surveyID]
	if !ok || !w.feed.IsEmpty() {
		s.mu.Unlock()
		return
	}
	delete(s.feeds, surveyID)
	s.mu.Unlock()

	if err := w.pubsub.Close(); err != nil {
		slog.Warn("close feed subscription", "survey_id", surveyID, "error", err)
	}
	<-w.done
}

// Publish sends results to the survey's channel. Local subscribers receive them
// through their own subscription like every other instance.
func (s *FeedStore) Publish(ctx context.Context, results domain.Results) {
	payload, err := json.Marshal(results)
	if err != nil {
		slog.Error("encode feed message", "survey_id", results.SurveyID, "error", err)
		return
	}
	if err := s.client.Publish(ctx, s.channel(results.SurveyID), payload).Err(); err != nil {
		slog.Warn("publish feed message", "survey_id", results.SurveyID, "error", err)
	}
}

func (s *FeedStore) channel(surveyID string) string {
	return "survey:feed:" + surveyID
}
