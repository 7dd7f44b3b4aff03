package memory

import (
	"context"
	"testing"

	"survey-service/internal/domain"
)

func TestFeedStoreLifecycle(t *testing.T) {
	store := NewFeedStore()

	feed := store.GetOrCreate("survey-1")
	if feed == nil {
		t.Fatalf("expected feed")
	}
	if again := store.GetOrCreate("survey-1"); again != feed {
		t.Fatalf("expected same feed instance")
	}

	store.DeleteIfEmpty("survey-1")
	if store.Len() != 0 {
		t.Fatalf("expected feed removed when empty")
	}
}

func TestFeedStorePublishReachesSubscribers(t *testing.T) {
	ctx := context.Background()
	store := NewFeedStore()

	// nobody is watching yet
	store.Publish(ctx, domain.Results{SurveyID: "survey-1", Participants: 1})
	if store.Len() != 0 {
		t.Fatalf("publishing must not create feeds")
	}

	ch, cancel := store.GetOrCreate("survey-1").Subscribe(domain.Results{SurveyID: "survey-1"})
	defer cancel()
	<-ch

	store.Publish(ctx, domain.Results{SurveyID: "survey-1", Participants: 4})
	if got := <-ch; got.Participants != 4 {
		t.Fatalf("expected published results, got %+v", got)
	}

	store.DeleteIfEmpty("survey-1")
	if store.Len() != 1 {
		t.Fatalf("a watched feed must survive DeleteIfEmpty")
	}
}
