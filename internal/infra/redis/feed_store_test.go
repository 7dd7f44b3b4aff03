package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"survey-service/internal/domain"
)

func TestFeedStoreFansOutAcrossInstances(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	watching := NewFeedStore(newClient(mr))
	answering := NewFeedStore(newClient(mr))

	ch, cancel := watching.GetOrCreate("survey-1").Subscribe(domain.Results{SurveyID: "survey-1"})
	<-ch

	answering.Publish(ctx, domain.Results{SurveyID: "survey-1", Participants: 2, UpdatedAt: time.Now()})

	select {
	case got := <-ch:
		if got.SurveyID != "survey-1" || got.Participants != 2 {
			t.Fatalf("unexpected results %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected results published on another instance")
	}

	cancel()
	watching.DeleteIfEmpty("survey-1")
	if n := len(watching.feeds); n != 0 {
		t.Fatalf("expected the unwatched feed to be dropped, %d left", n)
	}
}

func TestFeedStoreIgnoresMalformedMessages(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewFeedStore(newClient(mr))
	ch, cancel := store.GetOrCreate("survey-1").Subscribe(domain.Results{SurveyID: "survey-1"})
	defer cancel()
	<-ch

	mr.Publish("survey:feed:survey-1", "{not json")
	store.Publish(ctx, domain.Results{SurveyID: "survey-1", Participants: 5, UpdatedAt: time.Now()})

	select {
	case got := <-ch:
		if got.Participants != 5 {
			t.Fatalf("expected the well formed message, got %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected results after a malformed message")
	}
}
