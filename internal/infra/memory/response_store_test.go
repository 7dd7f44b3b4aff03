package memory

import (
	"context"
	"testing"

	"survey-service/internal/domain"
)

func TestResponseStoreParticipants(t *testing.T) {
	ctx := context.Background()
	store := NewResponseStore()

	if err := store.AddParticipant(ctx, "s1", "user001"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.AddParticipant(ctx, "s1", "user001"); err != domain.ErrUsernameTaken {
		t.Fatalf("expected username taken, got %v", err)
	}
	if err := store.AddParticipant(ctx, "s2", "user001"); err != nil {
		t.Fatalf("expected usernames scoped per survey, got %v", err)
	}
	ok, _ := store.HasParticipant(ctx, "s1", "user001")
	if !ok {
		t.Fatalf("expected participant present")
	}
	n, _ := store.CountParticipants(ctx, "s1")
	if n != 1 {
		t.Fatalf("expected 1 participant, got %d", n)
	}
}

func TestResponseStoreTally(t *testing.T) {
	ctx := context.Background()
	store := NewResponseStore()

	_ = store.SaveAnswer(ctx, "s1", domain.Answer{QuestionID: "q1", Username: "a", Text: "first"})
	_ = store.SaveAnswer(ctx, "s1", domain.Answer{QuestionID: "q1", Username: "b", Text: "second"})
	if err := store.SaveAnswer(ctx, "s1", domain.Answer{QuestionID: "q1", Username: "a", Text: "again"}); err != domain.ErrAlreadyAnswered {
		t.Fatalf("expected already answered, got %v", err)
	}
	_ = store.SaveVote(ctx, "s1", domain.Vote{QuestionID: "q1", Username: "a", Value: 1})
	_ = store.SaveVote(ctx, "s1", domain.Vote{QuestionID: "q1", Username: "b", Value: 1})
	_ = store.SaveVote(ctx, "s1", domain.Vote{QuestionID: "q2", Username: "a", Value: -1})
	if err := store.SaveVote(ctx, "s1", domain.Vote{QuestionID: "q1", Username: "a", Value: -1}); err != domain.ErrAlreadyVoted {
		t.Fatalf("expected already voted, got %v", err)
	}

	tally, err := store.Tally(ctx, "s1")
	if err != nil {
		t.Fatalf("tally: %v", err)
	}
	if tally["q1"].Votes != 2 || tally["q2"].Votes != -1 {
		t.Fatalf("unexpected votes %+v", tally)
	}
	if got := tally["q1"].Answers; len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("expected answers in submission order, got %v", got)
	}
}
