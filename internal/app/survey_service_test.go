package app_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"survey-service/internal/app"
	"survey-service/internal/domain"
	"survey-service/internal/infra/memory"
)

func TestEnrollAndAnswer(t *testing.T) {
	ctx := context.Background()
	service, survey := newTestService()

	username, err := service.Enroll(ctx, survey.ID)
	if err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if !strings.HasPrefix(username, "user") {
		t.Fatalf("expected generated username, got %q", username)
	}

	results, err := service.Answer(ctx, survey.ID, username, survey.Questions[0].ID, "  more buses  ")
	if err != nil {
		t.Fatalf("answer failed: %v", err)
	}
	if results.Participants != 1 {
		t.Fatalf("expected 1 participant, got %d", results.Participants)
	}
	if got := results.Questions[0].Answers; len(got) != 1 || got[0] != "more buses" {
		t.Fatalf("expected trimmed answer recorded, got %v", got)
	}

	if _, err := service.Answer(ctx, survey.ID, username, survey.Questions[0].ID, "again"); err != domain.ErrAlreadyAnswered {
		t.Fatalf("expected already answered, got %v", err)
	}
}

func TestVoteValidation(t *testing.T) {
	ctx := context.Background()
	service, survey := newTestService()
	username, _ := service.Enroll(ctx, survey.ID)
	qid := survey.Questions[1].ID

	if _, err := service.Vote(ctx, survey.ID, username, qid, 2); err != domain.ErrInvalidVote {
		t.Fatalf("expected invalid vote, got %v", err)
	}
	results, err := service.Vote(ctx, survey.ID, username, qid, -1)
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if results.Questions[1].Votes != -1 {
		t.Fatalf("expected -1 votes, got %d", results.Questions[1].Votes)
	}
	if _, err := service.Vote(ctx, survey.ID, username, qid, 1); err != domain.ErrAlreadyVoted {
		t.Fatalf("expected already voted, got %v", err)
	}
}

func TestVotesAreLimitedPerQuestion(t *testing.T) {
	ctx := context.Background()
	service, survey := newTestService()
	username, _ := service.Enroll(ctx, survey.ID)
	first, second := survey.Questions[0].ID, survey.Questions[1].ID

	if _, err := service.Vote(ctx, survey.ID, username, first, 1); err != nil {
		t.Fatalf("vote on first question: %v", err)
	}
	results, err := service.Vote(ctx, survey.ID, username, second, 1)
	if err != nil {
		t.Fatalf("vote on second question: %v", err)
	}
	if results.Questions[0].Votes != 1 || results.Questions[1].Votes != 1 {
		t.Fatalf("expected one vote on each question, got %+v", results.Questions)
	}
	if _, err := service.Vote(ctx, survey.ID, username, first, -1); err != domain.ErrAlreadyVoted {
		t.Fatalf("expected already voted on first question, got %v", err)
	}
}

func TestResponsesRequireParticipant(t *testing.T) {
	ctx := context.Background()
	service, survey := newTestService()
	qid := survey.Questions[0].ID

	if _, err := service.Answer(ctx, "missing", "user001", qid, "x"); err != domain.ErrSurveyNotFound {
		t.Fatalf("expected survey error, got %v", err)
	}
	if _, err := service.Answer(ctx, survey.ID, "user001", qid, "x"); err != domain.ErrParticipantNotFound {
		t.Fatalf("expected participant error, got %v", err)
	}
	if _, err := service.Answer(ctx, survey.ID, "user001", "nope", "x"); err != domain.ErrQuestionNotFound {
		t.Fatalf("expected question error, got %v", err)
	}
	if _, err := service.Answer(ctx, survey.ID, "user001", qid, "   "); err != domain.ErrEmptyAnswer {
		t.Fatalf("expected empty answer error, got %v", err)
	}
}

func TestLoginRestoresParticipant(t *testing.T) {
	ctx := context.Background()
	service, survey := newTestService()
	username, _ := service.Enroll(ctx, survey.ID)

	got, err := service.Login(ctx, survey.ID, username)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if got.ID != survey.ID {
		t.Fatalf("expected survey returned, got %+v", got)
	}
	if _, err := service.Login(ctx, survey.ID, "stranger"); err != domain.ErrParticipantNotFound {
		t.Fatalf("expected participant error, got %v", err)
	}
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	ctx := context.Background()
	service, survey := newTestService()
	username, _ := service.Enroll(ctx, survey.ID)

	ch, cancel, err := service.Subscribe(ctx, survey.ID)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer cancel()

	initial := <-ch
	if initial.Participants != 1 {
		t.Fatalf("expected initial snapshot with 1 participant, got %+v", initial)
	}

	if _, err := service.Vote(ctx, survey.ID, username, survey.Questions[0].ID, 1); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	select {
	case update := <-ch:
		if update.Questions[0].Votes != 1 {
			t.Fatalf("expected updated votes 1, got %+v", update.Questions)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected update")
	}
}

func TestSubscribeUnknownSurvey(t *testing.T) {
	service, _ := newTestService()
	if _, _, err := service.Subscribe(context.Background(), "missing"); err != domain.ErrSurveyNotFound {
		t.Fatalf("expected survey error, got %v", err)
	}
}

func newTestService() (*app.SurveyService, domain.Survey) {
	survey := domain.Survey{
		Title:       "City transit",
		Description: "How should the city spend its transit budget?",
		Questions: []domain.Question{
			{Text: "What would make you ride the bus more often?"},
			{Text: "Which tram line needs more capacity?"},
		},
	}
	survey.AssignIDs()
	repo := memory.NewSurveyRepository(memory.NewStaticSurveyLoader(survey), time.Minute)
	return app.NewSurveyService(repo, memory.NewResponseStore(), memory.NewFeedStore()), survey
}
