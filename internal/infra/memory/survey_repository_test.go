package memory

import (
	"context"
	"testing"
	"time"

	"survey-service/internal/domain"
)

func TestSurveyRepositoryCaches(t *testing.T) {
	survey := sampleSurvey()
	loader := &countingLoader{SurveyLoader: NewStaticSurveyLoader(survey)}
	repo := NewSurveyRepository(loader, time.Minute)

	if _, err := repo.GetSurvey(context.Background(), survey.ID); err != nil {
		t.Fatalf("get survey: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetSurvey(context.Background(), survey.ID); err != nil {
		t.Fatalf("get survey 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestSurveyRepositoryReloadsAfterExpiry(t *testing.T) {
	survey := sampleSurvey()
	loader := &countingLoader{SurveyLoader: NewStaticSurveyLoader(survey)}
	repo := NewSurveyRepository(loader, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetSurvey(context.Background(), survey.ID)
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetSurvey(context.Background(), survey.ID)
	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}
}

func TestSurveyRepositoryUnknownSurvey(t *testing.T) {
	repo := NewSurveyRepository(NewStaticSurveyLoader(), time.Minute)
	if _, err := repo.GetSurvey(context.Background(), "missing"); err != domain.ErrSurveyNotFound {
		t.Fatalf("expected survey not found, got %v", err)
	}
}

func TestStaticLoaderListsByTitle(t *testing.T) {
	loader := NewStaticSurveyLoader(
		domain.Survey{Title: "Zoning"},
		domain.Survey{Title: "Bike lanes"},
	)
	list, err := loader.ListSurveys(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Title != "Bike lanes" {
		t.Fatalf("expected sorted listing, got %+v", list)
	}
}

type countingLoader struct {
	SurveyLoader
	calls int
}

func (l *countingLoader) LoadSurvey(ctx context.Context, surveyID string) (domain.Survey, error) {
	l.calls++
	return l.SurveyLoader.LoadSurvey(ctx, surveyID)
}

func sampleSurvey() domain.Survey {
	s := domain.Survey{
		Title:       "City transit",
		Description: "How should the city spend its transit budget?",
		Questions: []domain.Question{
			{Text: "What would make you ride the bus more often?"},
			{Text: "Which tram line needs more capacity?"},
		},
	}
	s.AssignIDs()
	return s
}
