package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"survey-service/internal/domain"
)

// SurveyRepository loads survey content (from cache/backing store).
type SurveyRepository interface {
	GetSurvey(ctx context.Context, surveyID string) (domain.Survey, error)
	ListSurveys(ctx context.Context) ([]domain.SurveySummary, error)
}

// ResponseRepository stores participants and their answers and votes.
type ResponseRepository interface {
	// AddParticipant returns domain.ErrUsernameTaken when the name is already enrolled.
	AddParticipant(ctx context.Context, surveyID, username string) error
	HasParticipant(ctx context.Context, surveyID, username string) (bool, error)
	CountParticipants(ctx context.Context, surveyID string) (int, error)
	// SaveAnswer returns domain.ErrAlreadyAnswered on a repeated (question, username) pair.
	SaveAnswer(ctx context.Context, surveyID string, answer domain.Answer) error
	// SaveVote returns domain.ErrAlreadyVoted on a repeated (question, username) pair.
	SaveVote(ctx context.Context, surveyID string, vote domain.Vote) error
	Tally(ctx context.Context, surveyID string) (map[string]domain.QuestionTally, error)
}

const maxEnrollAttempts = 64

// SurveyService contains the survey use cases that follow a solved challenge.
type SurveyService struct {
	surveys   SurveyRepository
	responses ResponseRepository
	feeds     FeedRepository
	now       func() time.Time
	username  func(attempt int) string
}

func NewSurveyService(surveys SurveyRepository, responses ResponseRepository, feeds FeedRepository) *SurveyService {
	return &SurveyService{
		surveys:   surveys,
		responses: responses,
		feeds:     feeds,
		now:       time.Now,
		username:  generateUsername,
	}
}

// NewSurveyServiceWithClock is test-only for deterministic timestamps.
func NewSurveyServiceWithClock(surveys SurveyRepository, responses ResponseRepository, feeds FeedRepository, now func() time.Time) *SurveyService {
	s := NewSurveyService(surveys, responses, feeds)
	s.now = now
	return s
}

// List returns all known surveys.
func (s *SurveyService) List(ctx context.Context) ([]domain.SurveySummary, error) {
	return s.surveys.ListSurveys(ctx)
}

// Get returns one survey.
func (s *SurveyService) Get(ctx context.Context, surveyID string) (domain.Survey, error) {
	if surveyID == "" {
		return domain.Survey{}, domain.ErrSurveyNotFound
	}
	return s.surveys.GetSurvey(ctx, surveyID)
}

// Enroll registers a fresh participant with a generated, survey-unique username.
// Callers must only invoke it after a challenge was solved.
func (s *SurveyService) Enroll(ctx context.Context, surveyID string) (string, error) {
	if _, err := s.Get(ctx, surveyID); err != nil {
		return "", err
	}
	for attempt := 0; attempt < maxEnrollAttempts; attempt++ {
		username := s.username(attempt)
		err := s.responses.AddParticipant(ctx, surveyID, username)
		if errors.Is(err, domain.ErrUsernameTaken) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("add participant: %w", err)
		}
		return username, nil
	}
	return "", fmt.Errorf("enroll: %w", domain.ErrUsernameTaken)
}

// Login restores a previously enrolled participant.
func (s *SurveyService) Login(ctx context.Context, surveyID, username string) (domain.Survey, error) {
	survey, err := s.Get(ctx, surveyID)
	if err != nil {
		return domain.Survey{}, err
	}
	if err := s.requireParticipant(ctx, surveyID, username); err != nil {
		return domain.Survey{}, err
	}
	return survey, nil
}

// Answer stores a free-text answer and publishes the new results.
func (s *SurveyService) Answer(ctx context.Context, surveyID, username, questionID, text string) (domain.Results, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Results{}, domain.ErrEmptyAnswer
	}
	survey, err := s.prepareResponse(ctx, surveyID, username, questionID)
	if err != nil {
		return domain.Results{}, err
	}
	if err := s.responses.SaveAnswer(ctx, surveyID, domain.Answer{
		QuestionID: questionID,
		Username:   username,
		Text:       text,
	}); err != nil {
		return domain.Results{}, err
	}
	return s.publish(ctx, survey)
}

// Vote stores a +1/-1 vote and publishes the new results.
func (s *SurveyService) Vote(ctx context.Context, surveyID, username, questionID string, value int) (domain.Results, error) {
	if value != -1 && value != 1 {
		return domain.Results{}, domain.ErrInvalidVote
	}
	survey, err := s.prepareResponse(ctx, surveyID, username, questionID)
	if err != nil {
		return domain.Results{}, err
	}
	if err := s.responses.SaveVote(ctx, surveyID, domain.Vote{
		QuestionID: questionID,
		Username:   username,
		Value:      value,
	}); err != nil {
		return domain.Results{}, err
	}
	return s.publish(ctx, survey)
}

// Results aggregates the stored responses of a survey.
func (s *SurveyService) Results(ctx context.Context, surveyID string) (domain.Results, error) {
	survey, err := s.Get(ctx, surveyID)
	if err != nil {
		return domain.Results{}, err
	}
	return s.results(ctx, survey)
}

// Subscribe returns a channel that receives result updates for a survey.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *SurveyService) Subscribe(ctx context.Context, surveyID string) (<-chan domain.Results, func(), error) {
	initial, err := s.Results(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}
	feed := s.feeds.GetOrCreate(surveyID)
	ch, unsubscribe := feed.Subscribe(initial)
	cancel := func() {
		unsubscribe()
		s.feeds.DeleteIfEmpty(surveyID)
	}
	return ch, cancel, nil
}

func (s *SurveyService) prepareResponse(ctx context.Context, surveyID, username, questionID string) (domain.Survey, error) {
	survey, err := s.Get(ctx, surveyID)
	if err != nil {
		return domain.Survey{}, err
	}
	if _, ok := survey.Question(questionID); !ok {
		return domain.Survey{}, domain.ErrQuestionNotFound
	}
	if err := s.requireParticipant(ctx, surveyID, username); err != nil {
		return domain.Survey{}, err
	}
	return survey, nil
}

func (s *SurveyService) requireParticipant(ctx context.Context, surveyID, username string) error {
	if username == "" {
		return domain.ErrParticipantNotFound
	}
	ok, err := s.responses.HasParticipant(ctx, surveyID, username)
	if err != nil {
		return fmt.Errorf("lookup participant: %w", err)
	}
	if !ok {
		return domain.ErrParticipantNotFound
	}
	return nil
}

func (s *SurveyService) publish(ctx context.Context, survey domain.Survey) (domain.Results, error) {
	results, err := s.results(ctx, survey)
	if err != nil {
		return domain.Results{}, err
	}
	s.feeds.Publish(ctx, results)
	return results, nil
}

func (s *SurveyService) results(ctx context.Context, survey domain.Survey) (domain.Results, error) {
	tally, err := s.responses.Tally(ctx, survey.ID)
	if err != nil {
		return domain.Results{}, fmt.Errorf("tally responses: %w", err)
	}
	participants, err := s.responses.CountParticipants(ctx, survey.ID)
	if err != nil {
		return domain.Results{}, fmt.Errorf("count participants: %w", err)
	}

	questions := make([]domain.QuestionResult, 0, len(survey.Questions))
	for _, q := range survey.Questions {
		t := tally[q.ID]
		answers := t.Answers
		if answers == nil {
			answers = []string{}
		}
		questions = append(questions, domain.QuestionResult{
			QuestionID: q.ID,
			Text:       q.Text,
			Votes:      t.Votes,
			Answers:    answers,
		})
	}
	return domain.Results{
		SurveyID:     survey.ID,
		Participants: participants,
		Questions:    questions,
		UpdatedAt:    s.now(),
	}, nil
}

// generateUsername widens the numeric suffix once short names keep colliding.
func generateUsername(attempt int) string {
	if attempt < maxEnrollAttempts/4 {
		return fmt.Sprintf("user%03d", rand.IntN(1000))
	}
	return fmt.Sprintf("user%06d", rand.IntN(1000000))
}
