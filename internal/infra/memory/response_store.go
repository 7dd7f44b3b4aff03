package memory

import (
	"context"
	"sync"

	"survey-service/internal/domain"
)

// ResponseStore is an in-memory implementation of app.ResponseRepository.
type ResponseStore struct {
	mu      sync.RWMutex
	surveys map[string]*surveyResponses
}

type responseKey struct {
	questionID string
	username   string
}

type surveyResponses struct {
	participants map[string]struct{}
	answers      map[responseKey]string
	answerOrder  []responseKey
	votes        map[responseKey]int
}

func NewResponseStore() *ResponseStore {
	return &ResponseStore{
		surveys: make(map[string]*surveyResponses),
	}
}

func (s *ResponseStore) AddParticipant(_ context.Context, surveyID, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.getOrCreateLocked(surveyID)
	if _, ok := r.participants[username]; ok {
		return domain.ErrUsernameTaken
	}
	r.participants[username] = struct{}{}
	return nil
}

func (s *ResponseStore) HasParticipant(_ context.Context, surveyID, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.surveys[surveyID]
	if !ok {
		return false, nil
	}
	_, ok = r.participants[username]
	return ok, nil
}

func (s *ResponseStore) CountParticipants(_ context.Context, surveyID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.surveys[surveyID]
	if !ok {
		return 0, nil
	}
	return len(r.participants), nil
}

func (s *ResponseStore) SaveAnswer(_ context.Context, surveyID string, answer domain.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.getOrCreateLocked(surveyID)
	key := responseKey{questionID: answer.QuestionID, username: answer.Username}
	if _, ok := r.answers[key]; ok {
		return domain.ErrAlreadyAnswered
	}
	r.answers[key] = answer.Text
	r.answerOrder = append(r.answerOrder, key)
	return nil
}

func (s *ResponseStore) SaveVote(_ context.Context, surveyID string, vote domain.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.getOrCreateLocked(surveyID)
	key := responseKey{questionID: vote.QuestionID, username: vote.Username}
	if _, ok := r.votes[key]; ok {
		return domain.ErrAlreadyVoted
	}
	r.votes[key] = vote.Value
	return nil
}

func (s *ResponseStore) Tally(_ context.Context, surveyID string) (map[string]domain.QuestionTally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.QuestionTally)
	r, ok := s.surveys[surveyID]
	if !ok {
		return out, nil
	}
	for _, key := range r.answerOrder {
		t := out[key.questionID]
		t.Answers = append(t.Answers, r.answers[key])
		out[key.questionID] = t
	}
	for key, value := range r.votes {
		t := out[key.questionID]
		t.Votes += value
		out[key.questionID] = t
	}
	return out, nil
}

func (s *ResponseStore) getOrCreateLocked(surveyID string) *surveyResponses {
	if r, ok := s.surveys[surveyID]; ok {
		return r
	}
	r := &surveyResponses{
		participants: make(map[string]struct{}),
		answers:      make(map[responseKey]string),
		votes:        make(map[responseKey]int),
	}
	s.surveys[surveyID] = r
	return r
}
