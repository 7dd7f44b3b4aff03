package memory

import (
	"context"
	"sync"
	"time"

	"survey-service/internal/domain"
)

// ChallengeStore is an in-memory implementation of app.ChallengeRepository.
// Expired entries are dropped lazily on access.
type ChallengeStore struct {
	clock func() time.Time

	mu         sync.Mutex
	challenges map[string]storedChallenge
}

type storedChallenge struct {
	challenge domain.Challenge
	expiresAt time.Time // zero means no expiry
}

func NewChallengeStore() *ChallengeStore {
	return NewChallengeStoreWithClock(time.Now)
}

// NewChallengeStoreWithClock allows deterministic expiry in tests.
func NewChallengeStoreWithClock(now func() time.Time) *ChallengeStore {
	return &ChallengeStore{
		clock:      now,
		challenges: make(map[string]storedChallenge),
	}
}

func (s *ChallengeStore) Save(_ context.Context, challenge domain.Challenge, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := storedChallenge{challenge: challenge}
	if ttl > 0 {
		entry.expiresAt = s.clock().Add(ttl)
	}
	s.challenges[challenge.ID] = entry
	return nil
}

func (s *ChallengeStore) Get(_ context.Context, id string) (domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.liveLocked(id)
	if !ok {
		return domain.Challenge{}, domain.ErrChallengeNotFound
	}
	return entry.challenge, nil
}

func (s *ChallengeStore) RecordAttempt(_ context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.liveLocked(id)
	if !ok {
		return 0, domain.ErrChallengeNotFound
	}
	entry.challenge.Attempts++
	s.challenges[id] = entry
	return entry.challenge.Attempts, nil
}

func (s *ChallengeStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.liveLocked(id)
	delete(s.challenges, id)
	return ok, nil
}

// Len reports how many challenges are stored, expired ones included.
func (s *ChallengeStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.challenges)
}

func (s *ChallengeStore) liveLocked(id string) (storedChallenge, bool) {
	entry, ok := s.challenges[id]
	if !ok {
		return storedChallenge{}, false
	}
	if !entry.expiresAt.IsZero() && !entry.expiresAt.After(s.clock()) {
		delete(s.challenges, id)
		return storedChallenge{}, false
	}
	return entry, true
}
