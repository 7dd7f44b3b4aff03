package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"survey-service/internal/domain"
)

// ChallengeRepository abstracts where issued challenges live (in-memory, Redis).
type ChallengeRepository interface {
	Save(ctx context.Context, challenge domain.Challenge, ttl time.Duration) error
	Get(ctx context.Context, id string) (domain.Challenge, error)
	// RecordAttempt increments the failed attempt counter and returns the new count.
	RecordAttempt(ctx context.Context, id string) (int, error)
	// Delete removes the challenge and reports whether this call removed it.
	// Concurrent deletes of the same id see true at most once.
	Delete(ctx context.Context, id string) (bool, error)
}

// CaptchaOptions tunes how challenges are generated and verified.
type CaptchaOptions struct {
	MaxOperand  int
	MaxAttempts int // 0 means unlimited
	TTL         time.Duration
}

// CaptchaService issues and verifies additive challenges.
type CaptchaService struct {
	challenges ChallengeRepository
	opts       CaptchaOptions
	now        func() time.Time
	intn       func(n int) int
	newID      func() string
}

func NewCaptchaService(challenges ChallengeRepository, opts CaptchaOptions) *CaptchaService {
	if opts.MaxOperand <= 0 {
		opts.MaxOperand = 20
	}
	return &CaptchaService{
		challenges: challenges,
		opts:       opts,
		now:        time.Now,
		intn:       rand.IntN,
		newID:      uuid.NewString,
	}
}

// NewCaptchaServiceWithRand is test-only for deterministic operands.
func NewCaptchaServiceWithRand(challenges ChallengeRepository, opts CaptchaOptions, intn func(int) int) *CaptchaService {
	s := NewCaptchaService(challenges, opts)
	s.intn = intn
	return s
}

// MaxOperand is the largest operand this service issues.
func (s *CaptchaService) MaxOperand() int {
	return s.opts.MaxOperand
}

// Issue creates and stores a new challenge.
func (s *CaptchaService) Issue(ctx context.Context) (domain.Challenge, error) {
	challenge := domain.Challenge{
		ID:       s.newID(),
		OperandA: s.intn(s.opts.MaxOperand + 1),
		OperandB: s.intn(s.opts.MaxOperand + 1),
		IssuedAt: s.now(),
	}
	if err := s.challenges.Save(ctx, challenge, s.opts.TTL); err != nil {
		return domain.Challenge{}, fmt.Errorf("save challenge: %w", err)
	}
	return challenge, nil
}

// Get returns a stored challenge, e.g. to re-render it after a failed attempt.
func (s *CaptchaService) Get(ctx context.Context, id string) (domain.Challenge, error) {
	return s.challenges.Get(ctx, id)
}

// Verify checks raw against the stored challenge. A correct answer consumes the challenge;
// only the caller whose delete removed it succeeds, the rest get ErrChallengeNotFound.
// Once MaxAttempts failures accumulate the challenge is discarded and the returned error
// matches both ErrTooManyAttempts and the failure that triggered it.
func (s *CaptchaService) Verify(ctx context.Context, id, raw string) error {
	challenge, err := s.challenges.Get(ctx, id)
	if err != nil {
		return err
	}

	checkErr := challenge.Check(raw)
	if checkErr == nil {
		removed, err := s.challenges.Delete(ctx, id)
		if err != nil {
			return fmt.Errorf("discard challenge: %w", err)
		}
		if !removed {
			return domain.ErrChallengeNotFound
		}
		return nil
	}

	if s.opts.MaxAttempts <= 0 {
		return checkErr
	}
	attempts, err := s.challenges.RecordAttempt(ctx, id)
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	if attempts >= s.opts.MaxAttempts {
		if _, err := s.challenges.Delete(ctx, id); err != nil {
			return fmt.Errorf("discard challenge: %w", err)
		}
		return fmt.Errorf("%w: %w", domain.ErrTooManyAttempts, checkErr)
	}
	return checkErr
}
