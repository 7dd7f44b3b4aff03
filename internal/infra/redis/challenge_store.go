package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"survey-service/internal/domain"
)

// recordAttempt bumps the counter only while the hash still exists, so an expired
// challenge is never recreated without its TTL. Returns -1 when the key is gone.
var recordAttempt = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return -1
end
return redis.call("HINCRBY", KEYS[1], "attempts", 1)
`)

// ChallengeStore keeps issued challenges in Redis so any instance can verify them.
// Challenges are stored as: HSET captcha:{id} a {A} b {B} attempts {n} issued {unix}
type ChallengeStore struct {
	client *redis.Client
}

func NewChallengeStore(client *redis.Client) *ChallengeStore {
	return &ChallengeStore{client: client}
}

func (s *ChallengeStore) Save(ctx context.Context, challenge domain.Challenge, ttl time.Duration) error {
	key := s.key(challenge.ID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key,
		"a", challenge.OperandA,
		"b", challenge.OperandB,
		"attempts", challenge.Attempts,
		"issued", challenge.IssuedAt.Unix(),
	)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store challenge: %w", err)
	}
	return nil
}

func (s *ChallengeStore) Get(ctx context.Context, id string) (domain.Challenge, error) {
	fields, err := s.client.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return domain.Challenge{}, fmt.Errorf("load challenge: %w", err)
	}
	if len(fields) == 0 {
		return domain.Challenge{}, domain.ErrChallengeNotFound
	}
	return challengeFromHash(id, fields)
}

func (s *ChallengeStore) RecordAttempt(ctx context.Context, id string) (int, error) {
	n, err := recordAttempt.Run(ctx, s.client, []string{s.key(id)}).Int64()
	if err != nil {
		return 0, fmt.Errorf("record attempt: %w", err)
	}
	if n < 0 {
		return 0, domain.ErrChallengeNotFound
	}
	return int(n), nil
}

func (s *ChallengeStore) Delete(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("delete challenge: %w", err)
	}
	return n == 1, nil
}

func (s *ChallengeStore) key(id string) string {
	return "captcha:" + id
}

func challengeFromHash(id string, fields map[string]string) (domain.Challenge, error) {
	a, err := strconv.Atoi(fields["a"])
	if err != nil {
		return domain.Challenge{}, fmt.Errorf("decode challenge %s: %w", id, err)
	}
	b, err := strconv.Atoi(fields["b"])
	if err != nil {
		return domain.Challenge{}, fmt.Errorf("decode challenge %s: %w", id, err)
	}
	c := domain.Challenge{ID: id, OperandA: a, OperandB: b}
	if n, err := strconv.Atoi(fields["attempts"]); err == nil {
		c.Attempts = n
	}
	if unix, err := strconv.ParseInt(fields["issued"], 10, 64); err == nil {
		c.IssuedAt = time.Unix(unix, 0)
	}
	return c, nil
}
