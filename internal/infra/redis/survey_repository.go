package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"survey-service/internal/domain"
)

// SurveyLoader fetches survey content from a backing store (directory, Postgres).
type SurveyLoader interface {
	LoadSurvey(ctx context.Context, surveyID string) (domain.Survey, error)
	ListSurveys(ctx context.Context) ([]domain.SurveySummary, error)
}

// SurveyRepository caches survey documents in Redis and falls back to a loader on cache miss.
// Surveys are stored as: SET survey:{surveyID} {json}
type SurveyRepository struct {
	client *redis.Client
	loader SurveyLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex
}

func NewSurveyRepository(client *redis.Client, loader SurveyLoader, ttl time.Duration) *SurveyRepository {
	return &SurveyRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *SurveyRepository) GetSurvey(ctx context.Context, surveyID string) (domain.Survey, error) {
	key := r.key(surveyID)

	if survey, ok := r.cached(ctx, key); ok {
		return survey, nil
	}

	result, err, _ := r.sf.Do(surveyID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if survey, ok := r.cached(ctx, key); ok {
			return survey, nil
		}

		survey, err := r.loader.LoadSurvey(ctx, surveyID)
		if err != nil {
			return domain.Survey{}, err
		}

		if raw, err := json.Marshal(survey); err == nil {
			_ = r.client.Set(ctx, key, raw, r.ttlWithJitter()).Err()
		}
		return survey, nil
	})
	if err != nil {
		return domain.Survey{}, err
	}
	return result.(domain.Survey), nil
}

func (r *SurveyRepository) ListSurveys(ctx context.Context) ([]domain.SurveySummary, error) {
	return r.loader.ListSurveys(ctx)
}

func (r *SurveyRepository) cached(ctx context.Context, key string) (domain.Survey, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return domain.Survey{}, false
	}
	var survey domain.Survey
	if err := json.Unmarshal(raw, &survey); err != nil {
		return domain.Survey{}, false
	}
	return survey, true
}

func (r *SurveyRepository) key(surveyID string) string {
	return "survey:" + surveyID
}

func (r *SurveyRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
