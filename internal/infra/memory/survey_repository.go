package memory

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"survey-service/internal/domain"
)

// SurveyLoader fetches survey content from a backing store (directory, Postgres).
type SurveyLoader interface {
	LoadSurvey(ctx context.Context, surveyID string) (domain.Survey, error)
	ListSurveys(ctx context.Context) ([]domain.SurveySummary, error)
}

// SurveyRepository caches surveys with TTL to avoid repeated loader hits.
type SurveyRepository struct {
	loader SurveyLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu    sync.RWMutex
	cache map[string]cachedSurvey
}

type cachedSurvey struct {
	survey    domain.Survey
	expiresAt time.Time
}

func NewSurveyRepository(loader SurveyLoader, ttl time.Duration) *SurveyRepository {
	return &SurveyRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedSurvey),
	}
}

func (r *SurveyRepository) GetSurvey(ctx context.Context, surveyID string) (domain.Survey, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[surveyID]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.survey, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(surveyID, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[surveyID]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.survey, nil
		}
		r.mu.RUnlock()

		survey, err := r.loader.LoadSurvey(ctx, surveyID)
		if err != nil {
			return domain.Survey{}, err
		}

		r.mu.Lock()
		r.cache[surveyID] = cachedSurvey{
			survey:    survey,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return survey, nil
	})
	if err != nil {
		return domain.Survey{}, err
	}
	return result.(domain.Survey), nil
}

// ListSurveys is not cached; listings are cheap for every loader.
func (r *SurveyRepository) ListSurveys(ctx context.Context) ([]domain.SurveySummary, error) {
	return r.loader.ListSurveys(ctx)
}

func (r *SurveyRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticSurveyLoader is a simple loader backed by an in-memory map (useful for tests/demos).
type StaticSurveyLoader struct {
	surveys map[string]domain.Survey
}

func NewStaticSurveyLoader(surveys ...domain.Survey) *StaticSurveyLoader {
	byID := make(map[string]domain.Survey, len(surveys))
	for _, s := range surveys {
		s.AssignIDs()
		byID[s.ID] = s
	}
	return &StaticSurveyLoader{surveys: byID}
}

func (l *StaticSurveyLoader) LoadSurvey(_ context.Context, surveyID string) (domain.Survey, error) {
	if survey, ok := l.surveys[surveyID]; ok {
		return survey, nil
	}
	return domain.Survey{}, domain.ErrSurveyNotFound
}

func (l *StaticSurveyLoader) ListSurveys(_ context.Context) ([]domain.SurveySummary, error) {
	out := make([]domain.SurveySummary, 0, len(l.surveys))
	for _, s := range l.surveys {
		out = append(out, s.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}
