package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"survey-service/internal/domain"
)

// SurveyLoader loads survey JSONB documents from Postgres.
type SurveyLoader struct {
	pool *pgxpool.Pool
}

func NewSurveyLoader(pool *pgxpool.Pool) *SurveyLoader {
	return &SurveyLoader{pool: pool}
}

func (l *SurveyLoader) LoadSurvey(ctx context.Context, surveyID string) (domain.Survey, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM surveys WHERE id=$1`, surveyID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Survey{}, domain.ErrSurveyNotFound
	}
	if err != nil {
		return domain.Survey{}, fmt.Errorf("load survey: %w", err)
	}
	var survey domain.Survey
	if err := json.Unmarshal(raw, &survey); err != nil {
		return domain.Survey{}, fmt.Errorf("unmarshal survey: %w", err)
	}
	survey.ID = surveyID
	survey.AssignIDs()
	return survey, nil
}

func (l *SurveyLoader) ListSurveys(ctx context.Context) ([]domain.SurveySummary, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, data->>'title', COALESCE(data->>'description', ''),
		       COALESCE(jsonb_array_length(data->'questions'), 0)
		FROM surveys ORDER BY data->>'title'`)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	defer rows.Close()

	var out []domain.SurveySummary
	for rows.Next() {
		var s domain.SurveySummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Questions); err != nil {
			return nil, fmt.Errorf("scan survey: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SaveSurvey upserts a survey document, e.g. when seeding from a directory.
func (l *SurveyLoader) SaveSurvey(ctx context.Context, survey domain.Survey) error {
	survey.AssignIDs()
	data, err := json.Marshal(survey)
	if err != nil {
		return fmt.Errorf("marshal survey: %w", err)
	}
	_, err = l.pool.Exec(ctx, `
		INSERT INTO surveys (id, data) VALUES ($1, $2::jsonb)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`, survey.ID, string(data))
	if err != nil {
		return fmt.Errorf("save survey: %w", err)
	}
	return nil
}
