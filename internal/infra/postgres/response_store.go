package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"survey-service/internal/domain"
)

// ResponseStore implements app.ResponseRepository on the tables created by migrations.
type ResponseStore struct {
	pool *pgxpool.Pool
}

func NewResponseStore(pool *pgxpool.Pool) *ResponseStore {
	return &ResponseStore{pool: pool}
}

func (s *ResponseStore) AddParticipant(ctx context.Context, surveyID, username string) error {
	return s.insertOnce(ctx, domain.ErrUsernameTaken, "insert participant", `
		INSERT INTO participants (survey_id, username) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, surveyID, username)
}

func (s *ResponseStore) HasParticipant(ctx context.Context, surveyID, username string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM participants WHERE survey_id=$1 AND username=$2)`,
		surveyID, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query participant: %w", err)
	}
	return exists, nil
}

func (s *ResponseStore) CountParticipants(ctx context.Context, surveyID string) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM participants WHERE survey_id=$1`, surveyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return n, nil
}

func (s *ResponseStore) SaveAnswer(ctx context.Context, surveyID string, answer domain.Answer) error {
	return s.insertOnce(ctx, domain.ErrAlreadyAnswered, "insert answer", `
		INSERT INTO answers (survey_id, question_id, username, body) VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING`, surveyID, answer.QuestionID, answer.Username, answer.Text)
}

func (s *ResponseStore) SaveVote(ctx context.Context, surveyID string, vote domain.Vote) error {
	return s.insertOnce(ctx, domain.ErrAlreadyVoted, "insert vote", `
		INSERT INTO votes (survey_id, question_id, username, value) VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING`, surveyID, vote.QuestionID, vote.Username, vote.Value)
}

func (s *ResponseStore) Tally(ctx context.Context, surveyID string) (map[string]domain.QuestionTally, error) {
	out := make(map[string]domain.QuestionTally)

	rows, err := s.pool.Query(ctx,
		`SELECT question_id, body FROM answers WHERE survey_id=$1 ORDER BY id`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	for rows.Next() {
		var questionID, body string
		if err := rows.Scan(&questionID, &body); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan answer row: %w", err)
		}
		t := out[questionID]
		t.Answers = append(t.Answers, body)
		out[questionID] = t
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers: %w", err)
	}

	voteRows, err := s.pool.Query(ctx,
		`SELECT question_id, SUM(value)::int FROM votes WHERE survey_id=$1 GROUP BY question_id`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("query votes: %w", err)
	}
	defer voteRows.Close()
	for voteRows.Next() {
		var questionID string
		var sum int
		if err := voteRows.Scan(&questionID, &sum); err != nil {
			return nil, fmt.Errorf("scan vote row: %w", err)
		}
		t := out[questionID]
		t.Votes = sum
		out[questionID] = t
	}
	return out, voteRows.Err()
}

func (s *ResponseStore) insertOnce(ctx context.Context, conflictErr error, op, query string, args ...any) error {
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return conflictErr
	}
	return nil
}
