// Package sqlite stores survey participants and responses in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"survey-service/internal/domain"
)

// ResponseStore implements app.ResponseRepository using SQLite.
type ResponseStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewResponseStore opens (and creates if needed) the database at dbPath.
func NewResponseStore(dbPath string) (*ResponseStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// one writer avoids SQLITE_BUSY under concurrent submissions
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &ResponseStore{db: db, now: time.Now}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *ResponseStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS participants (
		survey_id TEXT NOT NULL,
		username TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (survey_id, username)
	);

	CREATE TABLE IF NOT EXISTS answers (
		survey_id TEXT NOT NULL,
		question_id TEXT NOT NULL,
		username TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (survey_id, question_id, username)
	);

	CREATE TABLE IF NOT EXISTS votes (
		survey_id TEXT NOT NULL,
		question_id TEXT NOT NULL,
		username TEXT NOT NULL,
		value INTEGER NOT NULL CHECK (value IN (-1, 1)),
		created_at INTEGER NOT NULL,
		PRIMARY KEY (survey_id, question_id, username)
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *ResponseStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database handle.
func (s *ResponseStore) Close() error {
	return s.db.Close()
}

func (s *ResponseStore) AddParticipant(ctx context.Context, surveyID, username string) error {
	query := `
	INSERT INTO participants (survey_id, username, created_at)
	VALUES (?, ?, ?)
	ON CONFLICT DO NOTHING`
	return s.insertOnce(ctx, domain.ErrUsernameTaken, "insert participant", query, surveyID, username, s.now().Unix())
}

func (s *ResponseStore) HasParticipant(ctx context.Context, surveyID, username string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM participants WHERE survey_id = ? AND username = ?`, surveyID, username,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query participant: %w", err)
	}
	return true, nil
}

func (s *ResponseStore) CountParticipants(ctx context.Context, surveyID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM participants WHERE survey_id = ?`, surveyID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return n, nil
}

func (s *ResponseStore) SaveAnswer(ctx context.Context, surveyID string, answer domain.Answer) error {
	query := `
	INSERT INTO answers (survey_id, question_id, username, body, created_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT DO NOTHING`
	return s.insertOnce(ctx, domain.ErrAlreadyAnswered, "insert answer", query,
		surveyID, answer.QuestionID, answer.Username, answer.Text, s.now().Unix())
}

func (s *ResponseStore) SaveVote(ctx context.Context, surveyID string, vote domain.Vote) error {
	query := `
	INSERT INTO votes (survey_id, question_id, username, value, created_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT DO NOTHING`
	return s.insertOnce(ctx, domain.ErrAlreadyVoted, "insert vote", query,
		surveyID, vote.QuestionID, vote.Username, vote.Value, s.now().Unix())
}

func (s *ResponseStore) Tally(ctx context.Context, surveyID string) (map[string]domain.QuestionTally, error) {
	out := make(map[string]domain.QuestionTally)
	// Each query drains and closes its rows before the next runs; the pool has one connection.
	if err := s.tallyAnswers(ctx, surveyID, out); err != nil {
		return nil, err
	}
	if err := s.tallyVotes(ctx, surveyID, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ResponseStore) tallyAnswers(ctx context.Context, surveyID string, out map[string]domain.QuestionTally) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT question_id, body FROM answers WHERE survey_id = ? ORDER BY rowid`, surveyID)
	if err != nil {
		return fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var questionID, body string
		if err := rows.Scan(&questionID, &body); err != nil {
			return fmt.Errorf("scan answer row: %w", err)
		}
		t := out[questionID]
		t.Answers = append(t.Answers, body)
		out[questionID] = t
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate answers: %w", err)
	}
	return nil
}

func (s *ResponseStore) tallyVotes(ctx context.Context, surveyID string, out map[string]domain.QuestionTally) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT question_id, SUM(value) FROM votes WHERE survey_id = ? GROUP BY question_id`, surveyID)
	if err != nil {
		return fmt.Errorf("query votes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var questionID string
		var sum int
		if err := rows.Scan(&questionID, &sum); err != nil {
			return fmt.Errorf("scan vote row: %w", err)
		}
		t := out[questionID]
		t.Votes = sum
		out[questionID] = t
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate votes: %w", err)
	}
	return nil
}

// insertOnce runs an ON CONFLICT DO NOTHING insert and maps "no row written" to conflictErr.
func (s *ResponseStore) insertOnce(ctx context.Context, conflictErr error, op, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return conflictErr
	}
	return nil
}
