// Package convlog persists every completed Q&A exchange for later revision.
// Logging is best-effort: a storage failure must never fail the answer that
// triggered it, so callers only log the returned error.
package convlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"video-tutor/pkg/log"
)

// Record is one logged exchange.
type Record struct {
	ID          int64     `json:"id"`
	LoggedAt    time.Time `json:"logged_at"`
	UserID      string    `json:"user_id"`
	LessonID    string    `json:"lesson_id"`
	LessonTitle string    `json:"lesson_title"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	TokensUsed  int       `json:"tokens_used"`
	Model       string    `json:"model"`
	Streaming   bool      `json:"streaming"`
}

// Logger writes exchanges to a local SQLite database.
type Logger struct {
	db  *sql.DB
	l   log.Logger
	now func() time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS conversations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	logged_at TIMESTAMP NOT NULL,
	user_id TEXT NOT NULL,
	lesson_id TEXT NOT NULL,
	lesson_title TEXT NOT NULL DEFAULT '',
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	tokens_used INTEGER NOT NULL DEFAULT 0,
	model TEXT NOT NULL DEFAULT '',
	streaming INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_conversations_lesson ON conversations(lesson_id);
CREATE INDEX IF NOT EXISTS idx_conversations_user ON conversations(user_id);
`

// New opens (or creates) the database at path. Use ":memory:" for tests.
func New(l log.Logger, path string) (*Logger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open conversation log: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	l.Infof(context.Background(), "convlog: conversation log opened at %s", path)
	return &Logger{db: db, l: l, now: time.Now}, nil
}

// Close releases the database handle.
func (c *Logger) Close() error {
	return c.db.Close()
}

// Log appends one exchange.
func (c *Logger) Log(ctx context.Context, rec Record) error {
	if rec.LoggedAt.IsZero() {
		rec.LoggedAt = c.now()
	}
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO conversations
			(logged_at, user_id, lesson_id, lesson_title, question, answer, tokens_used, model, streaming)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.LoggedAt, rec.UserID, rec.LessonID, rec.LessonTitle,
		rec.Question, rec.Answer, rec.TokensUsed, rec.Model, rec.Streaming,
	)
	if err != nil {
		return fmt.Errorf("failed to log conversation: %w", err)
	}
	return nil
}

// Recent returns the latest exchanges, newest first.
func (c *Logger) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	return c.query(ctx, `
		SELECT id, logged_at, user_id, lesson_id, lesson_title, question, answer, tokens_used, model, streaming
		FROM conversations ORDER BY id DESC LIMIT ?`, limit)
}

// ByLesson returns the latest exchanges for one lesson, newest first.
func (c *Logger) ByLesson(ctx context.Context, lessonID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	return c.query(ctx, `
		SELECT id, logged_at, user_id, lesson_id, lesson_title, question, answer, tokens_used, model, streaming
		FROM conversations WHERE lesson_id = ? ORDER BY id DESC LIMIT ?`, lessonID, limit)
}

// ByUser returns the latest exchanges for one user, newest first.
func (c *Logger) ByUser(ctx context.Context, userID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	return c.query(ctx, `
		SELECT id, logged_at, user_id, lesson_id, lesson_title, question, answer, tokens_used, model, streaming
		FROM conversations WHERE user_id = ? ORDER BY id DESC LIMIT ?`, userID, limit)
}

// Count returns the total number of logged exchanges.
func (c *Logger) Count(ctx context.Context) (int64, error) {
	var n int64
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversations`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count conversations: %w", err)
	}
	return n, nil
}

func (c *Logger) query(ctx context.Context, q string, args ...any) ([]Record, error) {
	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID, &rec.LoggedAt, &rec.UserID, &rec.LessonID, &rec.LessonTitle,
			&rec.Question, &rec.Answer, &rec.TokensUsed, &rec.Model, &rec.Streaming,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
