package session

import (
	"time"

	"video-tutor/internal/model"
)

// Role of a history entry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Entry is one message in a session's history. Every completed question
// appends a user entry and an assistant entry as a pair.
type Entry struct {
	Role     string               `json:"role"`
	Content  string               `json:"content"`
	Metadata model.AnswerMetadata `json:"metadata,omitempty"`
	At       time.Time            `json:"at"`
}

// Info is a read-only snapshot of one session for the monitoring surface.
type Info struct {
	Key          string    `json:"session_key"`
	UserID       string    `json:"user_id"`
	LessonID     string    `json:"lesson_id"`
	Turns        int       `json:"turns"`
	TokensUsed   int       `json:"tokens_used"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

type liveSession struct {
	key       string
	userID    string
	lessonID  string
	history   []Entry
	auxiliary []string
	turns     int
	tokens    int
	createdAt time.Time
	lastSeen  time.Time
}
