package tutor

// AnswerInput is one question from a student.
type AnswerInput struct {
	UserID   string `json:"user_id"`
	LessonID string `json:"lesson_id"`
	Question string `json:"question"`
	Language string `json:"language"` // short code; empty means detect/default
}

// AnswerOutput is the completed answer.
type AnswerOutput struct {
	Answer       string `json:"answer"`
	TokensUsed   int    `json:"tokens_used"`
	FromCache    bool   `json:"from_cache"`
	Degraded     bool   `json:"degraded"`
	SessionKey   string `json:"session_key"`
	IsNewSession bool   `json:"is_new_session"`
}

// StreamEventType discriminates streamed answer events.
type StreamEventType string

// Stream event types. A stream delivers zero or more Token events followed
// by exactly one terminal event (Done or Error), unless the consumer
// cancels first.
const (
	EventToken StreamEventType = "token"
	EventDone  StreamEventType = "done"
	EventError StreamEventType = "error"
)

// StreamEvent is one event of a streamed answer.
type StreamEvent struct {
	Type       StreamEventType `json:"type"`
	Token      string          `json:"content,omitempty"`
	FullText   string          `json:"full_text,omitempty"`
	TokensUsed int             `json:"tokens_used,omitempty"`
	Degraded   bool            `json:"degraded,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// ImageInput attaches a picture (homework, diagram) to the conversation.
type ImageInput struct {
	UserID      string `json:"user_id"`
	LessonID    string `json:"lesson_id"`
	ImageBase64 string `json:"image_base64"`
}

// ImageOutput reports what was extracted from the image.
type ImageOutput struct {
	Context    string `json:"context"`
	SessionKey string `json:"session_key"`
}

// TranscribeInput carries recorded audio for speech-to-text.
type TranscribeInput struct {
	Audio    []byte `json:"-"`
	Language string `json:"language"`
}

// TranscribeOutput is the recognized question text.
type TranscribeOutput struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// SpeakInput renders an answer as audio.
type SpeakInput struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}
