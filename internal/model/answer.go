package model

// AnswerMetadata is the structured record attached to every generated answer.
// Known fields are explicit; Extra carries forward-compatible additions.
type AnswerMetadata struct {
	TokensUsed int               `json:"tokens_used"`
	Model      string            `json:"model,omitempty"`
	LessonID   string            `json:"lesson_id,omitempty"`
	Streaming  bool              `json:"streaming,omitempty"`
	Degraded   bool              `json:"degraded,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Clone returns a deep copy so cached metadata cannot be mutated by callers.
func (m AnswerMetadata) Clone() AnswerMetadata {
	out := m
	if m.Extra != nil {
		out.Extra = make(map[string]string, len(m.Extra))
		for k, v := range m.Extra {
			out.Extra[k] = v
		}
	}
	return out
}
