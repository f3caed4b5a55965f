package usecase

import (
	"context"
	"io"
	"strings"

	"video-tutor/internal/model"
	"video-tutor/internal/tutor"
	"video-tutor/pkg/openai"
)

// AnswerStream answers with incremental token events. The channel carries
// zero or more Token events and exactly one terminal event: Done (with the
// full text, synthetic fallback text on a mid-stream provider failure) or
// Error (provider refused the request outright). Consumer cancellation via
// ctx closes the provider stream, emits no terminal event, and leaves the
// session untouched.
func (uc *implUseCase) AnswerStream(ctx context.Context, input tutor.AnswerInput) (<-chan tutor.StreamEvent, error) {
	if err := normalizeAnswerInput(&input); err != nil {
		return nil, err
	}

	key, _ := uc.sessions.GetOrCreate(ctx, input.UserID, input.LessonID)
	history := uc.sessions.History(ctx, key)
	auxiliary := uc.sessions.AuxiliaryContext(ctx, key)
	messages := buildMessages(uc.catalog, input.LessonID, input.Language, history, auxiliary, input.Question)

	events := make(chan tutor.StreamEvent)
	go uc.streamAnswer(ctx, input, key, messages, events)
	return events, nil
}

func (uc *implUseCase) streamAnswer(ctx context.Context, input tutor.AnswerInput, key string, messages []openai.Message, events chan<- tutor.StreamEvent) {
	defer close(events)

	stream, err := uc.llm.CompleteStream(ctx, &openai.Request{Messages: messages})
	if err != nil {
		uc.l.Errorf(ctx, "tutor: could not start answer stream for user %s: %v", input.UserID, err)
		emit(ctx, events, tutor.StreamEvent{Type: tutor.EventError, Error: "completion service unavailable"})
		return
	}
	defer stream.Close()

	var full strings.Builder
	degraded := false

	for {
		token, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// Mid-stream failure: the consumer already saw partial tokens, so
			// finish with a coherent fallback instead of a dangling error.
			uc.l.Errorf(ctx, "tutor: answer stream broke for user %s: %v", input.UserID, err)
			full.Reset()
			full.WriteString(fallbackAnswer(uc.catalog.Title(input.LessonID)))
			degraded = true
			break
		}

		full.WriteString(token)
		if !emit(ctx, events, tutor.StreamEvent{Type: tutor.EventToken, Token: token}) {
			return
		}
	}

	if ctx.Err() != nil {
		return
	}

	fullText := full.String()
	tokensUsed := 0
	if !degraded {
		// Streamed completions carry no usage block.
		tokensUsed = openai.EstimateTokens(fullText, input.Question, messages[0].Content)
	}

	meta := model.AnswerMetadata{
		TokensUsed: tokensUsed,
		LessonID:   input.LessonID,
		Streaming:  true,
		Degraded:   degraded,
	}
	uc.sessions.AppendTurn(ctx, key, input.Question, fullText, meta)
	uc.record(ctx, input, fullText, meta)

	emit(ctx, events, tutor.StreamEvent{
		Type:       tutor.EventDone,
		FullText:   fullText,
		TokensUsed: tokensUsed,
		Degraded:   degraded,
	})
}

// emit delivers an event unless the consumer is gone.
func emit(ctx context.Context, events chan<- tutor.StreamEvent, ev tutor.StreamEvent) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
