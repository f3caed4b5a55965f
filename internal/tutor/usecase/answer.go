package usecase

import (
	"context"
	"strings"

	"video-tutor/internal/cache"
	"video-tutor/internal/convlog"
	"video-tutor/internal/lesson"
	"video-tutor/internal/model"
	"video-tutor/internal/tutor"
	"video-tutor/pkg/openai"
	"video-tutor/pkg/spoken"
)

// Answer resolves one question through the cache-first state machine. Every
// question, cached or not, is appended to the session; a degraded fallback
// answer is never written to the cache. The method only errors on malformed
// input — service failures surface as a degraded answer.
func (uc *implUseCase) Answer(ctx context.Context, input tutor.AnswerInput) (tutor.AnswerOutput, error) {
	if err := normalizeAnswerInput(&input); err != nil {
		return tutor.AnswerOutput{}, err
	}

	key, isNew := uc.sessions.GetOrCreate(ctx, input.UserID, input.LessonID)

	if payload, ok := uc.cache.Get(ctx, input.Question, input.LessonID, input.Language); ok {
		uc.l.Infof(ctx, "tutor: cache hit for user %s on lesson %s", input.UserID, input.LessonID)
		uc.sessions.AppendTurn(ctx, key, input.Question, payload.Answer, payload.Metadata)
		return tutor.AnswerOutput{
			Answer:       payload.Answer,
			TokensUsed:   payload.TokensUsed,
			FromCache:    true,
			SessionKey:   key,
			IsNewSession: isNew,
		}, nil
	}

	history := uc.sessions.History(ctx, key)
	auxiliary := uc.sessions.AuxiliaryContext(ctx, key)
	messages := buildMessages(uc.catalog, input.LessonID, input.Language, history, auxiliary, input.Question)

	var resp *openai.Response
	err := uc.policy.Do(ctx, func(ctx context.Context) error {
		r, err := uc.llm.Complete(ctx, &openai.Request{Messages: messages})
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		uc.l.Errorf(ctx, "tutor: completion failed after retries for user %s: %v", input.UserID, err)
		return uc.degradedAnswer(ctx, key, isNew, input), nil
	}

	answer := spoken.StripMarkup(resp.Choices[0].Message.Content)
	meta := model.AnswerMetadata{
		TokensUsed: resp.Usage.TotalTokens,
		Model:      resp.Model,
		LessonID:   input.LessonID,
	}

	uc.sessions.AppendTurn(ctx, key, input.Question, answer, meta)
	uc.cache.Put(ctx, input.Question, input.LessonID, input.Language, cache.Payload{
		Answer:     answer,
		TokensUsed: resp.Usage.TotalTokens,
		Metadata:   meta,
	}, uc.cfg.CacheTTL)
	uc.record(ctx, input, answer, meta)

	return tutor.AnswerOutput{
		Answer:       answer,
		TokensUsed:   resp.Usage.TotalTokens,
		SessionKey:   key,
		IsNewSession: isNew,
	}, nil
}

// degradedAnswer updates the session with the fallback text. No cache write:
// a degraded answer must not shadow a real one.
func (uc *implUseCase) degradedAnswer(ctx context.Context, key string, isNew bool, input tutor.AnswerInput) tutor.AnswerOutput {
	answer := fallbackAnswer(uc.catalog.Title(input.LessonID))
	meta := model.AnswerMetadata{LessonID: input.LessonID, Degraded: true}

	uc.sessions.AppendTurn(ctx, key, input.Question, answer, meta)
	uc.record(ctx, input, answer, meta)

	return tutor.AnswerOutput{
		Answer:       answer,
		Degraded:     true,
		SessionKey:   key,
		IsNewSession: isNew,
	}
}

// record logs the exchange best-effort.
func (uc *implUseCase) record(ctx context.Context, input tutor.AnswerInput, answer string, meta model.AnswerMetadata) {
	if uc.recorder == nil {
		return
	}
	err := uc.recorder.Log(ctx, convlog.Record{
		UserID:      input.UserID,
		LessonID:    input.LessonID,
		LessonTitle: uc.catalog.Title(input.LessonID),
		Question:    input.Question,
		Answer:      answer,
		TokensUsed:  meta.TokensUsed,
		Model:       meta.Model,
		Streaming:   meta.Streaming,
	})
	if err != nil {
		uc.l.Warnf(ctx, "tutor: could not log conversation: %v", err)
	}
}

func normalizeAnswerInput(input *tutor.AnswerInput) error {
	input.UserID = strings.TrimSpace(input.UserID)
	input.Question = strings.TrimSpace(input.Question)
	if input.UserID == "" {
		return tutor.ErrEmptyUserID
	}
	if input.Question == "" {
		return tutor.ErrEmptyQuestion
	}
	if input.Language == "" {
		input.Language = lesson.DetectLanguage(input.Question)
	}
	input.Language = lesson.NormalizeLanguage(input.Language)
	return nil
}
