package usecase

import (
	"context"
	"strings"

	"video-tutor/internal/lesson"
	"video-tutor/internal/tutor"
	"video-tutor/pkg/spoken"
)

// Transcribe converts recorded audio into question text. When no language
// is given, it recognizes against the default and detects the language from
// the transcript afterwards.
func (uc *implUseCase) Transcribe(ctx context.Context, input tutor.TranscribeInput) (tutor.TranscribeOutput, error) {
	if uc.stt == nil {
		return tutor.TranscribeOutput{}, tutor.ErrSpeechOff
	}
	if len(input.Audio) == 0 {
		return tutor.TranscribeOutput{}, tutor.ErrEmptyAudio
	}

	lang := lesson.NormalizeLanguage(input.Language)
	text, err := uc.stt.Transcribe(ctx, input.Audio, lesson.LanguageInfo(lang).STTCode)
	if err != nil {
		uc.l.Errorf(ctx, "tutor: transcription failed: %v", err)
		return tutor.TranscribeOutput{}, err
	}

	if input.Language == "" {
		lang = lesson.DetectLanguage(text)
	}
	return tutor.TranscribeOutput{Text: text, Language: lang}, nil
}

// Speak renders answer text as audio, converting formulas to their spoken
// form first.
func (uc *implUseCase) Speak(ctx context.Context, input tutor.SpeakInput) ([]byte, error) {
	if uc.tts == nil {
		return nil, tutor.ErrSpeechOff
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, tutor.ErrEmptyText
	}

	lang := lesson.NormalizeLanguage(input.Language)
	text := spoken.ToSpokenForm(input.Text)
	return uc.tts.Synthesize(ctx, text, lesson.LanguageInfo(lang).TTSCode)
}
