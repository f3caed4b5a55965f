package usecase

import (
	"context"
	"strings"

	"video-tutor/internal/tutor"
)

// AttachImageContext analyzes an uploaded image and attaches the result to
// the user's session, so the next answers can refer to it.
func (uc *implUseCase) AttachImageContext(ctx context.Context, input tutor.ImageInput) (tutor.ImageOutput, error) {
	if uc.vision == nil {
		return tutor.ImageOutput{}, tutor.ErrVisionOff
	}
	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return tutor.ImageOutput{}, tutor.ErrEmptyUserID
	}
	if input.ImageBase64 == "" {
		return tutor.ImageOutput{}, tutor.ErrEmptyImage
	}

	analysis, err := uc.vision.Analyze(ctx, input.ImageBase64)
	if err != nil {
		uc.l.Errorf(ctx, "tutor: image analysis failed for user %s: %v", input.UserID, err)
		return tutor.ImageOutput{}, err
	}

	key, _ := uc.sessions.GetOrCreate(ctx, input.UserID, input.LessonID)
	snippet := analysis.Context()
	uc.sessions.AddAuxiliaryContext(ctx, key, snippet, uc.cfg.MaxImageContext)

	return tutor.ImageOutput{Context: snippet, SessionKey: key}, nil
}
