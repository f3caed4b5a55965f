package tutor

import "errors"

// Domain-specific errors for the tutor package.
var (
	ErrEmptyUserID   = errors.New("user id is empty")
	ErrEmptyQuestion = errors.New("question is empty")
	ErrEmptyImage    = errors.New("image data is empty")
	ErrEmptyAudio    = errors.New("audio data is empty")
	ErrEmptyText     = errors.New("text is empty")
	ErrNoLiveSession = errors.New("no live session for user")
	ErrSpeechOff     = errors.New("speech services are not configured")
	ErrVisionOff     = errors.New("image analysis is not configured")
)
