package http

import (
	"errors"
	"net/http"

	"video-tutor/internal/tutor"
)

var errLessonNotFound = errors.New("lesson not found")

// mapError translates use-case errors into an HTTP status. Anything
// unrecognized is an internal error; the generic 500 body keeps provider
// details off the wire.
func (h *handler) mapError(err error) int {
	switch {
	case errors.Is(err, tutor.ErrEmptyUserID),
		errors.Is(err, tutor.ErrEmptyQuestion),
		errors.Is(err, tutor.ErrEmptyImage),
		errors.Is(err, tutor.ErrEmptyAudio),
		errors.Is(err, tutor.ErrEmptyText):
		return http.StatusBadRequest
	case errors.Is(err, tutor.ErrNoLiveSession):
		return http.StatusNotFound
	case errors.Is(err, tutor.ErrSpeechOff), errors.Is(err, tutor.ErrVisionOff):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
