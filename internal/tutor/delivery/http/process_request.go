package http

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"video-tutor/internal/tutor"
)

// maxAudioBytes caps uploaded recordings at 10MB, roughly a minute of
// uncompressed speech.
const maxAudioBytes = 10 << 20

// processAskReq binds and validates the ask request body.
func (h *handler) processAskReq(c *gin.Context) (askReq, error) {
	var req askReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processImageReq binds and validates the image upload body.
func (h *handler) processImageReq(c *gin.Context) (imageReq, error) {
	var req imageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processSpeakReq binds and validates the speak request body.
func (h *handler) processSpeakReq(c *gin.Context) (speakReq, error) {
	var req speakReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processTranscribeReq reads the multipart audio upload plus the optional
// language form field.
func (h *handler) processTranscribeReq(c *gin.Context) (tutor.TranscribeInput, error) {
	file, _, err := c.Request.FormFile("audio")
	if err != nil {
		return tutor.TranscribeInput{}, errors.New("audio file is required")
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes+1))
	if err != nil {
		return tutor.TranscribeInput{}, err
	}
	if len(audio) > maxAudioBytes {
		return tutor.TranscribeInput{}, errors.New("audio file too large")
	}

	return tutor.TranscribeInput{
		Audio:    audio,
		Language: c.PostForm("language"),
	}, nil
}
