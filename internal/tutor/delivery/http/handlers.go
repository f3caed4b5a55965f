package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"video-tutor/pkg/response"
)

func (h *handler) respondError(c *gin.Context, err error) {
	status := h.mapError(err)
	if status == http.StatusInternalServerError {
		response.InternalError(c, err)
		return
	}
	response.Error(c, status, err)
}

// Ask godoc
// @Summary     Ask a question
// @Description Answers a student question about the current lesson, serving repeated questions from the response cache.
// @Tags        Tutor
// @Accept      json
// @Produce     json
// @Param       body body askReq true "Question"
// @Success     200 {object} askResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tutor/ask [POST]
func (h *handler) Ask(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processAskReq(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}

	output, err := h.uc.Answer(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Answer: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newAskResp(output))
}

// AttachImage godoc
// @Summary     Upload an image
// @Description Analyzes a homework photo or diagram and attaches the extracted content to the student's session.
// @Tags        Tutor
// @Accept      json
// @Produce     json
// @Param       body body imageReq true "Base64-encoded image"
// @Success     200 {object} imageResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     503 {object} response.Resp "Vision not configured"
// @Router      /api/v1/tutor/image [POST]
func (h *handler) AttachImage(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processImageReq(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}

	output, err := h.uc.AttachImageContext(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.AttachImageContext: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newImageResp(output))
}

// Transcribe godoc
// @Summary     Transcribe audio
// @Description Converts an uploaded recording into question text, detecting the language when none is given.
// @Tags        Tutor
// @Accept      multipart/form-data
// @Produce     json
// @Param       audio    formData file   true  "Audio recording"
// @Param       language formData string false "Language code hint"
// @Success     200 {object} transcribeResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     503 {object} response.Resp "Speech not configured"
// @Router      /api/v1/tutor/transcribe [POST]
func (h *handler) Transcribe(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processTranscribeReq(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}

	output, err := h.uc.Transcribe(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.Transcribe: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newTranscribeResp(output))
}

// Speak godoc
// @Summary     Synthesize speech
// @Description Renders answer text as MP3 audio, converting formulas to their spoken form first.
// @Tags        Tutor
// @Accept      json
// @Produce     audio/mpeg
// @Param       body body speakReq true "Text to speak"
// @Success     200 {file} binary "MP3 audio"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     503 {object} response.Resp "Speech not configured"
// @Router      /api/v1/tutor/speak [POST]
func (h *handler) Speak(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSpeakReq(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}

	audio, err := h.uc.Speak(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Speak: %v", err)
		h.respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "audio/mpeg", audio)
}

// SessionList godoc
// @Summary     List sessions
// @Description Returns a snapshot of every live tutoring session.
// @Tags        Sessions
// @Produce     json
// @Success     200 {object} sessionListResp
// @Router      /api/v1/sessions [GET]
func (h *handler) SessionList(c *gin.Context) {
	response.OK(c, h.newSessionListResp(h.uc.Sessions(c.Request.Context())))
}

// SessionDetail godoc
// @Summary     Get a user's session
// @Description Returns the live session snapshot for one user.
// @Tags        Sessions
// @Produce     json
// @Param       user_id path string true "User ID"
// @Success     200 {object} sessionResp
// @Failure     404 {object} response.Resp "No live session"
// @Router      /api/v1/sessions/{user_id} [GET]
func (h *handler) SessionDetail(c *gin.Context) {
	ctx := c.Request.Context()

	info, err := h.uc.SessionInfo(ctx, c.Param("user_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, newSessionResp(info))
}

// SessionEnd godoc
// @Summary     End a user's session
// @Description Destroys the user's live session. Idempotent.
// @Tags        Sessions
// @Produce     json
// @Param       user_id path string true "User ID"
// @Success     200 {object} sessionEndResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/sessions/{user_id} [DELETE]
func (h *handler) SessionEnd(c *gin.Context) {
	ctx := c.Request.Context()

	ended, err := h.uc.EndSession(ctx, c.Param("user_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, sessionEndResp{Ended: ended})
}

// CacheStats godoc
// @Summary     Response cache statistics
// @Description Returns cache hit/miss/eviction counters and current size.
// @Tags        Cache
// @Produce     json
// @Success     200 {object} cacheStatsResp
// @Router      /api/v1/cache/stats [GET]
func (h *handler) CacheStats(c *gin.Context) {
	response.OK(c, h.newCacheStatsResp(h.uc.CacheStats(c.Request.Context())))
}

// CacheClear godoc
// @Summary     Flush the response cache
// @Description Removes every cached answer. Hit/miss counters survive.
// @Tags        Cache
// @Produce     json
// @Success     200 {object} response.Resp "OK"
// @Router      /api/v1/cache/clear [POST]
func (h *handler) CacheClear(c *gin.Context) {
	h.uc.ClearCache(c.Request.Context())
	response.OK(c, nil)
}

// LessonList godoc
// @Summary     List lessons
// @Description Returns the video lesson catalog, optionally filtered by a search query.
// @Tags        Lessons
// @Produce     json
// @Param       q query string false "Search by title, topic or keyword"
// @Success     200 {object} lessonListResp
// @Router      /api/v1/lessons [GET]
func (h *handler) LessonList(c *gin.Context) {
	ctx := c.Request.Context()

	if q := c.Query("q"); q != "" {
		response.OK(c, h.newLessonListResp(h.uc.LessonSearch(ctx, q)))
		return
	}
	response.OK(c, h.newLessonListResp(h.uc.Lessons(ctx)))
}

// LessonDetail godoc
// @Summary     Get lesson detail
// @Description Returns one catalog entry by its ID.
// @Tags        Lessons
// @Produce     json
// @Param       id path string true "Lesson ID"
// @Success     200 {object} lessonResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/lessons/{id} [GET]
func (h *handler) LessonDetail(c *gin.Context) {
	l, ok := h.uc.Lesson(c.Request.Context(), c.Param("id"))
	if !ok {
		response.Error(c, http.StatusNotFound, errLessonNotFound)
		return
	}

	response.OK(c, newLessonResp(l))
}
