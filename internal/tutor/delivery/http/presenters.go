package http

import (
	"video-tutor/internal/cache"
	"video-tutor/internal/lesson"
	"video-tutor/internal/session"
	"video-tutor/internal/tutor"
	"video-tutor/pkg/response"
)

// --- Request DTOs ---

type askReq struct {
	UserID   string `json:"user_id"  binding:"required,min=1,max=128"`
	LessonID string `json:"lesson_id" binding:"max=128"`
	Question string `json:"question" binding:"required,min=1,max=4000"`
	Language string `json:"language" binding:"max=8"`
}

func (r askReq) toInput() tutor.AnswerInput {
	return tutor.AnswerInput{
		UserID:   r.UserID,
		LessonID: r.LessonID,
		Question: r.Question,
		Language: r.Language,
	}
}

type imageReq struct {
	UserID      string `json:"user_id"      binding:"required,min=1,max=128"`
	LessonID    string `json:"lesson_id"    binding:"max=128"`
	ImageBase64 string `json:"image_base64" binding:"required"`
}

func (r imageReq) toInput() tutor.ImageInput {
	return tutor.ImageInput{
		UserID:      r.UserID,
		LessonID:    r.LessonID,
		ImageBase64: r.ImageBase64,
	}
}

type speakReq struct {
	Text     string `json:"text"     binding:"required,min=1,max=4000"`
	Language string `json:"language" binding:"max=8"`
}

func (r speakReq) toInput() tutor.SpeakInput {
	return tutor.SpeakInput{Text: r.Text, Language: r.Language}
}

// --- Response DTOs ---

type askResp struct {
	Answer       string `json:"answer"`
	TokensUsed   int    `json:"tokens_used"`
	FromCache    bool   `json:"from_cache"`
	Degraded     bool   `json:"degraded"`
	SessionKey   string `json:"session_key"`
	IsNewSession bool   `json:"is_new_session"`
}

func (h *handler) newAskResp(out tutor.AnswerOutput) askResp {
	return askResp{
		Answer:       out.Answer,
		TokensUsed:   out.TokensUsed,
		FromCache:    out.FromCache,
		Degraded:     out.Degraded,
		SessionKey:   out.SessionKey,
		IsNewSession: out.IsNewSession,
	}
}

type imageResp struct {
	Context    string `json:"context"`
	SessionKey string `json:"session_key"`
}

func (h *handler) newImageResp(out tutor.ImageOutput) imageResp {
	return imageResp{Context: out.Context, SessionKey: out.SessionKey}
}

type transcribeResp struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

func (h *handler) newTranscribeResp(out tutor.TranscribeOutput) transcribeResp {
	return transcribeResp{Text: out.Text, Language: out.Language}
}

type sessionResp struct {
	SessionKey   string            `json:"session_key"`
	UserID       string            `json:"user_id"`
	LessonID     string            `json:"lesson_id"`
	Turns        int               `json:"turns"`
	TokensUsed   int               `json:"tokens_used"`
	CreatedAt    response.DateTime `json:"created_at"`
	LastActivity response.DateTime `json:"last_activity"`
}

func newSessionResp(info session.Info) sessionResp {
	return sessionResp{
		SessionKey:   info.Key,
		UserID:       info.UserID,
		LessonID:     info.LessonID,
		Turns:        info.Turns,
		TokensUsed:   info.TokensUsed,
		CreatedAt:    response.DateTime(info.CreatedAt),
		LastActivity: response.DateTime(info.LastActivity),
	}
}

type sessionListResp struct {
	Sessions []sessionResp `json:"sessions"`
	Total    int           `json:"total"`
}

func (h *handler) newSessionListResp(infos []session.Info) sessionListResp {
	sessions := make([]sessionResp, len(infos))
	for i, info := range infos {
		sessions[i] = newSessionResp(info)
	}
	return sessionListResp{Sessions: sessions, Total: len(sessions)}
}

type sessionEndResp struct {
	Ended bool `json:"ended"`
}

type cacheStatsResp struct {
	Hits         uint64  `json:"hits"`
	Misses       uint64  `json:"misses"`
	Evictions    uint64  `json:"evictions"`
	TotalEntries int     `json:"total_entries"`
	SizeBytes    int64   `json:"size_bytes"`
	HitRate      float64 `json:"hit_rate"`
}

func (h *handler) newCacheStatsResp(stats cache.Stats) cacheStatsResp {
	hitRate := 0.0
	if total := stats.Hits + stats.Misses; total > 0 {
		hitRate = float64(stats.Hits) / float64(total)
	}
	return cacheStatsResp{
		Hits:         stats.Hits,
		Misses:       stats.Misses,
		Evictions:    stats.Evictions,
		TotalEntries: stats.TotalEntries,
		SizeBytes:    stats.SizeBytes,
		HitRate:      hitRate,
	}
}

type lessonResp struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Topic      string   `json:"topic"`
	Difficulty string   `json:"difficulty"`
	Duration   int      `json:"duration_seconds"`
	Keywords   []string `json:"keywords,omitempty"`
}

func newLessonResp(l lesson.Lesson) lessonResp {
	return lessonResp{
		ID:         l.ID,
		Title:      l.Title,
		Topic:      l.Topic,
		Difficulty: l.Difficulty,
		Duration:   l.Duration,
		Keywords:   l.Keywords,
	}
}

type lessonListResp struct {
	Lessons []lessonResp `json:"lessons"`
	Total   int          `json:"total"`
}

func (h *handler) newLessonListResp(lessons []lesson.Lesson) lessonListResp {
	out := make([]lessonResp, len(lessons))
	for i, l := range lessons {
		out[i] = newLessonResp(l)
	}
	return lessonListResp{Lessons: out, Total: len(out)}
}
