package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"video-tutor/pkg/retry"
)

// DefaultTTSBaseURL is the Google Translate speech endpoint
const DefaultTTSBaseURL = "https://translate.google.com/translate_tts"

// TTSConfig holds synthesizer configuration
type TTSConfig struct {
	BaseURL    string
	TimeoutSec int
}

// TTSClient implements ITTS over the Google Translate speech endpoint.
type TTSClient struct {
	baseURL string
	client  *http.Client
}

// NewTTS creates a new synthesizer client
func NewTTS(cfg TTSConfig) *TTSClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultTTSBaseURL
	}
	if cfg.TimeoutSec == 0 {
		cfg.TimeoutSec = 30
	}
	return &TTSClient{
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
	}
}

// Synthesize renders text as MP3 audio.
func (c *TTSClient) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	if text == "" {
		return nil, retry.Wrap(retry.CategoryProcessing, fmt.Errorf("text is empty"))
	}
	if languageCode == "" {
		languageCode = "en"
	}

	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("q", text)
	q.Set("tl", languageCode)

	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, retry.Wrap(retry.CategoryProcessing, fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, retry.Wrap(retry.CategoryNetwork, fmt.Errorf("failed to send request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, retry.Wrap(retry.CategoryNetwork, fmt.Errorf("TTS error %d", resp.StatusCode))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, retry.Wrap(retry.CategoryNetwork, fmt.Errorf("failed to read audio: %w", err))
	}
	return audio, nil
}
