package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"video-tutor/pkg/retry"
)

// DefaultSTTBaseURL is the Google web speech recognition endpoint
const DefaultSTTBaseURL = "http://www.google.com/speech-api/v2/recognize"

// STTConfig holds recognizer configuration
type STTConfig struct {
	APIKey     string
	BaseURL    string
	SampleRate int
	TimeoutSec int
}

// STTClient implements ISTT over the Google web speech API.
type STTClient struct {
	apiKey     string
	baseURL    string
	sampleRate int
	client     *http.Client
}

// NewSTT creates a new recognizer client
func NewSTT(cfg STTConfig) *STTClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultSTTBaseURL
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 16000
	}
	if cfg.TimeoutSec == 0 {
		cfg.TimeoutSec = 30
	}
	return &STTClient{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		sampleRate: cfg.SampleRate,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
	}
}

// sttResult is one line of the recognition response. The endpoint returns
// newline-separated JSON objects, the first of which may be empty.
type sttResult struct {
	Result []struct {
		Alternative []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternative"`
	} `json:"result"`
}

// Transcribe converts FLAC-encoded audio to text.
func (c *STTClient) Transcribe(ctx context.Context, audio []byte, languageCode string) (string, error) {
	if len(audio) == 0 {
		return "", retry.Wrap(retry.CategoryProcessing, fmt.Errorf("audio is empty"))
	}
	if languageCode == "" {
		languageCode = "en-US"
	}

	endpoint := fmt.Sprintf("%s?client=chromium&lang=%s&key=%s", c.baseURL, languageCode, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(audio))
	if err != nil {
		return "", retry.Wrap(retry.CategoryProcessing, fmt.Errorf("failed to create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", fmt.Sprintf("audio/x-flac; rate=%d", c.sampleRate))

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", retry.Wrap(retry.CategoryNetwork, fmt.Errorf("failed to send request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", retry.Wrap(retry.CategoryNetwork, fmt.Errorf("STT error %d", resp.StatusCode))
	}

	// The body is a sequence of JSON lines; take the first non-empty result.
	dec := json.NewDecoder(resp.Body)
	for {
		var r sttResult
		if err := dec.Decode(&r); err != nil {
			break
		}
		for _, res := range r.Result {
			for _, alt := range res.Alternative {
				if t := strings.TrimSpace(alt.Transcript); t != "" {
					return t, nil
				}
			}
		}
	}

	return "", retry.Wrap(retry.CategoryProcessing, fmt.Errorf("no transcription in response"))
}
