package openai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"video-tutor/pkg/retry"
)

// Client implements IOpenAI interface
type Client struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// New creates a new OpenAI client
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, retry.Wrap(retry.CategoryAuth, fmt.Errorf("API key is required"))
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.TimeoutSec == 0 {
		cfg.TimeoutSec = 60
	}

	return &Client{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		baseURL:     cfg.BaseURL,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
	}, nil
}

// Complete sends a chat completion request and waits for the full response
func (c *Client) Complete(ctx context.Context, req *Request) (*Response, error) {
	c.fillDefaults(req)
	req.Stream = false

	resp, err := c.post(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, retry.Wrap(retry.CategoryNetwork, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, respBody)
	}

	var result Response
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, retry.Wrap(retry.CategoryProcessing, fmt.Errorf("failed to parse response: %w", err))
	}
	if len(result.Choices) == 0 {
		return nil, retry.Wrap(retry.CategoryProcessing, fmt.Errorf("response contains no choices"))
	}

	return &result, nil
}

// CompleteStream sends a chat completion request with streaming enabled.
// The returned Stream delivers tokens as they arrive; the caller must Close
// it (Close is safe after Recv returned io.EOF).
func (c *Client) CompleteStream(ctx context.Context, req *Request) (Stream, error) {
	c.fillDefaults(req)
	req.Stream = true

	resp, err := c.post(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, statusError(resp.StatusCode, respBody)
	}

	return &sseStream{
		body:    resp.Body,
		scanner: bufio.NewScanner(resp.Body),
	}, nil
}

func (c *Client) fillDefaults(req *Request) {
	if req.Model == "" {
		req.Model = c.model
	}
	if req.Temperature == 0 {
		req.Temperature = c.temperature
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = c.maxTokens
	}
}

func (c *Client) post(ctx context.Context, req *Request) (*http.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, retry.Wrap(retry.CategoryProcessing, fmt.Errorf("failed to marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, retry.Wrap(retry.CategoryProcessing, fmt.Errorf("failed to create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, retry.Wrap(retry.CategoryNetwork, fmt.Errorf("failed to send request: %w", err))
	}
	return resp, nil
}

// statusError maps an HTTP status to an error carrying its retry category.
func statusError(status int, body []byte) error {
	msg := string(body)
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		msg = errResp.Error.Message
	}

	err := fmt.Errorf("API error %d: %s", status, msg)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return retry.Wrap(retry.CategoryAuth, err)
	case status == http.StatusTooManyRequests:
		return retry.Wrap(retry.CategoryRateLimit, err)
	case status >= 500:
		return retry.Wrap(retry.CategoryNetwork, err)
	default:
		return retry.Wrap(retry.CategoryProcessing, err)
	}
}

// sseStream parses the server-sent-events body of a streamed completion.
type sseStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	closed  bool
}

func (s *sseStream) Recv() (string, error) {
	if s.closed {
		return "", io.EOF
	}

	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			return "", io.EOF
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return "", retry.Wrap(retry.CategoryProcessing, fmt.Errorf("failed to parse stream chunk: %w", err))
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if content := chunk.Choices[0].Delta.Content; content != "" {
			return content, nil
		}
		if chunk.Choices[0].FinishReason != "" {
			return "", io.EOF
		}
	}

	if err := s.scanner.Err(); err != nil {
		return "", retry.Wrap(retry.CategoryNetwork, fmt.Errorf("stream interrupted: %w", err))
	}
	return "", io.EOF
}

// Close releases the underlying connection. Safe to call more than once.
func (s *sseStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.body.Close()
}

// EstimateTokens approximates token usage for streamed completions, which
// carry no usage block. Four characters per token is the usual rule of
// thumb.
func EstimateTokens(texts ...string) int {
	n := 0
	for _, t := range texts {
		n += len(t) / 4
	}
	return n
}
