package vision

import (
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

const (
	// DefaultModel handles both printed and handwritten content
	DefaultModel = "gpt-4o"

	// DefaultBaseURL is the OpenAI API endpoint
	DefaultBaseURL = "https://api.openai.com/v1"

	maxAnalysisTokens = 1500
)

const analysisPrompt = `Analyze this image and provide:
1. All text content (both printed and handwritten)
2. Mathematical expressions and equations
3. Geometric shapes and diagrams
4. Educational context and concepts
5. Any mathematical notation or symbols

Be thorough and accurate in your analysis.`

// Client implements IVision interface
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// New creates a new vision client
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
	if cfg.TimeoutSec == 0 {
		cfg.TimeoutSec = 30
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
	}, nil
}

// Analyze sends the image to the vision model and extracts text and math
// content from the description.
func (c *Client) Analyze(ctx context.Context, imageBase64 string) (*Analysis, error) {
	if imageBase64 == "" {
		return nil, retry.Wrap(retry.CategoryProcessing, fmt.Errorf("image data is empty"))
	}

	body, err := json.Marshal(request{
		Model: c.model,
		Messages: []message{
			{
				Role: "user",
				Content: []part{
					{Type: "text", Text: analysisPrompt},
					{Type: "image_url", ImageURL: &imageURL{
						URL: "data:image/jpeg;base64," + imageBase64,
					}},
				},
			},
		},
		MaxTokens: maxAnalysisTokens,
	})
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
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, retry.Wrap(retry.CategoryNetwork, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		msg := string(respBody)
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			msg = errResp.Error.Message
		}
		err := fmt.Errorf("vision API error %d: %s", resp.StatusCode, msg)
		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return nil, retry.Wrap(retry.CategoryAuth, err)
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, retry.Wrap(retry.CategoryRateLimit, err)
		case resp.StatusCode >= 500:
			return nil, retry.Wrap(retry.CategoryNetwork, err)
		default:
			return nil, retry.Wrap(retry.CategoryProcessing, err)
		}
	}

	var result response
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, retry.Wrap(retry.CategoryProcessing, fmt.Errorf("failed to parse response: %w", err))
	}
	if len(result.Choices) == 0 {
		return nil, retry.Wrap(retry.CategoryProcessing, fmt.Errorf("response contains no choices"))
	}

	description := result.Choices[0].Message.Content
	return &Analysis{
		Description:   description,
		ExtractedText: extractText(description),
		MathContent:   extractMath(description),
	}, nil
}

// extractText keeps the first few plain prose lines of the description.
func extractText(description string) string {
	var kept []string
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "**") || strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
		if len(kept) == 5 {
			break
		}
	}
	return strings.Join(kept, " ")
}

// extractMath keeps lines that look like expressions or equations.
func extractMath(description string) []string {
	var out []string
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.ContainsAny(line, "=+-*/^²³√∫∑") {
			out = append(out, line)
			if len(out) == 3 {
				break
			}
		}
	}
	return out
}

// Context renders the analysis as a prompt snippet for the tutor.
func (a *Analysis) Context() string {
	var parts []string
	if a.ExtractedText != "" {
		parts = append(parts, "Text in image: "+a.ExtractedText)
	}
	if len(a.MathContent) > 0 {
		parts = append(parts, "Math equations: "+strings.Join(a.MathContent, ", "))
	}
	if a.Description != "" {
		parts = append(parts, "Image analysis: "+a.Description)
	}
	if len(parts) == 0 {
		return "Image uploaded (no content extracted)"
	}
	return strings.Join(parts, "\n")
}
