package vision

// Config holds client configuration
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	TimeoutSec int
}

// Analysis is the structured result of analyzing one image.
type Analysis struct {
	Description   string   `json:"description"`
	ExtractedText string   `json:"extracted_text,omitempty"`
	MathContent   []string `json:"math_content,omitempty"`
}

// request mirrors the chat completion body for multimodal messages.
type request struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content []part `json:"content"`
}

type part struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
