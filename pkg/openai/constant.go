package openai

const (
	// DefaultBaseURL is the default OpenAI API endpoint
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the default chat model
	DefaultModel = "gpt-4o-mini"

	// DefaultTemperature keeps answers focused rather than creative
	DefaultTemperature = 0.3

	// DefaultMaxTokens bounds a single answer
	DefaultMaxTokens = 700
)
