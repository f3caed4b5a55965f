package speech

import "context"

// ISTT defines the interface for speech-to-text
type ISTT interface {
	// Transcribe converts recorded audio to text in the given language.
	Transcribe(ctx context.Context, audio []byte, languageCode string) (string, error)
}

// ITTS defines the interface for text-to-speech
type ITTS interface {
	// Synthesize renders the text as audio (MP3) in the given language.
	Synthesize(ctx context.Context, text, languageCode string) ([]byte, error)
}
