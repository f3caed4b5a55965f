package vision

import "context"

// IVision defines the interface for the image analysis client
type IVision interface {
	// Analyze describes the image (base64-encoded) for tutoring context:
	// text content, math expressions, shapes and diagrams.
	Analyze(ctx context.Context, imageBase64 string) (*Analysis, error)
}
