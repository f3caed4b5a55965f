package openai

import "context"

// IOpenAI defines the interface for the OpenAI chat completion client
type IOpenAI interface {
	// Complete runs one full-response chat completion.
	Complete(ctx context.Context, req *Request) (*Response, error)
	// CompleteStream starts a streamed completion. The caller must drain or
	// Close the returned stream.
	CompleteStream(ctx context.Context, req *Request) (Stream, error)
}

// Stream is an in-flight streamed completion. Recv returns content tokens
// until io.EOF signals normal completion; any other error means the stream
// broke mid-way.
type Stream interface {
	Recv() (string, error)
	Close() error
}
