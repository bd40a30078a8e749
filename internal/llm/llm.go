package llm

import (
	"context"
	"errors"
)

// Message roles in the provider-agnostic wire format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Options are per-call generation parameters. Zero values mean the
// provider's defaults.
type Options struct {
	Temperature float32
	MaxTokens   int
}

// StreamChunk is one fragment of a streamed completion. A chunk with a
// non-nil Err terminates the stream.
type StreamChunk struct {
	Content string
	Err     error
}

// Provider is a pluggable response-generation backend. Implementations hold
// only long-lived client handles and are safe for concurrent use; they do
// not retry failed calls.
type Provider interface {
	// Generate returns a complete text completion for the message sequence.
	Generate(ctx context.Context, messages []Message, opts Options) (Response, error)
	// Stream emits the completion token by token. The channel is closed when
	// the completion finishes; the consumer pulls, the producer suspends
	// between tokens.
	Stream(ctx context.Context, messages []Message, opts Options) (<-chan StreamChunk, error)
}

// ErrProviderNotAvailable is returned when a caller asks for a provider name
// that is not registered.
var ErrProviderNotAvailable = errors.New("provider not available")
