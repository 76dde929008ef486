package ai

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured is returned by every call when no API credential was
	// provided at startup.
	ErrNotConfigured = errors.New("ai service not configured")

	// ErrTranscriptionFailed wraps any speech-to-text failure (network,
	// service error, malformed audio).
	ErrTranscriptionFailed = errors.New("transcription failed")
)

// Client is the capability surface over the external speech-to-text and
// chat-completion services.
type Client interface {
	// Transcribe sends the audio file at path to the speech-to-text service
	// and returns the trimmed plain-text transcript.
	Transcribe(ctx context.Context, audioPath, language string) (string, error)

	// Complete sends a prompt to the chat-completion service and returns the
	// raw response text.
	Complete(ctx context.Context, prompt string) (string, error)

	// Ping issues a minimal live call for health checking.
	Ping(ctx context.Context) error

	// Configured reports whether a service credential is present.
	Configured() bool
}
