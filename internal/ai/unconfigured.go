package ai

import "context"

// Unconfigured is the stand-in Client used when no API credential is present.
// Every call fails with ErrNotConfigured without touching the network.
type Unconfigured struct{}

func (Unconfigured) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	return "", ErrNotConfigured
}

func (Unconfigured) Complete(ctx context.Context, prompt string) (string, error) {
	return "", ErrNotConfigured
}

func (Unconfigured) Ping(ctx context.Context) error { return ErrNotConfigured }

func (Unconfigured) Configured() bool { return false }
