package summarize

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/meetscribe/scribe-engine/internal/metrics"
)

// Completer is the slice of the AI client the engine needs.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const (
	defaultMaxAttempts = 3
	defaultBaseBackoff = time.Second
)

// Engine turns a transcript into a structured Analysis via the external
// chat-completion service, degrading to a local heuristic after retries.
// It never returns an error: summarization must not fail the request.
type Engine struct {
	client Completer
	log    zerolog.Logger

	maxAttempts int
	baseBackoff time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

func NewEngine(client Completer, log zerolog.Logger) *Engine {
	return &Engine{
		client:      client,
		log:         log.With().Str("component", "summarize").Logger(),
		maxAttempts: defaultMaxAttempts,
		baseBackoff: defaultBaseBackoff,
		sleep:       sleepCtx,
	}
}

// WithRetryPolicy overrides the attempt count and initial backoff.
// A zero backoff makes retries immediate, which keeps tests fast.
func (e *Engine) WithRetryPolicy(maxAttempts int, baseBackoff time.Duration) *Engine {
	e.maxAttempts = maxAttempts
	e.baseBackoff = baseBackoff
	return e
}

// Summarize calls the completion service with up to maxAttempts tries and
// exponential backoff between them, then falls back to the local heuristic.
// The second return value reports whether the fallback produced the result.
func (e *Engine) Summarize(ctx context.Context, transcript string) (Analysis, bool) {
	prompt := buildPrompt(transcript)

	delay := e.baseBackoff
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		text, err := e.client.Complete(ctx, prompt)
		if err == nil {
			metrics.SummariesTotal.WithLabelValues("ai").Inc()
			return shape(text), false
		}

		e.log.Warn().Err(err).Int("attempt", attempt).Msg("completion attempt failed")

		if attempt < e.maxAttempts {
			if serr := e.sleep(ctx, delay); serr != nil {
				break
			}
			delay *= 2
		}
	}

	e.log.Warn().Msg("all completion attempts failed, using local fallback analysis")
	metrics.SummariesTotal.WithLabelValues("fallback").Inc()
	return Fallback(transcript), true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
