package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const completionMaxTokens = 1000

// GroqClient talks to the Groq OpenAI-compatible API: Whisper for
// transcription, a chat model for completions.
type GroqClient struct {
	api             *openai.Client
	transcribeModel string
	chatModel       string
}

// Options configures a GroqClient.
type Options struct {
	APIKey          string
	BaseURL         string
	TranscribeModel string
	ChatModel       string
}

// NewGroqClient creates a live client. The caller is expected to have checked
// that an API key is present; use Unconfigured otherwise.
func NewGroqClient(opts Options) *GroqClient {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	return &GroqClient{
		api:             openai.NewClientWithConfig(cfg),
		transcribeModel: opts.TranscribeModel,
		chatModel:       opts.ChatModel,
	}
}

func (c *GroqClient) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.transcribeModel,
		FilePath: audioPath,
		Language: language,
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}
	return strings.TrimSpace(resp.Text), nil
}

func (c *GroqClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.chatModel,
		MaxTokens:   completionMaxTokens,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Ping issues a tiny completion to verify the service is reachable.
func (c *GroqClient) Ping(ctx context.Context) error {
	_, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.chatModel,
		MaxTokens: 10,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "Hello"},
		},
	})
	return err
}

func (c *GroqClient) Configured() bool { return true }
