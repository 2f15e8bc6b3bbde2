// Package assistant turns the orchestrator's fixed-template drafts into
// friendlier conversational messages. The templates are always the source of
// truth for facts; the assistant only rephrases, and any failure falls back
// to the draft untouched.
package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// Generator rewrites a drafted notification message. Implementations must
// never fail outward; the draft is the guaranteed fallback.
type Generator interface {
	Compose(ctx context.Context, kind, draft string) string
}

// Template passes drafts through unchanged. Used when no API key is
// configured.
type Template struct{}

func (Template) Compose(_ context.Context, _, draft string) string { return draft }

const systemPrompt = "You are a personal attendance assistant. Rewrite the " +
	"given status update in a brief, friendly tone. Keep every time, date and " +
	"number exactly as given. Reply with the rewritten message only."

// OpenAI rephrases drafts through the chat completion API.
type OpenAI struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{
		client:  openai.NewClient(apiKey),
		model:   openai.GPT4oMini,
		timeout: 15 * time.Second,
	}
}

func (a *OpenAI) Compose(ctx context.Context, kind, draft string) string {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: draft},
		},
		MaxTokens: 200,
	})
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("kind", kind).Msg("Message generation failed, using template")
		return draft
	}
	if len(resp.Choices) == 0 {
		return draft
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return draft
	}
	return out
}
