// Package llm provides the chat completion client used by the
// research, scoring, and outreach stages.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/plinian/pipeline/pkg/utils"
)

// Completer issues a single system+user prompt and returns the raw
// model text
type Completer interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

// Client is the OpenAI-backed Completer
type Client struct {
	api   openai.Client
	model string
}

const DEFAULT_MODEL = "gpt-4o"

// completionTimeout bounds a single completion call so a stalled
// provider cannot hold a webhook handler open indefinitely
const completionTimeout = 60 * time.Second

// NewClient builds a completion client from config
func NewClient(config *utils.Config) (*Client, error) {
	apiKey := config.Get("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not configured")
	}

	model := config.GetWithDefault("LLM_MODEL", DEFAULT_MODEL)

	return &Client{
		api:   openai.NewClient(option.WithAPIKey(apiKey)),
		model: model,
	}, nil
}

// Complete runs one chat completion and returns the assistant text
func (c *Client) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	}
	if maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(maxTokens))
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
