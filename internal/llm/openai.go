// ABOUTME: OpenAI chat completions provider built on go-openai.
// ABOUTME: The system prompt is sent as the leading system message.
package llm

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	openAIName         = "OpenAI"
	defaultOpenAIModel = openai.GPT4o
)

// OpenAI implements Gateway against the OpenAI chat completions API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI gateway bound to apiKey.
func NewOpenAI(apiKey string, opts ...Option) *OpenAI {
	o := buildOptions(defaultOpenAIModel, opts)
	// The Anthropic default name means nothing to OpenAI.
	if strings.HasPrefix(o.model, "claude-") {
		o.model = defaultOpenAIModel
	}

	cfg := openai.DefaultConfig(apiKey)
	if o.baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(o.baseURL, "/") + "/v1"
	}
	cfg.HTTPClient = o.httpClient

	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: o.model}
}

// Complete sends one chat completion. There are no retries.
func (g *OpenAI) Complete(ctx context.Context, req Request) (*Response, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     g.model,
		MaxTokens: maxTokens(req),
		Messages:  messages,
	})
	if err != nil {
		return nil, classifyOpenAIError(err)
	}

	var texts []string
	for _, choice := range resp.Choices {
		texts = append(texts, choice.Message.Content)
	}

	return &Response{
		Content: strings.Join(texts, "\n"),
		Model:   resp.Model,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}

func classifyOpenAIError(err error) *GatewayError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return newGatewayError(openAIName, apiErr.HTTPStatusCode, apiErr.Message, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return newGatewayError(openAIName, reqErr.HTTPStatusCode, "", err)
	}
	return newGatewayError(openAIName, 0, "", err)
}
