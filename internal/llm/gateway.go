// ABOUTME: Provider-agnostic model gateway used for plan generation and the chat proxy.
// ABOUTME: The credential is bound at construction; callers only supply prompts.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "claude-sonnet-4-20250514"

	// DefaultMaxTokens is used when a request leaves MaxTokens unset.
	DefaultMaxTokens = 2000

	// requestTimeout allows for slow completions of long plans.
	requestTimeout = 180 * time.Second

	// maxResponseSize limits the upstream response body.
	maxResponseSize = 10 * 1024 * 1024
)

// Provider names accepted by New.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Gateway completes a single prompt against a hosted model.
type Gateway interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Message is one turn of the conversation. Role is "user" or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a completion request.
type Request struct {
	System    string
	Messages  []Message
	MaxTokens int
}

// Usage reports token consumption.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Response is the text returned by the model.
type Response struct {
	Content string
	Model   string
	Usage   Usage
}

// Option configures a provider.
type Option func(*options)

type options struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(o *options) {
		if model != "" {
			o.model = model
		}
	}
}

// WithBaseURL points the provider at a different API host.
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

func buildOptions(defaultModel string, opts []Option) options {
	o := options{
		model:      defaultModel,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New builds the gateway for the named provider.
func New(provider, apiKey string, opts ...Option) (Gateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("no API key configured for provider %q", provider)
	}

	switch provider {
	case "", ProviderAnthropic:
		return NewAnthropic(apiKey, opts...), nil
	case ProviderOpenAI:
		return NewOpenAI(apiKey, opts...), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %s", provider)
	}
}

func maxTokens(req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return DefaultMaxTokens
}
