// ABOUTME: Anthropic Messages API provider.
// ABOUTME: Posts to /v1/messages and concatenates the returned text blocks.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	anthropicName    = "Anthropic"
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// Anthropic implements Gateway against the Anthropic Messages API.
type Anthropic struct {
	apiKey string
	opts   options
}

// NewAnthropic creates an Anthropic gateway bound to apiKey.
func NewAnthropic(apiKey string, opts ...Option) *Anthropic {
	o := buildOptions(DefaultModel, opts)
	if o.baseURL == "" {
		o.baseURL = anthropicBaseURL
	}
	return &Anthropic{apiKey: apiKey, opts: o}
}

type anthropicRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model string `json:"model"`
	Usage Usage  `json:"usage"`
}

type anthropicErrorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// endpoint constructs the messages URL from the base URL.
func (a *Anthropic) endpoint() string {
	return strings.TrimSuffix(a.opts.baseURL, "/") + "/v1/messages"
}

// Complete sends one Messages API call. There are no retries.
func (a *Anthropic) Complete(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(anthropicRequest{
		Model:     a.opts.model,
		MaxTokens: maxTokens(req),
		System:    req.System,
		Messages:  req.Messages,
	})
	if err != nil {
		return nil, newGatewayError(anthropicName, 0, "", fmt.Errorf("build request body: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, newGatewayError(anthropicName, 0, "", fmt.Errorf("create HTTP request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", a.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	httpResp, err := a.opts.httpClient.Do(httpReq)
	if err != nil {
		return nil, newGatewayError(anthropicName, 0, "", fmt.Errorf("HTTP request failed: %w", err))
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return nil, newGatewayError(anthropicName, httpResp.StatusCode, "", fmt.Errorf("read response body: %w", err))
	}

	if httpResp.StatusCode != http.StatusOK {
		var errBody anthropicErrorBody
		_ = json.Unmarshal(respBody, &errBody)
		return nil, newGatewayError(anthropicName, httpResp.StatusCode, errBody.Error.Message,
			fmt.Errorf("status %d", httpResp.StatusCode))
	}

	var resp anthropicResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, newGatewayError(anthropicName, httpResp.StatusCode, "", fmt.Errorf("parse response: %w", err))
	}

	var texts []string
	for _, block := range resp.Content {
		if block.Type == "text" {
			texts = append(texts, block.Text)
		}
	}

	return &Response{
		Content: strings.Join(texts, "\n"),
		Model:   resp.Model,
		Usage:   resp.Usage,
	}, nil
}
