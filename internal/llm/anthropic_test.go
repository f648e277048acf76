package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{name: "empty uses default", baseURL: "", want: "https://api.anthropic.com/v1/messages"},
		{name: "custom base URL", baseURL: "https://custom.api.com", want: "https://custom.api.com/v1/messages"},
		{name: "trailing slash handled", baseURL: "https://api.anthropic.com/", want: "https://api.anthropic.com/v1/messages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnthropic("key", WithBaseURL(tt.baseURL))
			assert.Equal(t, tt.want, a.endpoint())
		})
	}
}

func TestAnthropicComplete(t *testing.T) {
	var got anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "claude-sonnet-4-20250514",
			"content": [
				{"type": "text", "text": "first"},
				{"type": "tool_use", "text": "ignored"},
				{"type": "text", "text": "second"}
			],
			"usage": {"input_tokens": 12, "output_tokens": 34}
		}`))
	}))
	defer server.Close()

	a := NewAnthropic("secret", WithBaseURL(server.URL))
	resp, err := a.Complete(context.Background(), Request{
		System:   "be brief",
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "first\nsecond", resp.Content)
	assert.Equal(t, 12, resp.Usage.InputTokens)
	assert.Equal(t, 34, resp.Usage.OutputTokens)

	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, DefaultMaxTokens, got.MaxTokens)
	assert.Equal(t, "be brief", got.System)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hi", got.Messages[0].Content)
}

func TestAnthropicUpstreamErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		rateLimited bool
		auth        bool
	}{
		{
			name:        "auth error carries upstream message",
			status:      http.StatusUnauthorized,
			body:        `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`,
			wantMessage: "Anthropic API error: invalid x-api-key",
			auth:        true,
		},
		{
			name:        "rate limit",
			status:      http.StatusTooManyRequests,
			body:        `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`,
			wantMessage: "Anthropic API error: slow down",
			rateLimited: true,
		},
		{
			name:        "unparseable body falls back",
			status:      http.StatusBadGateway,
			body:        `<html>bad gateway</html>`,
			wantMessage: FallbackMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewAnthropic("key", WithBaseURL(server.URL)).Complete(context.Background(), Request{
				Messages: []Message{{Role: "user", Content: "hi"}},
			})
			require.Error(t, err)

			var ge *GatewayError
			require.True(t, errors.As(err, &ge))
			assert.Equal(t, tt.wantMessage, ge.Error())
			assert.Equal(t, tt.status, ge.StatusCode)
			assert.Equal(t, tt.rateLimited, IsRateLimited(err))
			assert.Equal(t, tt.auth, IsAuth(err))
		})
	}
}

func TestAnthropicTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewAnthropic("key", WithBaseURL(url)).Complete(context.Background(), Request{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})

	var ge *GatewayError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, FallbackMessage, ge.Message)
	assert.Zero(t, ge.StatusCode)
}

func TestNewGateway(t *testing.T) {
	g, err := New("", "key")
	require.NoError(t, err)
	assert.IsType(t, &Anthropic{}, g)

	g, err = New(ProviderOpenAI, "key")
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, g)

	_, err = New("mystery", "key")
	assert.Error(t, err)

	_, err = New(ProviderAnthropic, "")
	assert.Error(t, err)
}
