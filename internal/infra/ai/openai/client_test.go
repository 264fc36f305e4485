package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domai "github.com/kumarsatish86/complianceos-suggest/internal/domain/ai"
)

func clientFor(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: "gpt-4o-mini"}
}

func TestGenerateContextualAnswer(t *testing.T) {
	c := clientFor(t, http.StatusOK, `{
		"id": "cmpl-1",
		"object": "chat.completion",
		"choices": [{"index": 0, "finish_reason": "stop",
			"message": {"role": "assistant", "content": "Yes, we maintain documented policies."}}]
	}`)

	got, err := c.GenerateContextualAnswer(context.Background(), "Do you have a security policy?")
	require.NoError(t, err)
	assert.Equal(t, "Yes, we maintain documented policies.", got)
}

func TestGenerateContextualAnswerQuota(t *testing.T) {
	c := clientFor(t, http.StatusTooManyRequests,
		`{"error": {"message": "rate limit reached", "type": "requests"}}`)

	_, err := c.GenerateContextualAnswer(context.Background(), "Any question")
	require.ErrorIs(t, err, domai.ErrQuotaExceeded)
}

func TestGenerateContextualAnswerUnavailable(t *testing.T) {
	c := clientFor(t, http.StatusServiceUnavailable,
		`{"error": {"message": "upstream overloaded", "type": "server_error"}}`)

	_, err := c.GenerateContextualAnswer(context.Background(), "Any question")
	require.ErrorIs(t, err, domai.ErrUnavailable)
}

func TestGenerateContextualAnswerEmptyChoices(t *testing.T) {
	c := clientFor(t, http.StatusOK, `{"id": "cmpl-2", "object": "chat.completion", "choices": []}`)

	_, err := c.GenerateContextualAnswer(context.Background(), "Any question")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty completion")
}
