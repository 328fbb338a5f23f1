package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestOpenAIService(url string) *OpenAIService {
	return &OpenAIService{APIKey: "openai-key", BaseURL: url, Model: "gpt-4o", client: resty.New()}
}

func TestOpenAIService_Complete(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer openai-key", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		req := gjson.ParseBytes(body)
		assert.Equal(t, "gpt-4o", req.Get("model").String())
		assert.Equal(t, "system", req.Get("messages.0.role").String())
		assert.Equal(t, "be helpful", req.Get("messages.0.content.0.text").String())
		assert.Equal(t, "user", req.Get("messages.1.role").String())
		assert.Equal(t, "text", req.Get("messages.1.content.0.type").String())
		assert.Equal(t, "the prompt", req.Get("messages.1.content.0.text").String())
		assert.Equal(t, float64(1), req.Get("temperature").Float())
		assert.Equal(t, float64(1), req.Get("top_p").Float())
		assert.True(t, req.Get("frequency_penalty").Exists())
		assert.True(t, req.Get("presence_penalty").Exists())
		assert.Equal(t, int64(MaxCompletionTokens), req.Get("max_completion_tokens").Int())
		assert.Equal(t, "json_schema", req.Get("response_format.type").String())
		assert.Equal(t, "resume_schema", req.Get("response_format.json_schema.name").String())
		assert.True(t, req.Get("response_format.json_schema.strict").Bool())
		assert.Equal(t, "cv", req.Get("response_format.json_schema.schema.required.0").String())

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"cv\":{\"city\":\"Dubai\"}}"}}]}`))
	}))
	defer server.Close()

	out, err := newTestOpenAIService(server.URL).Complete(context.Background(), "the prompt", "be helpful")

	require.NoError(t, err)
	assert.JSONEq(t, `{"cv":{"city":"Dubai"}}`, out)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestOpenAIService_ErrorStatusIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded"}}`))
	}))
	defer server.Close()

	_, err := newTestOpenAIService(server.URL).Complete(context.Background(), "the prompt", "sys")

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusServiceUnavailable, upstream.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestOpenAIService_NoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	_, err := newTestOpenAIService(server.URL).Complete(context.Background(), "the prompt", "sys")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content")
}

func TestOpenAIService_Refusal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":null,"refusal":"I can't help with that."}}]}`))
	}))
	defer server.Close()

	_, err := newTestOpenAIService(server.URL).Complete(context.Background(), "the prompt", "sys")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "refused")
}

func TestOpenAIService_EmptyPrompt(t *testing.T) {
	_, err := newTestOpenAIService("http://unused").Complete(context.Background(), "  ", "sys")
	assert.EqualError(t, err, "prompt cannot be empty")
}
