package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *CompletionService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewCompletionService(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	require.NoError(t, err)
	return svc
}

func TestNewCompletionService_RequiresAPIKey(t *testing.T) {
	_, err := NewCompletionService(Config{})
	assert.Error(t, err)
}

func TestComplete_Success(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		// Temperature must be present and zero, not omitted.
		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		temp, ok := raw["temperature"]
		require.True(t, ok, "temperature must be serialised")
		assert.Equal(t, float64(0), temp)
		assert.Equal(t, DefaultModel, raw["model"])

		w.Write([]byte(`{"choices":[{"message":{"content":"hello there"}}]}`)) //nolint:errcheck
	})

	answer, err := svc.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello there", answer)
}

func TestComplete_APIError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit exceeded","type":"rate_limit"}}`)) //nolint:errcheck
	})

	_, err := svc.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestComplete_NonOKWithoutErrorBody(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{}`)) //nolint:errcheck
	})

	_, err := svc.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestComplete_NoChoices(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices":[]}`)) //nolint:errcheck
	})

	_, err := svc.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response choices")
}

func TestName(t *testing.T) {
	svc, err := NewCompletionService(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "groq", svc.Name())
}
