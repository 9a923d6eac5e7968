package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGemini_Complete(t *testing.T) {
	var gotPath string
	var body map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Summary text."}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	g, err := NewGemini(context.Background(), GeminiOptions{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	out, err := g.Complete(context.Background(), "Summarize")
	require.NoError(t, err)
	assert.Equal(t, "Summary text.", out)
	assert.True(t, strings.HasSuffix(gotPath, DefaultGeminiTextModel+":generateContent"), gotPath)

	cfg, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing: %v", body)
	assert.InDelta(t, Temperature, cfg["temperature"], 1e-6)
}

func TestGemini_MissingKey(t *testing.T) {
	_, err := NewGemini(context.Background(), GeminiOptions{})
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}
