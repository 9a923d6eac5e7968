package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thywilljoshua/storyviz/internal/ai"
	"github.com/thywilljoshua/storyviz/internal/config"
	"github.com/thywilljoshua/storyviz/internal/document/mupdf"
)

func TestSettingsFromRoutesBaseURLs(t *testing.T) {
	cfg := config.Default()
	cfg.Text = config.ModelConfig{Provider: "openai", Model: "gpt-4o", BaseURL: "http://llm.local/v1"}
	cfg.Image = config.ModelConfig{Provider: "huggingface", BaseURL: "http://hf.local"}
	cfg.Secrets.OpenAIAPIKey = "sk-test"

	s := settingsFrom(cfg)
	assert.Equal(t, "openai", s.TextProvider)
	assert.Equal(t, "gpt-4o", s.TextModel)
	assert.Equal(t, "http://llm.local/v1", s.OpenAIBaseURL)
	assert.Equal(t, "http://hf.local", s.HFImageBaseURL)
	assert.Equal(t, "sk-test", s.OpenAIAPIKey)
	assert.Empty(t, s.GeminiBaseURL)
	assert.Empty(t, s.HFTextBaseURL)

	cfg.Text = config.ModelConfig{Provider: "huggingface", BaseURL: "http://hf-text.local"}
	s = settingsFrom(cfg)
	assert.Equal(t, "http://hf-text.local", s.HFTextBaseURL)
}

func TestImageLimiter(t *testing.T) {
	assert.Nil(t, imageLimiter(0))
	l := imageLimiter(30)
	require.NotNil(t, l)
	assert.Equal(t, 1, l.Burst())
	assert.InDelta(t, 0.5, float64(l.Limit()), 1e-9)
}

func TestBuildDeps(t *testing.T) {
	cfg := config.Default()
	cfg.Text.Provider = "openai"
	cfg.Image.Provider = "openai"
	cfg.Secrets.OpenAIAPIKey = "sk-test"
	cfg.Loader = config.LoaderMuPDF

	deps, err := buildDeps(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &ai.OpenAI{}, deps.Text)
	assert.IsType(t, mupdf.Loader{}, deps.Loader)
	assert.Nil(t, deps.Limiter)

	cfg.Secrets.OpenAIAPIKey = ""
	_, err = buildDeps(context.Background(), cfg)
	assert.True(t, errors.Is(err, ai.ErrMissingCredential))
}
