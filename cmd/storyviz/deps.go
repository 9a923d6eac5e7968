package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/thywilljoshua/storyviz/internal/ai"
	"github.com/thywilljoshua/storyviz/internal/config"
	"github.com/thywilljoshua/storyviz/internal/document/mupdf"
	"github.com/thywilljoshua/storyviz/internal/logging"
	"github.com/thywilljoshua/storyviz/internal/server"
	"github.com/thywilljoshua/storyviz/internal/storybook"
)

func loadConfig(path string) (config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	log := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: os.Stderr})
	return cfg, log, nil
}

func settingsFrom(cfg config.Config) ai.Settings {
	s := ai.Settings{
		TextProvider:     cfg.Text.Provider,
		TextModel:        cfg.Text.Model,
		ImageProvider:    cfg.Image.Provider,
		ImageModel:       cfg.Image.Model,
		HuggingFaceToken: cfg.Secrets.HuggingFaceToken,
		GeminiAPIKey:     cfg.Secrets.GeminiAPIKey,
		OpenAIAPIKey:     cfg.Secrets.OpenAIAPIKey,
	}
	applyBaseURL(&s, cfg.Text, false)
	applyBaseURL(&s, cfg.Image, true)
	return s
}

func applyBaseURL(s *ai.Settings, m config.ModelConfig, image bool) {
	if m.BaseURL == "" {
		return
	}
	switch strings.ToLower(m.Provider) {
	case ai.ProviderGemini:
		s.GeminiBaseURL = m.BaseURL
	case ai.ProviderOpenAI:
		s.OpenAIBaseURL = m.BaseURL
	case ai.ProviderOllama:
		s.OllamaHost = m.BaseURL
	case ai.ProviderHuggingFace:
		if image {
			s.HFImageBaseURL = m.BaseURL
		} else {
			s.HFTextBaseURL = m.BaseURL
		}
	}
}

// buildDeps creates the models, loader and limiter once per process.
func buildDeps(ctx context.Context, cfg config.Config) (server.Deps, error) {
	s := settingsFrom(cfg)
	text, err := ai.NewTextModel(ctx, s)
	if err != nil {
		return server.Deps{}, fmt.Errorf("text model: %w", err)
	}
	images, err := ai.NewImageModel(ctx, s)
	if err != nil {
		return server.Deps{}, fmt.Errorf("image model: %w", err)
	}

	var loader storybook.Loader = storybook.NativeLoader{}
	if strings.EqualFold(cfg.Loader, config.LoaderMuPDF) {
		loader = mupdf.Loader{}
	}

	return server.Deps{
		Loader:  loader,
		Text:    text,
		Images:  images,
		Limiter: imageLimiter(cfg.ImageRatePerMinute),
	}, nil
}

func imageLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}
