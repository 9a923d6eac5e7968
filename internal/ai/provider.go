package ai

import (
	"context"
	"fmt"
	"strings"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"
	ProviderOpenAI      = "openai"
	ProviderOllama      = "ollama"
)

// Settings selects and configures the text and image backends.
type Settings struct {
	TextProvider  string
	TextModel     string
	ImageProvider string
	ImageModel    string

	HuggingFaceToken string
	HFTextBaseURL    string
	HFImageBaseURL   string
	GeminiAPIKey     string
	GeminiBaseURL    string
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OllamaHost       string
}

func NewTextModel(ctx context.Context, s Settings) (TextModel, error) {
	switch strings.ToLower(s.TextProvider) {
	case "", ProviderHuggingFace:
		return NewHuggingFaceText(s.HuggingFaceToken, s.TextModel, s.HFTextBaseURL)
	case ProviderGemini:
		return NewGemini(ctx, GeminiOptions{APIKey: s.GeminiAPIKey, TextModel: s.TextModel, BaseURL: s.GeminiBaseURL})
	case ProviderOpenAI:
		return NewOpenAI(OpenAIOptions{APIKey: s.OpenAIAPIKey, BaseURL: s.OpenAIBaseURL, TextModel: s.TextModel})
	case ProviderOllama:
		return NewOllamaText(s.OllamaHost, s.TextModel)
	default:
		return nil, fmt.Errorf("unknown text provider %q", s.TextProvider)
	}
}

func NewImageModel(ctx context.Context, s Settings) (ImageModel, error) {
	switch strings.ToLower(s.ImageProvider) {
	case "", ProviderHuggingFace:
		return NewHFImage(s.HuggingFaceToken, s.ImageModel, s.HFImageBaseURL)
	case ProviderGemini:
		return NewGemini(ctx, GeminiOptions{APIKey: s.GeminiAPIKey, ImageModel: s.ImageModel, BaseURL: s.GeminiBaseURL})
	case ProviderOpenAI:
		return NewOpenAI(OpenAIOptions{APIKey: s.OpenAIAPIKey, BaseURL: s.OpenAIBaseURL, ImageModel: s.ImageModel})
	default:
		return nil, fmt.Errorf("unknown image provider %q", s.ImageProvider)
	}
}
