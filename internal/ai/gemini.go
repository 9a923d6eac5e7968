package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "google.golang.org/genai"
)

const (
	DefaultGeminiTextModel  = "gemini-2.5-flash"
	DefaultGeminiImageModel = "imagen-4.0-generate-001"
)

// GeminiOptions configures the Gemini backend. BaseURL is only set in tests
// or behind a proxy.
type GeminiOptions struct {
	APIKey     string
	TextModel  string
	ImageModel string
	BaseURL    string
}

// Gemini serves both text completions and Imagen renders from one client.
type Gemini struct {
	client     *genai.Client
	model      string
	imageModel string
}

func NewGemini(ctx context.Context, opts GeminiOptions) (*Gemini, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, missingCredential("GEMINI_API_KEY")
	}
	if opts.TextModel == "" {
		opts.TextModel = DefaultGeminiTextModel
	}
	if opts.ImageModel == "" {
		opts.ImageModel = DefaultGeminiImageModel
	}
	cc := &genai.ClientConfig{APIKey: opts.APIKey, Backend: genai.BackendGeminiAPI}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: c, model: opts.TextModel, imageModel: opts.ImageModel}, nil
}

func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", errors.New("gemini not configured")
	}
	res, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}, &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](Temperature)})
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return res.Text(), nil
}

func (g *Gemini) TextToImage(ctx context.Context, prompt string) (ImageData, error) {
	if g.client == nil {
		return nil, errors.New("gemini not configured")
	}
	res, err := g.client.Models.GenerateImages(ctx, g.imageModel, prompt, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini generate images: %w", err)
	}
	if res == nil || len(res.GeneratedImages) == 0 {
		return nil, ErrNoImage
	}
	gi := res.GeneratedImages[0]
	if gi == nil || gi.Image == nil || len(gi.Image.ImageBytes) == 0 {
		if gi != nil && gi.RAIFilteredReason != "" {
			return nil, fmt.Errorf("%w: filtered: %s", ErrNoImage, gi.RAIFilteredReason)
		}
		return nil, ErrNoImage
	}
	return EncodedBytes{Data: gi.Image.ImageBytes, MIMEType: gi.Image.MIMEType}, nil
}
