package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultOpenAITextModel  = openai.GPT4oMini
	DefaultOpenAIImageModel = openai.CreateImageModelDallE3
)

type OpenAIOptions struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
}

// OpenAI serves chat completions and image generation.
type OpenAI struct {
	client     *openai.Client
	model      string
	imageModel string
}

func NewOpenAI(opts OpenAIOptions) (*OpenAI, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, missingCredential("OPENAI_API_KEY")
	}
	if opts.TextModel == "" {
		opts.TextModel = DefaultOpenAITextModel
	}
	if opts.ImageModel == "" {
		opts.ImageModel = DefaultOpenAIImageModel
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	return &OpenAI{
		client:     openai.NewClientWithConfig(cfg),
		model:      opts.TextModel,
		imageModel: opts.ImageModel,
	}, nil
}

func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAI) TextToImage(ctx context.Context, prompt string) (ImageData, error) {
	resp, err := o.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          o.imageModel,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("openai create image: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, ErrNoImage
	}
	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("decode b64_json: %w", err)
	}
	return EncodedBytes{Data: data, MIMEType: "image/png"}, nil
}
