package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/huggingface"
	"github.com/tmc/langchaingo/llms/ollama"
)

const (
	DefaultHFTextModel     = "meta-llama/Llama-3.2-3B-Instruct"
	DefaultHFTextBaseURL   = "https://router.huggingface.co/hf-inference"
	DefaultOllamaTextModel = "llama3.2"
)

// LangChain adapts any langchaingo model to TextModel.
type LangChain struct {
	llm  llms.Model
	name string

	// trimEcho drops the prompt when the backend returns it ahead of the
	// generated text.
	trimEcho bool
}

func NewLangChain(name string, llm llms.Model) *LangChain {
	return &LangChain{llm: llm, name: name}
}

// NewHuggingFaceText builds the Hugging Face inference endpoint model. The
// client posts to baseURL/models/<model> and the text-generation task answers
// with the prompt followed by the completion, so the prompt is trimmed off.
func NewHuggingFaceText(token, model, baseURL string) (*LangChain, error) {
	if strings.TrimSpace(token) == "" {
		return nil, missingCredential("HUGGINGFACE_API_TOKEN")
	}
	if model == "" {
		model = DefaultHFTextModel
	}
	if baseURL == "" {
		baseURL = DefaultHFTextBaseURL
	}
	llm, err := huggingface.New(
		huggingface.WithToken(token),
		huggingface.WithModel(model),
		huggingface.WithURL(strings.TrimRight(baseURL, "/")),
	)
	if err != nil {
		return nil, fmt.Errorf("huggingface llm: %w", err)
	}
	lc := NewLangChain("huggingface", llm)
	lc.trimEcho = true
	return lc, nil
}

// NewOllamaText talks to a local or remote ollama server. An empty host
// falls back to OLLAMA_HOST and then to the library default.
func NewOllamaText(host, model string) (*LangChain, error) {
	if model == "" {
		model = DefaultOllamaTextModel
	}
	opts := []ollama.Option{ollama.WithModel(model)}
	if host == "" {
		host = os.Getenv("OLLAMA_HOST")
	}
	if host != "" {
		opts = append(opts, ollama.WithServerURL(host))
	}
	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("ollama llm: %w", err)
	}
	return NewLangChain("ollama", llm), nil
}

func (l *LangChain) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, l.llm, prompt, llms.WithTemperature(Temperature))
	if err != nil {
		return "", fmt.Errorf("%s completion: %w", l.name, err)
	}
	if l.trimEcho {
		out = strings.TrimPrefix(out, prompt)
	}
	return out, nil
}
