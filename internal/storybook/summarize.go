package storybook

import (
	"context"
	"strings"

	"github.com/thywilljoshua/storyviz/internal/ai"
)

const summarizeTemplate = "Summarize the following story text in a concise manner:\n\n{text}\n\nSummary:"

func summarizePrompt(text string) string {
	return strings.Replace(summarizeTemplate, "{text}", text, 1)
}

// Summarize makes one completion call and returns the output verbatim.
func Summarize(ctx context.Context, model ai.TextModel, text string) (string, error) {
	return model.Complete(ctx, summarizePrompt(text))
}
