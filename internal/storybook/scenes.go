package storybook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/thywilljoshua/storyviz/internal/ai"
)

const (
	MinScenes = 1
	MaxScenes = 10
)

var ErrInvalidSceneCount = errors.New("scene count out of range")

const depictionTemplate = `
You are an AI assistant that generates visual depiction prompts for a text-to-image model.
Given the following summary of a child's story and the illustration style "%s", generate exactly %d distinct, short, and clear prompts that each describe one key scene from the story.
Output the result as a JSON array of strings (do not include any additional text or explanation).

Summary: %s
JSON Array of Prompts:
`

func depictionPrompt(summary string, count int, style Style) string {
	return fmt.Sprintf(depictionTemplate, style, count, summary)
}

// PromptSource records which branch produced a prompt list.
type PromptSource int

const (
	SourceJSONArray PromptSource = iota
	SourceLines
)

func (s PromptSource) String() string {
	switch s {
	case SourceJSONArray:
		return "json"
	case SourceLines:
		return "lines"
	default:
		return "unknown"
	}
}

func (s PromptSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParsedPrompts is the prompt list together with how it was obtained.
type ParsedPrompts struct {
	Source  PromptSource
	Prompts []string
}

// ParsePrompts decodes raw as a JSON array of strings and uses it as-is.
// Anything that does not decode falls back to the non-empty trimmed lines of
// raw, in order.
func ParsePrompts(raw string) ParsedPrompts {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil && list != nil {
		return ParsedPrompts{Source: SourceJSONArray, Prompts: list}
	}
	return ParsedPrompts{Source: SourceLines, Prompts: splitLines(raw)}
}

// splitLines breaks on every line boundary a model may emit, including the
// ASCII separators and the Unicode line and paragraph separators, then trims
// each line and drops the blank ones.
func splitLines(s string) []string {
	lines := []string{}
	for _, ln := range strings.FieldsFunc(s, isLineBreak) {
		ln = strings.TrimFunc(ln, isBlank)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

func isBlank(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

func ValidateSceneCount(n int) error {
	if n < MinScenes || n > MaxScenes {
		return fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidSceneCount, n, MinScenes, MaxScenes)
	}
	return nil
}

// GenerateScenePrompts asks the model for count scene prompts in style and
// parses the answer with ParsePrompts. The model's count is not checked
// against the request.
func GenerateScenePrompts(ctx context.Context, model ai.TextModel, summary string, count int, style Style) (ParsedPrompts, error) {
	out, err := model.Complete(ctx, depictionPrompt(summary, count, style))
	if err != nil {
		return ParsedPrompts{}, err
	}
	return ParsePrompts(out), nil
}
