package storybook

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/thywilljoshua/storyviz/internal/ai"
)

// Config holds the collaborators of a run and the caller's choices. The
// models, loader and limiter are built once per process and shared by every
// run.
type Config struct {
	Loader   Loader
	Text     ai.TextModel
	Images   ai.ImageModel
	Limiter  *rate.Limiter
	Reporter Reporter
	Logger   *zerolog.Logger

	Style  Style
	Scenes int
}

type Result struct {
	CharCount    int            `json:"characters"`
	Summary      string         `json:"summary"`
	Prompts      []string       `json:"prompts"`
	PromptSource PromptSource   `json:"prompt_source"`
	Images       []SceneImage   `json:"-"`
	Failures     []SceneFailure `json:"-"`
}

func (c Config) validate() error {
	if c.Text == nil {
		return errors.New("no text model configured")
	}
	if c.Images == nil {
		return errors.New("no image model configured")
	}
	if err := ValidateSceneCount(c.Scenes); err != nil {
		return err
	}
	if !c.Style.Valid() {
		return fmt.Errorf("%w %q", ErrUnknownStyle, string(c.Style))
	}
	return nil
}

// Run turns the PDF at pdfPath into a summary, scene prompts and scene
// images. Any failure before the image stage aborts the run; image failures
// are collected in Result.Failures.
func Run(ctx context.Context, pdfPath string, cfg Config) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	if cfg.Loader == nil {
		cfg.Loader = NativeLoader{}
	}
	rep := cfg.Reporter
	if rep == nil {
		rep = NopReporter{}
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	log = log.With().Str("style", string(cfg.Style)).Int("scenes", cfg.Scenes).Logger()

	rep.Stage(StageLoad)
	pages, err := cfg.Loader.LoadPages(ctx, pdfPath)
	if err != nil {
		return Result{}, fmt.Errorf("load pdf: %w", err)
	}
	book := Unify(pages)
	log.Info().Str("stage", "load").Int("pages", len(pages)).Int("characters", len(book)).Msg("pdf loaded")
	rep.Loaded(len(book))
	res := Result{CharCount: len(book)}

	rep.Stage(StageSummarize)
	summary, err := Summarize(ctx, cfg.Text, book)
	if err != nil {
		return Result{}, fmt.Errorf("summarize: %w", err)
	}
	log.Info().Str("stage", "summarize").Int("length", len(summary)).Msg("summary generated")
	res.Summary = summary
	rep.Summary(summary)

	rep.Stage(StagePrompts)
	parsed, err := GenerateScenePrompts(ctx, cfg.Text, summary, cfg.Scenes, cfg.Style)
	if err != nil {
		return Result{}, fmt.Errorf("generate scene prompts: %w", err)
	}
	ev := log.Info()
	if len(parsed.Prompts) != cfg.Scenes {
		ev = log.Warn()
	}
	ev.Str("stage", "prompts").Stringer("source", parsed.Source).Int("requested", cfg.Scenes).Int("received", len(parsed.Prompts)).Msg("scene prompts parsed")
	res.Prompts = parsed.Prompts
	res.PromptSource = parsed.Source
	rep.Prompts(parsed)

	rep.Stage(StageImages)
	images, failures, err := RenderImages(ctx, cfg.Images, parsed.Prompts, cfg.Limiter, rep, log.With().Str("stage", "images").Logger())
	res.Images = images
	res.Failures = failures
	if err != nil {
		return res, fmt.Errorf("render images: %w", err)
	}
	return res, nil
}
