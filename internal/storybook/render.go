package storybook

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/thywilljoshua/storyviz/internal/ai"
)

// SceneImage is a rendered scene. Index is the 1-based position of the
// prompt it was rendered from.
type SceneImage struct {
	Index  int
	Prompt string
	Image  image.Image
}

// ImageLabels captions rendered images by display position, Scene 1 through
// Scene len(images). Index keeps the originating prompt position.
func ImageLabels(images []SceneImage) []string {
	labels := make([]string, len(images))
	for i := range images {
		labels[i] = SceneLabel(i + 1)
	}
	return labels
}

// SceneFailure describes a scene whose image could not be produced.
type SceneFailure struct {
	Index  int
	Prompt string
	Err    error
}

func (f SceneFailure) Error() string {
	return fmt.Sprintf("error generating image for Scene %d with prompt '%s': %v", f.Index, f.Prompt, f.Err)
}

func (f SceneFailure) Unwrap() error { return f.Err }

func SceneLabel(i int) string { return fmt.Sprintf("Scene %d", i) }

// RenderScene makes one image request and normalizes the answer.
func RenderScene(ctx context.Context, model ai.ImageModel, prompt string) (image.Image, error) {
	data, err := model.TextToImage(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ai.NormalizeImage(data)
}

// RenderImages renders prompts one at a time, in order. A scene that fails is
// reported and left out; the others keep their relative order. Only context
// cancellation stops the loop early.
func RenderImages(ctx context.Context, model ai.ImageModel, prompts []string, limiter *rate.Limiter, rep Reporter, log zerolog.Logger) ([]SceneImage, []SceneFailure, error) {
	if rep == nil {
		rep = NopReporter{}
	}
	var images []SceneImage
	var failures []SceneFailure
	for i, prompt := range prompts {
		idx := i + 1
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return images, failures, err
			}
		} else if err := ctx.Err(); err != nil {
			return images, failures, err
		}

		rep.SceneStarted(idx, prompt)
		sl := log.With().Int("scene", idx).Logger()
		start := time.Now()

		img, err := RenderScene(ctx, model, prompt)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return images, failures, ctxErr
			}
			f := SceneFailure{Index: idx, Prompt: prompt, Err: err}
			sl.Error().Err(err).Str("prompt", prompt).Msg("scene generation failed")
			failures = append(failures, f)
			rep.SceneFailed(f)
			continue
		}

		si := SceneImage{Index: idx, Prompt: prompt, Image: img}
		sl.Info().Dur("duration", time.Since(start).Round(time.Millisecond)).Msg("scene generation completed")
		images = append(images, si)
		rep.SceneRendered(si)
	}
	return images, failures, nil
}
