package ai

import (
	"context"
	"errors"
	"fmt"
)

// Temperature is sent with every text completion.
const Temperature = 0.2

var ErrMissingCredential = errors.New("missing credential")

// TextModel completes a single prompt.
type TextModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ImageModel renders one image for a prompt.
type ImageModel interface {
	TextToImage(ctx context.Context, prompt string) (ImageData, error)
}

func missingCredential(env string) error {
	return fmt.Errorf("%w: set %s", ErrMissingCredential, env)
}
