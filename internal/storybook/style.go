package storybook

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownStyle = errors.New("unknown illustration style")

// Style is the illustration style requested from the image model.
type Style string

const (
	Photorealistic Style = "Photorealistic"
	Cartoon        Style = "Cartoon"
	Watercolor     Style = "Watercolor"
	Vintage        Style = "Vintage"
	Anime          Style = "Anime"
)

// DefaultStyle is the first entry of Styles.
const DefaultStyle = Photorealistic

var styles = []Style{Photorealistic, Cartoon, Watercolor, Vintage, Anime}

// Styles lists the selectable styles in display order.
func Styles() []Style {
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

// ParseStyle matches s against the known styles, ignoring case.
func ParseStyle(s string) (Style, error) {
	s = strings.TrimSpace(s)
	for _, st := range styles {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w %q (want one of %s)", ErrUnknownStyle, s, joinStyles())
}

func (s Style) Valid() bool {
	for _, st := range styles {
		if s == st {
			return true
		}
	}
	return false
}

func joinStyles() string {
	names := make([]string, len(styles))
	for i, st := range styles {
		names[i] = string(st)
	}
	return strings.Join(names, ", ")
}
