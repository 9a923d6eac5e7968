// Package mupdf extracts page text with the MuPDF engine.
package mupdf

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// Loader reads page text through go-fitz. It satisfies storybook.Loader.
type Loader struct{}

func (Loader) LoadPages(ctx context.Context, path string) ([]string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer doc.Close()

	n := doc.NumPage()
	pages := make([]string, 0, n)
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		text, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
