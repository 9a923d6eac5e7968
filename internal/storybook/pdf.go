package storybook

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	rpdf "rsc.io/pdf"
)

// Loader extracts page texts from a PDF, in page order.
type Loader interface {
	LoadPages(ctx context.Context, path string) ([]string, error)
}

// NativeLoader reads page text with rsc.io/pdf.
type NativeLoader struct{}

func (NativeLoader) LoadPages(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	doc, err := openReader(f, fi.Size())
	if err != nil {
		return nil, fmt.Errorf("parse pdf %s: %w", path, err)
	}

	n := doc.NumPage()
	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := doc.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := pageText(p)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// openReader guards against the reader panicking on damaged files.
func openReader(f *os.File, size int64) (doc *rpdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("malformed pdf: %v", r)
		}
	}()
	return rpdf.NewReader(f, size)
}

// pageText rebuilds a page's text from its positioned glyphs. Glyphs on a new
// baseline start a new line; a horizontal gap wider than a fraction of the
// font size is read as a space, since the reader does not emit space glyphs.
func pageText(p rpdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("read page content: %v", r)
		}
	}()

	var b strings.Builder
	var prev *rpdf.Text
	for _, t := range p.Content().Text {
		if prev != nil {
			size := math.Max(prev.FontSize, 1)
			switch {
			case math.Abs(t.Y-prev.Y) > size/2:
				b.WriteByte('\n')
			case t.X-(prev.X+prev.W) > size*0.15 && t.S != " " && prev.S != " ":
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
		prev = &t
	}
	return b.String(), nil
}
