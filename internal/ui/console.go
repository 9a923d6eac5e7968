// Package ui renders a storybook run on the terminal.
package ui

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/thywilljoshua/storyviz/internal/storybook"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	failure = color.New(color.FgRed)
	dim     = color.New(color.Faint)
)

// Console implements storybook.Reporter. Results go to out; progress goes
// to progress, with a spinner and a progress bar when interactive.
type Console struct {
	out         io.Writer
	progress    io.Writer
	interactive bool

	spin *spinner.Spinner
	bar  *progressbar.ProgressBar
}

func NewConsole(out, progress io.Writer, interactive bool) *Console {
	return &Console{out: out, progress: progress, interactive: interactive}
}

func (c *Console) Stage(s storybook.Stage) {
	c.stopSpinner()
	if s == storybook.StageImages {
		return
	}
	if !c.interactive {
		dim.Fprintln(c.progress, string(s))
		return
	}
	c.spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	c.spin.Writer = c.progress
	c.spin.Suffix = " " + string(s)
	c.spin.Start()
}

func (c *Console) Loaded(chars int) {
	c.stopSpinner()
	fmt.Fprintf(c.out, "PDF loaded. Total characters extracted: %d\n", chars)
}

func (c *Console) Summary(summary string) {
	c.stopSpinner()
	section(c.out, "Summary")
	fmt.Fprintln(c.out, summary)
}

func (c *Console) Prompts(p storybook.ParsedPrompts) {
	c.stopSpinner()
	section(c.out, "Depiction Prompts")
	for i, prompt := range p.Prompts {
		fmt.Fprintf(c.out, "%s: %s\n", storybook.SceneLabel(i+1), prompt)
	}
	if c.interactive && len(p.Prompts) > 0 {
		c.bar = progressbar.NewOptions(len(p.Prompts),
			progressbar.OptionSetWriter(c.progress),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
}

func (c *Console) SceneStarted(index int, _ string) {
	msg := fmt.Sprintf("Generating image for %s...", storybook.SceneLabel(index))
	if c.bar != nil {
		c.bar.Describe(msg)
		return
	}
	dim.Fprintln(c.progress, msg)
}

func (c *Console) SceneRendered(storybook.SceneImage) {
	if c.bar != nil {
		_ = c.bar.Add(1)
	}
}

func (c *Console) SceneFailed(f storybook.SceneFailure) {
	if c.bar != nil {
		_ = c.bar.Add(1)
		fmt.Fprintln(c.progress)
	}
	failure.Fprintf(c.progress, "✗ %s\n", f.Error())
}

// Images lists the saved scene files after the run.
func (c *Console) Images(paths map[int]string, images []storybook.SceneImage) {
	c.finish()
	if len(images) == 0 {
		return
	}
	section(c.out, "Generated Images")
	labels := storybook.ImageLabels(images)
	for i, img := range images {
		fmt.Fprintf(c.out, "%s: %s\n", labels[i], paths[img.Index])
	}
}

func (c *Console) finish() {
	c.stopSpinner()
	if c.bar != nil {
		_ = c.bar.Finish()
		c.bar = nil
	}
}

func (c *Console) stopSpinner() {
	if c.spin != nil {
		c.spin.Stop()
		c.spin = nil
	}
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w)
	heading.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
}

// SaveImages writes each scene as scene-N.png under dir and returns the
// paths keyed by scene index.
func SaveImages(dir string, images []storybook.SceneImage) (map[int]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make(map[int]string, len(images))
	for _, img := range images {
		p := filepath.Join(dir, fmt.Sprintf("scene-%d.png", img.Index))
		f, err := os.Create(p)
		if err != nil {
			return paths, err
		}
		err = png.Encode(f, img.Image)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return paths, fmt.Errorf("write %s: %w", p, err)
		}
		paths[img.Index] = p
	}
	return paths, nil
}
