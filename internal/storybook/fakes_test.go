package storybook

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/thywilljoshua/storyviz/internal/ai"
)

type fakeText struct {
	responses []string
	errs      []error
	prompts   []string
}

func (f *fakeText) Complete(_ context.Context, prompt string) (string, error) {
	i := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", fmt.Errorf("unexpected completion call %d", i+1)
}

// fakeImages answers with a small decoded image, or with PNG bytes when
// encoded is set. Prompts listed in fail get an error instead.
type fakeImages struct {
	fail    map[string]error
	encoded []byte
	prompts []string
	cancel  context.CancelFunc
}

func (f *fakeImages) TextToImage(_ context.Context, prompt string) (ai.ImageData, error) {
	f.prompts = append(f.prompts, prompt)
	if f.cancel != nil {
		f.cancel()
	}
	if err, ok := f.fail[prompt]; ok {
		return nil, err
	}
	if f.encoded != nil {
		return ai.EncodedBytes{Data: f.encoded, MIMEType: "image/png"}, nil
	}
	return ai.DecodedImage{Image: image.NewRGBA(image.Rect(0, 0, 2, 2))}, nil
}

type staticLoader struct {
	pages []string
	err   error
	paths []string
}

func (l *staticLoader) LoadPages(_ context.Context, path string) ([]string, error) {
	l.paths = append(l.paths, path)
	if l.err != nil {
		return nil, l.err
	}
	return l.pages, nil
}

type recordingReporter struct {
	events   []string
	failures []SceneFailure
}

func (r *recordingReporter) Stage(s Stage) { r.events = append(r.events, "stage:"+string(s)) }
func (r *recordingReporter) Loaded(chars int) {
	r.events = append(r.events, fmt.Sprintf("loaded:%d", chars))
}
func (r *recordingReporter) Summary(string) { r.events = append(r.events, "summary") }
func (r *recordingReporter) Prompts(p ParsedPrompts) {
	r.events = append(r.events, "prompts:"+strings.Join(p.Prompts, "|"))
}
func (r *recordingReporter) SceneStarted(i int, _ string) {
	r.events = append(r.events, fmt.Sprintf("start:%d", i))
}
func (r *recordingReporter) SceneRendered(img SceneImage) {
	r.events = append(r.events, fmt.Sprintf("done:%d", img.Index))
}
func (r *recordingReporter) SceneFailed(f SceneFailure) {
	r.events = append(r.events, fmt.Sprintf("fail:%d", f.Index))
	r.failures = append(r.failures, f)
}

var errRemote = errors.New("remote call failed")
