package storybook

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_EndToEnd(t *testing.T) {
	loader := &staticLoader{pages: []string{"Once upon a time.", " The end."}}
	text := &fakeText{responses: []string{
		"A short tale that ends.",
		`["A cat in a garden.", "A sunset over the sea."]`,
	}}
	images := &fakeImages{}
	rep := &recordingReporter{}

	res, err := Run(context.Background(), "/tmp/book.pdf", Config{
		Loader:   loader,
		Text:     text,
		Images:   images,
		Reporter: rep,
		Style:    Cartoon,
		Scenes:   3,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"/tmp/book.pdf"}, loader.paths)

	require.Len(t, text.prompts, 2)
	assert.Equal(t, summarizePrompt("Once upon a time. The end."), text.prompts[0])
	assert.Equal(t, depictionPrompt("A short tale that ends.", 3, Cartoon), text.prompts[1])

	assert.Equal(t, []string{"A cat in a garden.", "A sunset over the sea."}, images.prompts)

	assert.Equal(t, len("Once upon a time. The end."), res.CharCount)
	assert.Equal(t, "A short tale that ends.", res.Summary)
	assert.Equal(t, SourceJSONArray, res.PromptSource)
	assert.Equal(t, []string{"A cat in a garden.", "A sunset over the sea."}, res.Prompts)
	assert.Len(t, res.Images, 2)
	assert.Empty(t, res.Failures)

	assert.Equal(t, []string{
		"stage:" + string(StageLoad),
		"loaded:26",
		"stage:" + string(StageSummarize),
		"summary",
		"stage:" + string(StagePrompts),
		"prompts:A cat in a garden.|A sunset over the sea.",
		"stage:" + string(StageImages),
		"start:1", "done:1", "start:2", "done:2",
	}, rep.events)
}

func TestRun_LineFallbackAndPartialFailure(t *testing.T) {
	text := &fakeText{responses: []string{"summary", "Scene one\n\nScene two\nScene three"}}
	images := &fakeImages{fail: map[string]error{"Scene three": errRemote}}

	res, err := Run(context.Background(), "book.pdf", Config{
		Loader: &staticLoader{pages: []string{"text"}},
		Text:   text,
		Images: images,
		Style:  Vintage,
		Scenes: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, SourceLines, res.PromptSource)
	assert.Equal(t, []string{"Scene one", "Scene two", "Scene three"}, res.Prompts)
	assert.Equal(t, []int{1, 2}, indexes(res.Images))
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 3, res.Failures[0].Index)
	assert.Equal(t, "Scene three", res.Failures[0].Prompt)
}

func TestRun_ValidatesInputsBeforeIO(t *testing.T) {
	cases := []struct {
		name   string
		style  Style
		scenes int
		want   error
	}{
		{"zero scenes", Anime, 0, ErrInvalidSceneCount},
		{"eleven scenes", Anime, 11, ErrInvalidSceneCount},
		{"unknown style", Style("Cubist"), 2, ErrUnknownStyle},
		{"empty style", Style(""), 2, ErrUnknownStyle},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loader := &staticLoader{pages: []string{"x"}}
			text := &fakeText{}

			_, err := Run(context.Background(), "book.pdf", Config{
				Loader: loader, Text: text, Images: &fakeImages{}, Style: tc.style, Scenes: tc.scenes,
			})
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, loader.paths)
			assert.Empty(t, text.prompts)
		})
	}
}

func TestRun_FailuresBeforeImagesAbort(t *testing.T) {
	errLoad := errors.New("not a pdf")

	t.Run("loader", func(t *testing.T) {
		text := &fakeText{}
		_, err := Run(context.Background(), "book.pdf", Config{
			Loader: &staticLoader{err: errLoad}, Text: text, Images: &fakeImages{}, Style: Anime, Scenes: 1,
		})
		assert.ErrorIs(t, err, errLoad)
		assert.Contains(t, err.Error(), "load pdf")
		assert.Empty(t, text.prompts)
	})

	t.Run("summarizer", func(t *testing.T) {
		text := &fakeText{errs: []error{errRemote}}
		images := &fakeImages{}
		_, err := Run(context.Background(), "book.pdf", Config{
			Loader: &staticLoader{pages: []string{"x"}}, Text: text, Images: images, Style: Anime, Scenes: 1,
		})
		assert.ErrorIs(t, err, errRemote)
		assert.Contains(t, err.Error(), "summarize")
		assert.Len(t, text.prompts, 1)
		assert.Empty(t, images.prompts)
	})

	t.Run("prompt generator", func(t *testing.T) {
		text := &fakeText{responses: []string{"summary"}, errs: []error{nil, errRemote}}
		images := &fakeImages{}
		res, err := Run(context.Background(), "book.pdf", Config{
			Loader: &staticLoader{pages: []string{"x"}}, Text: text, Images: images, Style: Anime, Scenes: 1,
		})
		assert.ErrorIs(t, err, errRemote)
		assert.Contains(t, err.Error(), "generate scene prompts")
		assert.Empty(t, res.Summary)
		assert.Empty(t, images.prompts)
	})
}

func TestRun_MissingModels(t *testing.T) {
	_, err := Run(context.Background(), "book.pdf", Config{Images: &fakeImages{}, Style: Anime, Scenes: 1})
	assert.ErrorContains(t, err, "no text model")

	_, err = Run(context.Background(), "book.pdf", Config{Text: &fakeText{}, Style: Anime, Scenes: 1})
	assert.ErrorContains(t, err, "no image model")
}
