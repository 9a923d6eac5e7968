package storybook

// Stage names a pipeline step as shown to the user.
type Stage string

const (
	StageLoad      Stage = "Processing PDF..."
	StageSummarize Stage = "Generating summary..."
	StagePrompts   Stage = "Generating depiction prompts..."
	StageImages    Stage = "Generating images..."
)

// Reporter receives progress from a run. Calls happen on the goroutine that
// called Run, in pipeline order.
type Reporter interface {
	Stage(s Stage)
	Loaded(chars int)
	Summary(summary string)
	Prompts(p ParsedPrompts)
	SceneStarted(index int, prompt string)
	SceneRendered(img SceneImage)
	SceneFailed(f SceneFailure)
}

type NopReporter struct{}

func (NopReporter) Stage(Stage) {}
func (NopReporter) Loaded(int) {}
func (NopReporter) Summary(string) {}
func (NopReporter) Prompts(ParsedPrompts) {}
func (NopReporter) SceneStarted(int, string) {}
func (NopReporter) SceneRendered(SceneImage) {}
func (NopReporter) SceneFailed(SceneFailure) {}
