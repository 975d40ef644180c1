package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Phase represents a stage in the report pipeline
type Phase string

const (
	PhaseLoading    Phase = "Loading"
	PhaseAnalyzing  Phase = "Analyzing"
	PhaseGenerating Phase = "Generating"
)

// DefaultPhases lists the pipeline stages in execution order
func DefaultPhases() []Phase {
	return []Phase{PhaseLoading, PhaseAnalyzing, PhaseGenerating}
}

// ProgressBar wraps the progressbar library with our custom styling
type ProgressBar struct {
	bar   *progressbar.ProgressBar
	phase Phase
}

// NewProgressBarWithOutput creates a new progress bar with custom output
func NewProgressBarWithOutput(phase Phase, total int, output io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(output),
		progressbar.OptionSetDescription(fmt.Sprintf("[%s]", phase)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetPredictTime(false),
	)

	return &ProgressBar{
		bar:   bar,
		phase: phase,
	}
}

// silentBar returns a bar that renders nothing
func silentBar(phase Phase, total int) *ProgressBar {
	return &ProgressBar{
		bar:   progressbar.NewOptions(total, progressbar.OptionSetWriter(io.Discard)),
		phase: phase,
	}
}

// Increment increments the progress bar by 1
func (pb *ProgressBar) Increment() error {
	return pb.bar.Add(1)
}

// Describe updates the description of the progress bar
func (pb *ProgressBar) Describe(description string) {
	pb.bar.Describe(fmt.Sprintf("[%s] %s", pb.phase, description))
}

// Finish completes the progress bar
func (pb *ProgressBar) Finish() error {
	return pb.bar.Finish()
}

// Pipeline represents a multi-phase progress tracking system
type Pipeline struct {
	phases   []Phase
	current  int
	bars     []*ProgressBar
	disabled bool
	output   io.Writer
}

// NewPipeline creates a new pipeline progress tracker writing to stderr,
// which keeps stdout free for the run's progress lines
func NewPipeline(phases []Phase) *Pipeline {
	return NewPipelineWithOutput(phases, os.Stderr)
}

// NewPipelineWithOutput creates a new pipeline with custom output
func NewPipelineWithOutput(phases []Phase, output io.Writer) *Pipeline {
	return &Pipeline{
		phases:  phases,
		current: -1,
		bars:    make([]*ProgressBar, 0, len(phases)),
		output:  output,
	}
}

// Disable disables the progress bar output
func (p *Pipeline) Disable() {
	p.disabled = true
}

// NextPhase moves to the next phase and returns a new progress bar.
// Past the last phase it returns a silent bar so callers never get nil.
func (p *Pipeline) NextPhase(total int) *ProgressBar {
	p.finishCurrent()

	p.current++
	if p.current >= len(p.phases) {
		return silentBar("", total)
	}

	phase := p.phases[p.current]
	var bar *ProgressBar
	if p.disabled {
		bar = silentBar(phase, total)
	} else {
		bar = NewProgressBarWithOutput(phase, total, p.output)
	}
	p.bars = append(p.bars, bar)
	return bar
}

// Finish completes all phases
func (p *Pipeline) Finish() {
	p.finishCurrent()
}

func (p *Pipeline) finishCurrent() {
	if p.current >= 0 && p.current < len(p.bars) {
		p.bars[p.current].Finish()
	}
}
