// Package badge builds the standalone README status badges: the
// orchestration badge cycling through work phases, and the terminal-style
// focus badge typing out CLI status messages.
package badge

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/xob0t/statuscards/pkg/animation"
	"github.com/xob0t/statuscards/pkg/generator"
	"github.com/xob0t/statuscards/pkg/template"
)

// Scale is the retina factor of badge images.
const Scale = 2

// Badge geometry in points.
var geometry = template.BadgeOptions{
	Height:   20,
	PadX:     8,
	FontSize: 11,
	Lift:     2,
}

// Default output paths.
const (
	OrchestrationOutput = "assets/status-orchestration.gif"
	FocusOutput         = "assets/status-focus.gif"
)

// OrchestrationPhases are the work phases shown by the orchestration badge.
var OrchestrationPhases = []animation.Phase{
	{Text: "Planning", Color: "#F59E0B", Cycles: 3, Pause: 300, Hold: 800},
	{Text: "Building", Color: "#58A6FF", Cycles: 12, Pause: 300, Hold: 600},
	{Text: "Testing", Color: "#8B5CF6", Cycles: 5, Pause: 300, Hold: 800},
	{Text: "Shipping", Color: "#10B981", Cycles: 2, Pause: 300, Hold: 2000},
}

// Focus badge styling.
const (
	FocusBackground = "#1a1a2e"
	FocusText       = "#58A6FF"
)

// FocusMessages are the CLI-style status lines typed by the focus badge.
var FocusMessages = []string{
	"$ orchestrate --waves 3",
	"[swarm] 8 active | 2 queued",
	"compacting... 2.5x density",
	"build #284 ✓ tests passing",
	"session compacted: 73% saved",
}

// Focus badge timing in milliseconds.
const (
	focusBlinks    = 3
	focusHold      = 12 * 250
	focusSpinner   = 2
	focusFinalHold = 8 * 300
)

// OrchestrationScript returns the orchestration badge script for seed.
func OrchestrationScript(seed uint64) animation.Script {
	return animation.NewSequencer(seed, animation.BadgeTiming).Phases(OrchestrationPhases, 0)
}

// FocusScript returns the focus badge script for seed. Each message is
// introduced by a blinking cursor, typed and held; messages are separated
// by spinner cycles and the last message is held longer.
func FocusScript(seed uint64) animation.Script {
	s := animation.NewSequencer(seed, animation.FocusTiming)
	var sc animation.Script
	for i, msg := range FocusMessages {
		sc = append(sc, s.Blink(FocusBackground, focusBlinks)...)
		sc = append(sc, s.Typing(msg, FocusBackground)...)
		sc = append(sc, s.Hold(msg, FocusBackground, focusHold)...)
		if i < len(FocusMessages)-1 {
			sc = append(sc, s.Spinner("", FocusBackground, focusSpinner)...)
		}
	}
	last := FocusMessages[len(FocusMessages)-1]
	return append(sc, s.Hold(last, FocusBackground, focusFinalHold)...)
}

// Orchestration renders the orchestration badge. The badge is sized to
// hold the longest phase text with its dots.
func Orchestration(fonts *template.FontManager, seed uint64) (animation.Sequence, error) {
	var widest []string
	for _, p := range OrchestrationPhases {
		widest = append(widest, p.Text+"...")
	}
	b := template.NewRenderer(fonts, Scale).Badge(geometry, widest...)
	return render(OrchestrationScript(seed), b)
}

// Focus renders the focus badge. The badge is sized to hold every message
// behind a spinner glyph.
func Focus(fonts *template.FontManager, seed uint64) (animation.Sequence, error) {
	opts := geometry
	opts.Weight = template.Mono
	opts.Text = generator.ParseHexRGBA(FocusText)
	var widest []string
	for _, msg := range FocusMessages {
		widest = append(widest, animation.SpinnerGlyphs[0]+" "+msg)
	}
	b := template.NewRenderer(fonts, Scale).Badge(opts, widest...)
	return render(FocusScript(seed), b)
}

func render(sc animation.Script, b *template.Badge) (animation.Sequence, error) {
	colors := make(map[string]color.RGBA)
	return sc.Render(func(s animation.Step) image.Image {
		c, ok := colors[s.Color]
		if !ok {
			c = generator.ParseHexRGBA(s.Color)
			colors[s.Color] = c
		}
		return b.Frame(s.Text, c)
	})
}

// Write writes seq as a looping GIF to path, creating its directory if
// needed.
func Write(path string, seq animation.Sequence) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write badge: %w", err)
	}
	err := generator.Generate(path, generator.Config{Frames: seq.Frames, Delays: seq.Delays})
	if err != nil {
		return fmt.Errorf("write badge: %w", err)
	}
	return nil
}
