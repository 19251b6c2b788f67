// Package cards turns a card document into README card images: one PNG per
// static card and one looping GIF per animated card.
package cards

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/xob0t/statuscards/pkg/animation"
	"github.com/xob0t/statuscards/pkg/generator"
	"github.com/xob0t/statuscards/pkg/template"
)

// ErrNoMatch is returned by Run when no card matches the requested ids.
var ErrNoMatch = errors.New("no cards match the requested ids")

// Filter returns the cards whose id is listed in ids, in document order.
// An empty ids keeps every card.
func Filter(cards []template.Card, ids []string) []template.Card {
	if len(ids) == 0 {
		return cards
	}
	var kept []template.Card
	for _, c := range cards {
		if slices.Contains(ids, c.ID) {
			kept = append(kept, c)
		}
	}
	return kept
}

// Result describes one written card.
type Result struct {
	ID     string
	Path   string
	Frames int
}

// Animated reports whether the card was written as a GIF.
func (r Result) Animated() bool {
	return filepath.Ext(r.Path) == ".gif"
}

// Generator renders cards sharing a theme.
type Generator struct {
	Theme template.Theme
	Out   string // output directory
	Seed  uint64 // seed of the card sequencer, fixed by NewGenerator

	// Stdout receives progress lines. A nil Stdout discards them.
	Stdout io.Writer

	// Lock, if set, is called by Run once the output directory exists and
	// before any card is written. The returned function is called when Run
	// returns.
	Lock func() (unlock func(), err error)

	renderer *template.Renderer
	seq      *animation.Sequencer
	log      *slog.Logger
}

// NewGenerator returns a Generator writing into out. Fonts are resolved
// from the theme.
func NewGenerator(theme template.Theme, out string, seed uint64, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	fonts := template.NewFontManager(theme.Fonts, theme.Scale, log)
	return &Generator{
		Theme:    theme,
		Out:      out,
		Seed:     seed,
		renderer: template.NewRenderer(fonts, theme.Scale),
		seq:      animation.NewSequencer(seed, animation.CardTiming),
		log:      log.With(slog.String("component", "cards")),
	}
}

// Card renders card into a frame sequence and returns it with the file
// extension it should be written with. Static cards have a single frame
// and no delays. Animated cards draw their timing from the generator's
// sequencer, so a run's output depends on the seed and the card order.
func (g *Generator) Card(card template.Card) (animation.Sequence, string, error) {
	layout := g.renderer.LayoutCard(card, g.Theme)

	if !card.Status.Animated() {
		img := layout.Frame(card.Status.Text, generator.ParseHexRGBA(card.Status.Color))
		return animation.Sequence{Frames: []image.Image{img}}, ".png", nil
	}

	cycles := card.Status.DotCycles
	if cycles <= 0 {
		cycles = template.DefaultDotCycles
	}
	phases := make([]animation.Phase, len(card.Status.Phases))
	for i, p := range card.Status.Phases {
		phases[i] = animation.Phase{Text: p.Text, Color: p.Color, Cycles: cycles}
	}
	script := g.seq.Phases(phases, 0)
	seq, err := script.Render(func(s animation.Step) image.Image {
		return layout.Frame(s.Text, generator.ParseHexRGBA(s.Color))
	})
	if err != nil {
		return animation.Sequence{}, "", fmt.Errorf("card %s: %w", card.ID, err)
	}
	return seq, ".gif", nil
}

// Run writes card-<id>.png or card-<id>.gif into the output directory for
// each card selected by ids. If no card is selected, Run returns ErrNoMatch
// without writing anything.
func (g *Generator) Run(ctx context.Context, cards []template.Card, ids []string) ([]Result, error) {
	for _, w := range template.UnknownIDs(cards, ids) {
		g.log.LogAttrs(ctx, slog.LevelWarn, w)
	}
	selected := Filter(cards, ids)
	if len(selected) == 0 {
		return nil, ErrNoMatch
	}

	if err := os.MkdirAll(g.Out, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	if g.Lock != nil {
		unlock, err := g.Lock()
		if err != nil {
			return nil, err
		}
		defer unlock()
	}
	g.printf("Generating %d cards...\n", len(selected))

	results := make([]Result, 0, len(selected))
	for _, card := range selected {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		seq, ext, err := g.Card(card)
		if err != nil {
			return results, err
		}
		path := filepath.Join(g.Out, "card-"+card.ID+ext)
		cfg := generator.Config{Frames: seq.Frames, Delays: seq.Delays}
		if err := generator.Generate(path, cfg); err != nil {
			return results, fmt.Errorf("card %s: %w", card.ID, err)
		}
		g.log.LogAttrs(ctx, slog.LevelDebug, "wrote card",
			slog.String("id", card.ID),
			slog.String("path", path),
			slog.Int("frames", len(seq.Frames)),
		)
		if ext == ".gif" {
			g.printf("  ✓ %s: GIF (%d frames)\n", card.ID, len(seq.Frames))
		} else {
			g.printf("  ✓ %s: PNG\n", card.ID)
		}
		results = append(results, Result{ID: card.ID, Path: path, Frames: len(seq.Frames)})
	}
	return results, nil
}

func (g *Generator) printf(format string, args ...any) {
	if g.Stdout == nil {
		return
	}
	fmt.Fprintf(g.Stdout, format, args...)
}

// Snippet writes a README HTML block showing the written cards side by
// side. Image sources are the base names of the results under dir.
func Snippet(w io.Writer, results []Result, dir string, width int) error {
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}
	printf("```markdown\n")
	printf("<p align=\"center\">\n")
	for _, r := range results {
		printf("<img src=\"%s\" width=\"%d\"/>\n", filepath.ToSlash(filepath.Join(dir, filepath.Base(r.Path))), width)
	}
	printf("</p>\n")
	printf("```\n")
	return err
}
