package cards

import (
	"bytes"
	"context"
	"errors"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xob0t/statuscards/pkg/template"
)

var testTheme = template.Theme{
	CardWidth:     320,
	CardPadding:   16,
	Background:    "#0d1117",
	TextPrimary:   "#e6edf3",
	TextSecondary: "#8b949e",
	Scale:         1,
	Fonts: template.FontConfig{
		Regular: []string{"/nonexistent/regular.ttf"},
		Bold:    []string{"/nonexistent/bold.ttf"},
		Mono:    []string{"/nonexistent/mono.ttf"},
	},
}

var testCards = []template.Card{
	{
		ID:          "void",
		Icon:        "◇",
		Title:       "Void",
		Description: "Nothing to see here.",
		Tagline:     "Still nothing.",
		Status:      template.Status{Type: template.StatusStatic, Text: "Idle", Color: "#6e7681"},
	},
	{
		ID:          "swarm",
		Icon:        "◆",
		Title:       "Swarm",
		Description: "Many small workers cooperating on one large task.",
		Tagline:     "Plan, then build.",
		Status: template.Status{
			Type: template.StatusAnimated,
			Phases: []template.Phase{
				{Text: "Planning", Color: "#F59E0B"},
				{Text: "Building", Color: "#58A6FF"},
			},
			DotCycles: 5,
		},
	},
}

func TestFilter(t *testing.T) {
	tests := []struct {
		ids  []string
		want []string
	}{
		{ids: nil, want: []string{"void", "swarm"}},
		{ids: []string{"swarm"}, want: []string{"swarm"}},
		{ids: []string{"swarm", "void"}, want: []string{"void", "swarm"}},
		{ids: []string{"missing"}, want: nil},
	}
	for _, test := range tests {
		var got []string
		for _, c := range Filter(testCards, test.ids) {
			got = append(got, c.ID)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("unexpected result for %q:\n--- want:\n+++ got:\n%s", test.ids, diff)
		}
	}
}

func TestRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "assets", "cards")
	var stdout bytes.Buffer
	g := NewGenerator(testTheme, dir, 42, nil)
	g.Stdout = &stdout

	results, err := g.Run(context.Background(), testCards, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFrames := (len("Planning") + 1 + 4*5) + (len("Building") + 1 + 4*5)
	want := []Result{
		{ID: "void", Path: filepath.Join(dir, "card-void.png"), Frames: 1},
		{ID: "swarm", Path: filepath.Join(dir, "card-swarm.gif"), Frames: wantFrames},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("unexpected results:\n--- want:\n+++ got:\n%s", diff)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("unexpected error reading output: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("unexpected number of files: got:%d want:2", len(entries))
	}

	f, err := os.Open(want[0].Path)
	if err != nil {
		t.Fatalf("unexpected error opening png: %v", err)
	}
	still, err := png.Decode(f)
	f.Close()
	if err != nil {
		t.Fatalf("unexpected error decoding png: %v", err)
	}

	f, err = os.Open(want[1].Path)
	if err != nil {
		t.Fatalf("unexpected error opening gif: %v", err)
	}
	anim, err := gif.DecodeAll(f)
	f.Close()
	if err != nil {
		t.Fatalf("unexpected error decoding gif: %v", err)
	}
	if len(anim.Image) != wantFrames {
		t.Errorf("unexpected frame count: got:%d want:%d", len(anim.Image), wantFrames)
	}
	if anim.LoopCount != 0 {
		t.Errorf("unexpected loop count: got:%d want:0", anim.LoopCount)
	}
	for i, d := range anim.Disposal {
		if d != gif.DisposalBackground {
			t.Errorf("unexpected disposal for frame %d: %d", i, d)
		}
	}
	for i, img := range anim.Image {
		if img.Bounds() != anim.Image[0].Bounds() {
			t.Errorf("mismatched bounds for frame %d: %v != %v", i, img.Bounds(), anim.Image[0].Bounds())
		}
	}
	if still.Bounds().Dx() != testTheme.CardWidth || anim.Config.Width != testTheme.CardWidth {
		t.Errorf("unexpected card widths: png:%d gif:%d want:%d", still.Bounds().Dx(), anim.Config.Width, testTheme.CardWidth)
	}

	out := stdout.String()
	for _, line := range []string{"Generating 2 cards...", "✓ void: PNG", "✓ swarm: GIF (58 frames)"} {
		if !strings.Contains(out, line) {
			t.Errorf("missing progress line %q in:\n%s", line, out)
		}
	}
}

func TestRunNoMatch(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	g := NewGenerator(testTheme, dir, 42, nil)

	results, err := g.Run(context.Background(), testCards, []string{"nonexistent"})
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("unexpected error: got:%v want:%v", err, ErrNoMatch)
	}
	if len(results) != 0 {
		t.Errorf("unexpected results: %v", results)
	}
	if _, err := os.Stat(dir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output directory created for empty selection: %v", err)
	}
}

func TestCardDeterministic(t *testing.T) {
	card := testCards[1]
	a, _, err := NewGenerator(testTheme, "", 7, nil).Card(card)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _, err := NewGenerator(testTheme, "", 7, nil).Card(card)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(a.Delays, b.Delays); diff != "" {
		t.Errorf("delays differ between runs:\n%s", diff)
	}
	for _, d := range a.Delays {
		if d != 50 && d != 300 {
			t.Errorf("unexpected card delay: %d", d)
		}
	}
}

func TestSnippet(t *testing.T) {
	results := []Result{
		{ID: "void", Path: "/tmp/x/card-void.png", Frames: 1},
		{ID: "swarm", Path: "/tmp/x/card-swarm.gif", Frames: 58},
	}
	var buf bytes.Buffer
	if err := Snippet(&buf, results, "assets/cards", 400); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "```markdown\n" +
		"<p align=\"center\">\n" +
		"<img src=\"assets/cards/card-void.png\" width=\"400\"/>\n" +
		"<img src=\"assets/cards/card-swarm.gif\" width=\"400\"/>\n" +
		"</p>\n" +
		"```\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("unexpected snippet:\n--- want:\n+++ got:\n%s", diff)
	}
}

func TestCardSharedSequencer(t *testing.T) {
	card := testCards[1]
	delays := func() [][]int {
		g := NewGenerator(testTheme, "", 7, nil)
		var got [][]int
		for range 2 {
			seq, _, err := g.Card(card)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got = append(got, seq.Delays)
		}
		return got
	}
	a, b := delays(), delays()
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("delays differ between generators with equal seeds:\n%s", diff)
	}
}

func TestRunLock(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	var locked, unlocked int
	g := NewGenerator(testTheme, dir, 42, nil)
	g.Lock = func() (func(), error) {
		if _, err := os.Stat(dir); err != nil {
			t.Errorf("lock taken before output directory exists: %v", err)
		}
		locked++
		return func() { unlocked++ }, nil
	}

	if _, err := g.Run(context.Background(), testCards, []string{"nonexistent"}); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("unexpected error: got:%v want:%v", err, ErrNoMatch)
	}
	if locked != 0 {
		t.Errorf("lock taken for empty selection")
	}

	if _, err := g.Run(context.Background(), testCards, []string{"void"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if locked != 1 || unlocked != 1 {
		t.Errorf("unexpected lock calls: locked:%d unlocked:%d", locked, unlocked)
	}

	errBusy := errors.New("busy")
	g.Lock = func() (func(), error) { return nil, errBusy }
	if _, err := g.Run(context.Background(), testCards, nil); !errors.Is(err, errBusy) {
		t.Errorf("unexpected error: got:%v want:%v", err, errBusy)
	}
	if _, err := os.Stat(filepath.Join(dir, "card-swarm.gif")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("card written without lock: %v", err)
	}
}
