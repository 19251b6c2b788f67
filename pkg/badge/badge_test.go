package badge

import (
	"image/gif"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/xob0t/statuscards/pkg/animation"
	"github.com/xob0t/statuscards/pkg/template"
)

func testFonts() *template.FontManager {
	return template.NewFontManager(template.FontConfig{
		Regular: []string{"/nonexistent/regular.ttf"},
		Bold:    []string{"/nonexistent/bold.ttf"},
		Mono:    []string{"/nonexistent/mono.ttf"},
	}, Scale, nil)
}

func TestOrchestrationScript(t *testing.T) {
	sc := OrchestrationScript(animation.DefaultSeed)

	var want int
	for _, p := range OrchestrationPhases {
		// typing, pause, dots, hold
		want += len(p.Text) + 1 + 1 + 4*p.Cycles + 1
	}
	if len(sc) != want {
		t.Errorf("unexpected step count: got:%d want:%d", len(sc), want)
	}
	if got := sc[0]; got.Text != animation.Cursor || got.Color != "#F59E0B" {
		t.Errorf("unexpected first step: %+v", got)
	}
	if diff := cmp.Diff(animation.Step{Text: "Shipping...", Color: "#10B981", Delay: 2000}, sc[len(sc)-1]); diff != "" {
		t.Errorf("unexpected final step:\n--- want:\n+++ got:\n%s", diff)
	}

	again := OrchestrationScript(animation.DefaultSeed)
	if diff := cmp.Diff(sc, again); diff != "" {
		t.Errorf("script not reproducible:\n%s", diff)
	}
}

func TestFocusScript(t *testing.T) {
	sc := FocusScript(animation.DefaultSeed)

	var want int
	for _, msg := range FocusMessages {
		want += 2*focusBlinks + utf8.RuneCountInString(msg) + 1 + 1
	}
	want += (len(FocusMessages)-1)*focusSpinner*len(animation.SpinnerGlyphs) + 1
	if len(sc) != want {
		t.Errorf("unexpected step count: got:%d want:%d", len(sc), want)
	}
	for i, s := range sc {
		if s.Color != FocusBackground {
			t.Errorf("unexpected color at %d: %s", i, s.Color)
		}
		if s.Delay <= 0 {
			t.Errorf("non-positive delay at %d: %d", i, s.Delay)
		}
	}
	if got := sc.Texts()[:2*focusBlinks]; !cmp.Equal(got, []string{"_", " ", "_", " ", "_", " "}) {
		t.Errorf("unexpected blink texts: %q", got)
	}
	last := sc[len(sc)-1]
	if last.Text != FocusMessages[len(FocusMessages)-1] || last.Delay != focusFinalHold {
		t.Errorf("unexpected final step: %+v", last)
	}
}

func TestOrchestration(t *testing.T) {
	seq, err := Orchestration(testFonts(), animation.DefaultSeed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seq.Frames) != len(OrchestrationScript(animation.DefaultSeed)) {
		t.Errorf("unexpected frame count: got:%d", len(seq.Frames))
	}
	if got := seq.Frames[0].Bounds().Dy(); got != geometry.Height*Scale {
		t.Errorf("unexpected badge height: got:%d want:%d", got, geometry.Height*Scale)
	}

	path := filepath.Join(t.TempDir(), "assets", "status-orchestration.gif")
	if err := Write(path, seq); err != nil {
		t.Fatalf("unexpected error writing badge: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("unexpected error opening badge: %v", err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("unexpected error decoding badge: %v", err)
	}
	if len(g.Image) != len(seq.Frames) {
		t.Errorf("unexpected decoded frame count: got:%d want:%d", len(g.Image), len(seq.Frames))
	}
	if g.LoopCount != 0 {
		t.Errorf("unexpected loop count: %d", g.LoopCount)
	}
}

func TestFocus(t *testing.T) {
	seq, err := Focus(testFonts(), animation.DefaultSeed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := seq.Frames[0].Bounds()
	for i, f := range seq.Frames {
		if f.Bounds() != b {
			t.Fatalf("mismatched bounds at %d: %v != %v", i, f.Bounds(), b)
		}
	}
	// The badge is wide enough for the longest message behind a spinner.
	longest := FocusMessages[0]
	for _, msg := range FocusMessages {
		if len(msg) > len(longest) {
			longest = msg
		}
	}
	face := testFonts().Face(geometry.FontSize, template.Mono)
	if need := template.Measure(face, longest); b.Dx() < need {
		t.Errorf("badge too narrow: got:%d want at least:%d", b.Dx(), need)
	}
}
