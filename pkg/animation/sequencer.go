package animation

import (
	"math/rand/v2"
	"strings"
)

const (
	// Cursor is the glyph that trails text being typed.
	Cursor = "_"

	// DefaultSeed is the seed used when none is given.
	DefaultSeed = 42
)

// SpinnerGlyphs is one cycle of the processing spinner.
var SpinnerGlyphs = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Jitter is a delay in milliseconds varied by a uniformly distributed
// offset in [Lo, Hi] and floored at Min.
type Jitter struct {
	Base   int
	Lo, Hi int
	Min    int
}

// Timing holds the delays used by the motifs of a Sequencer.
type Timing struct {
	FirstKey int    // base delay of the first typing frame; zero uses Key.Base
	Key      Jitter // typing frames
	Dot      Jitter // working dot frames
	Settle   Jitter // the held "..." frame closing each dot cycle
	Spinner  int    // per spinner glyph
	Blink    int    // per cursor blink half-period
}

// Timing profiles.
var (
	// BadgeTiming is deliberate, "thinking" pacing for status badges.
	BadgeTiming = Timing{
		FirstKey: 80,
		Key:      Jitter{Base: 55, Lo: -10, Hi: 20, Min: 30},
		Dot:      Jitter{Base: 350, Lo: -50, Hi: 100, Min: 1},
		Settle:   Jitter{Base: 500, Lo: 0, Hi: 200, Min: 1},
		Spinner:  80,
		Blink:    200,
	}

	// FocusTiming is fast CLI-style typing.
	FocusTiming = Timing{
		Key:     Jitter{Base: 40, Lo: -10, Hi: 15, Min: 25},
		Dot:     Jitter{Base: 350, Lo: -50, Hi: 100, Min: 1},
		Settle:  Jitter{Base: 500, Lo: 0, Hi: 200, Min: 1},
		Spinner: 80,
		Blink:   200,
	}

	// CardTiming is the steady pacing of card status badges.
	CardTiming = Timing{
		Key:     Jitter{Base: 50, Min: 1},
		Dot:     Jitter{Base: 300, Min: 1},
		Settle:  Jitter{Base: 300, Min: 1},
		Spinner: 80,
		Blink:   200,
	}
)

// Sequencer builds scripts from animation motifs. All delay variation is
// drawn from a single generator seeded at construction, so scripts built by
// sequencers with equal seeds and equal call sequences are identical.
//
// Sequencer values must not be shared between goroutines.
type Sequencer struct {
	rng    *rand.Rand
	timing Timing
}

// NewSequencer returns a Sequencer using the given seed and timing.
func NewSequencer(seed uint64, timing Timing) *Sequencer {
	return &Sequencer{
		rng:    rand.New(rand.NewPCG(seed, seed)),
		timing: timing,
	}
}

// delay returns a jittered delay.
func (s *Sequencer) delay(j Jitter) int {
	d := j.Base + j.Lo
	if j.Hi > j.Lo {
		d += s.rng.IntN(j.Hi - j.Lo + 1)
	}
	return max(d, j.Min, 1)
}

// Typing returns N+1 steps typing out the N runes of text. Step K shows
// the first K runes followed by the cursor; the final step shows the
// whole text without a cursor.
func (s *Sequencer) Typing(text, color string) Script {
	runes := []rune(text)
	sc := make(Script, 0, len(runes)+1)
	for i := 0; i <= len(runes); i++ {
		display := string(runes[:i])
		if i < len(runes) {
			display += Cursor
		}
		j := s.timing.Key
		if i == 0 && s.timing.FirstKey != 0 {
			j.Base = s.timing.FirstKey
		}
		sc = append(sc, Step{Text: display, Color: color, Delay: s.delay(j)})
	}
	return sc
}

// Dots returns 4×cycles steps simulating work on text: each cycle shows
// one, two and three trailing dots, then holds the three dots a little
// longer.
func (s *Sequencer) Dots(text, color string, cycles int) Script {
	sc := make(Script, 0, 4*max(cycles, 0))
	for range cycles {
		for n := 1; n <= 3; n++ {
			sc = append(sc, Step{Text: text + strings.Repeat(".", n), Color: color, Delay: s.delay(s.timing.Dot)})
		}
		sc = append(sc, Step{Text: text + "...", Color: color, Delay: s.delay(s.timing.Settle)})
	}
	return sc
}

// Hold returns a single step showing text for ms milliseconds.
func (s *Sequencer) Hold(text, color string, ms int) Script {
	return Script{{Text: text, Color: color, Delay: max(ms, 1)}}
}

// Blink returns n cursor on/off pairs.
func (s *Sequencer) Blink(color string, n int) Script {
	sc := make(Script, 0, 2*max(n, 0))
	for range n {
		sc = append(sc,
			Step{Text: Cursor, Color: color, Delay: max(s.timing.Blink, 1)},
			Step{Text: " ", Color: color, Delay: max(s.timing.Blink, 1)},
		)
	}
	return sc
}

// Spinner returns cycles turns of the spinner glyphs, each followed by
// a space and text.
func (s *Sequencer) Spinner(text, color string, cycles int) Script {
	sc := make(Script, 0, len(SpinnerGlyphs)*max(cycles, 0))
	for range cycles {
		for _, g := range SpinnerGlyphs {
			sc = append(sc, Step{Text: g + " " + text, Color: color, Delay: max(s.timing.Spinner, 1)})
		}
	}
	return sc
}

// Phase is one stage of a multi-phase status animation.
type Phase struct {
	Text   string
	Color  string
	Cycles int // working dot cycles
	Pause  int // milliseconds to hold the typed text before working; zero for none
	Hold   int // milliseconds to hold the final "..." frame; zero for none
}

// Phases returns the concatenated animation of each phase in order: the
// phase text is typed, then worked on with dots. Phases are separated by
// spinner cycles of the preceding phase's color when spinner is positive.
func (s *Sequencer) Phases(phases []Phase, spinner int) Script {
	var sc Script
	for i, p := range phases {
		if i > 0 && spinner > 0 {
			sc = append(sc, s.Spinner("", phases[i-1].Color, spinner)...)
		}
		sc = append(sc, s.Typing(p.Text, p.Color)...)
		if p.Pause > 0 {
			sc = append(sc, s.Hold(p.Text, p.Color, p.Pause)...)
		}
		sc = append(sc, s.Dots(p.Text, p.Color, p.Cycles)...)
		if p.Hold > 0 {
			sc = append(sc, s.Hold(p.Text+"...", p.Color, p.Hold)...)
		}
	}
	return sc
}
