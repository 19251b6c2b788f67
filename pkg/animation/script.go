package animation

import (
	"fmt"
	"image"
)

// Step describes one frame of an animation.
type Step struct {
	Text  string // text shown on the badge
	Color string // badge color, "#rrggbb"
	Delay int    // display time in milliseconds
}

// Script is an ordered list of steps. Order is playback order.
type Script []Step

// Duration returns the total display time of the script in milliseconds.
func (sc Script) Duration() int {
	var total int
	for _, s := range sc {
		total += s.Delay
	}
	return total
}

// Texts returns the text of each step in order.
func (sc Script) Texts() []string {
	texts := make([]string, len(sc))
	for i, s := range sc {
		texts[i] = s.Text
	}
	return texts
}

// Delays returns the delay of each step in order.
func (sc Script) Delays() []int {
	delays := make([]int, len(sc))
	for i, s := range sc {
		delays[i] = s.Delay
	}
	return delays
}

// Sequence is a rendered script.
type Sequence struct {
	Frames []image.Image
	Delays []int // milliseconds
}

// Render renders each step of the script with fn. Steps showing the same
// text and color share one rendered frame. All frames must have the same
// bounds.
func (sc Script) Render(fn func(Step) image.Image) (Sequence, error) {
	type key struct{ text, color string }
	cache := make(map[key]image.Image)

	seq := Sequence{
		Frames: make([]image.Image, 0, len(sc)),
		Delays: make([]int, 0, len(sc)),
	}
	var b image.Rectangle
	for i, s := range sc {
		k := key{text: s.Text, color: s.Color}
		frame, ok := cache[k]
		if !ok {
			frame = fn(s)
			cache[k] = frame
		}
		if i == 0 {
			b = frame.Bounds()
		} else if frame.Bounds() != b {
			return Sequence{}, fmt.Errorf("mismatched bounds at %d: %v != %v", i, frame.Bounds(), b)
		}
		seq.Frames = append(seq.Frames, frame)
		seq.Delays = append(seq.Delays, s.Delay)
	}
	return seq, nil
}
