// Package animation builds scripted terminal-style animations.
//
// An animation is first described as a [Script], an ordered list of steps
// each naming the text to show, the badge color and how long the frame is
// held. A [Sequencer] produces scripts from reusable motifs: typing with a
// cursor, working dots, holds, cursor blinks and a braille spinner. Delays
// are varied by a seeded generator, so the same seed always yields the same
// script. A script is turned into frames with [Script.Render].
package animation
