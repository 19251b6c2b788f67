// layout.go - Text measurement and greedy word wrapping.
package template

import (
	"strings"

	"github.com/bbrks/wrap/v2"
	"golang.org/x/image/font"
)

// Measure returns the advance width of s in pixels.
func Measure(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// Wrap breaks text into the fewest lines that each fit within maxWidth
// pixels, filling lines greedily word by word. A word wider than maxWidth
// is placed alone on its own line; words are never split. Runs of white
// space are collapsed.
func Wrap(text string, face font.Face, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if maxWidth <= 0 {
		return words
	}
	if adv, ok := monospaced(face); ok {
		return wrapColumns(words, maxWidth/adv)
	}

	var lines []string
	currentLine := words[0]
	for _, word := range words[1:] {
		testLine := currentLine + " " + word
		if Measure(face, testLine) > maxWidth {
			lines = append(lines, currentLine)
			currentLine = word
		} else {
			currentLine = testLine
		}
	}
	return append(lines, currentLine)
}

// wrapColumns wraps words to lines of at most cols characters.
func wrapColumns(words []string, cols int) []string {
	if cols <= 0 {
		return words
	}
	wrapper := wrap.NewWrapper()
	wrapper.Breakpoints = " "
	wrapper.StripTrailingNewline = true
	wrapper.CutLongWords = false

	var lines []string
	for _, l := range strings.Split(wrapper.Wrap(strings.Join(words, " "), cols), "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// monospaced returns the common advance width in whole pixels if face
// advances narrow, wide and space glyphs identically.
func monospaced(face font.Face) (int, bool) {
	var adv []int
	for _, r := range "iM " {
		a, ok := face.GlyphAdvance(r)
		if !ok {
			return 0, false
		}
		// Only whole-pixel advances keep column counts exact.
		if a&63 != 0 {
			return 0, false
		}
		adv = append(adv, a.Round())
	}
	if adv[0] != adv[1] || adv[1] != adv[2] || adv[0] <= 0 {
		return 0, false
	}
	return adv[0], true
}

// inkMetrics returns the distance from the top of the ink of a reference
// string to the baseline, and the total ink height. Using a fixed reference
// keeps vertical placement stable as the drawn text changes.
func inkMetrics(face font.Face) (ascent, height int) {
	b, _ := font.BoundString(face, "Hg")
	ascent = (-b.Min.Y).Ceil()
	return ascent, ascent + b.Max.Y.Ceil()
}
