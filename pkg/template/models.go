// Package template provides JSON-driven status card rendering: the card
// document model, configuration loading and validation, font resolution,
// text layout and frame rendering.
package template

// ── Document types ──

// Document is the top-level structure of a cards.json or cards.toml file.
type Document struct {
	Theme  Theme  `json:"theme" toml:"theme"`
	Cards  []Card `json:"cards" toml:"cards"`
	Output string `json:"output,omitempty" toml:"output"` // output directory, relative to the document
}

// Theme holds the styling shared by all cards. Lengths are in points and
// are multiplied by Scale when rendering.
type Theme struct {
	CardWidth     int        `json:"card_width" toml:"card_width"`
	CardPadding   int        `json:"card_padding" toml:"card_padding"`
	Background    string     `json:"background" toml:"background"`
	TextPrimary   string     `json:"text_primary" toml:"text_primary"`
	TextSecondary string     `json:"text_secondary" toml:"text_secondary"`
	Scale         int        `json:"scale,omitempty" toml:"scale"` // retina factor (default: 2)
	Fonts         FontConfig `json:"fonts,omitzero" toml:"fonts"`
}

// FontConfig lists candidate font files per weight. A non-empty list
// replaces the built-in candidates for that weight.
type FontConfig struct {
	Regular []string `json:"regular,omitempty" toml:"regular"`
	Bold    []string `json:"bold,omitempty" toml:"bold"`
	Mono    []string `json:"mono,omitempty" toml:"mono"`
}

// ── Card types ──

// Card describes one card image.
type Card struct {
	ID          string `json:"id" toml:"id"`
	Icon        string `json:"icon" toml:"icon"`
	Title       string `json:"title" toml:"title"`
	Description string `json:"description" toml:"description"`
	Tagline     string `json:"tagline" toml:"tagline"`
	Status      Status `json:"status" toml:"status"`
}

// Status types.
const (
	StatusStatic   = "static"
	StatusAnimated = "animated"
)

// Status is the badge shown in the top right corner of a card.
type Status struct {
	Type string `json:"type" toml:"type"` // "static" or "animated"

	// Static badge.
	Text  string `json:"text,omitempty" toml:"text"`
	Color string `json:"color,omitempty" toml:"color"`

	// Animated badge.
	Phases    []Phase `json:"phases,omitempty" toml:"phases"`
	DotCycles int     `json:"dot_cycles,omitempty" toml:"dot_cycles"` // default: 5
}

// Animated reports whether the status is rendered as a GIF.
func (s Status) Animated() bool {
	return s.Type == StatusAnimated
}

// Phase is one stage of an animated status.
type Phase struct {
	Text  string `json:"text" toml:"text"`
	Color string `json:"color" toml:"color"`
}

// ── Defaults ──

const (
	// DefaultScale is the retina resolution factor.
	DefaultScale = 2

	// DefaultDotCycles is the number of working-dot cycles per phase.
	DefaultDotCycles = 5
)
