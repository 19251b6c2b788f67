// fonts.go - Font resolution with probing of system font files and embedded
// fallback fonts. Uses golang.org/x/image/font for OpenType rendering. Falls
// back to the Go fonts when none of the candidate files can be loaded, so
// resolution never fails.
package template

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Weight selects a font family variant.
type Weight int

const (
	Regular Weight = iota
	Bold
	Mono
)

func (w Weight) String() string {
	switch w {
	case Regular:
		return "regular"
	case Bold:
		return "bold"
	case Mono:
		return "mono"
	default:
		return fmt.Sprintf("Weight(%d)", int(w))
	}
}

// DefaultFontPaths are the candidate font files probed for each weight,
// in order of preference.
var DefaultFontPaths = map[Weight][]string{
	Regular: {
		"/System/Library/Fonts/SFNS.ttf",
		"/System/Library/Fonts/SFNSText.ttf",
		"/System/Library/Fonts/Helvetica.ttc",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	},
	Bold: {
		"/System/Library/Fonts/SFNS.ttf",
		"/System/Library/Fonts/SFNSText-Bold.otf",
		"/System/Library/Fonts/Helvetica.ttc",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
	},
	Mono: {
		"/System/Library/Fonts/SFNSMono.ttf",
		"/System/Library/Fonts/Menlo.ttc",
		"/System/Library/Fonts/Monaco.ttf",
		"/Library/Fonts/JetBrainsMono-Regular.ttf",
		"/System/Library/Fonts/Courier.ttc",
		"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
		"/usr/share/fonts/TTF/DejaVuSansMono.ttf",
	},
}

var embedded = map[Weight][]byte{
	Regular: goregular.TTF,
	Bold:    gobold.TTF,
	Mono:    gomono.TTF,
}

// FontManager resolves font faces by weight and size.
type FontManager struct {
	paths map[Weight][]string
	scale float64
	log   *slog.Logger

	parsed map[Weight]*opentype.Font
	faces  map[faceKey]font.Face
}

type faceKey struct {
	weight Weight
	size   float64
}

// NewFontManager creates a font manager. Non-empty lists in cfg replace the
// DefaultFontPaths for their weight. Requested sizes are in points and are
// multiplied by scale. A nil log discards fallback reports.
func NewFontManager(cfg FontConfig, scale int, log *slog.Logger) *FontManager {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &FontManager{
		paths:  MergeFontPaths(cfg),
		scale:  float64(max(scale, 1)),
		log:    log.With(slog.String("component", "fonts")),
		parsed: make(map[Weight]*opentype.Font),
		faces:  make(map[faceKey]font.Face),
	}
}

// Face returns a font.Face for the weight at the specified point size.
// It never fails: if no candidate file loads, an embedded Go font is used,
// and if that cannot be sized, a fixed bitmap face is returned.
func (fm *FontManager) Face(size float64, w Weight) font.Face {
	key := faceKey{weight: w, size: size}
	if face, ok := fm.faces[key]; ok {
		return face
	}

	face, err := opentype.NewFace(fm.font(w), &opentype.FaceOptions{
		Size:    size * fm.scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		fm.log.LogAttrs(context.Background(), slog.LevelDebug, "using bitmap face",
			slog.String("weight", w.String()), slog.Float64("size", size), slog.Any("error", err))
		return basicfont.Face7x13
	}
	fm.faces[key] = face
	return face
}

// font returns the parsed font for w, loading it on first use.
func (fm *FontManager) font(w Weight) *opentype.Font {
	if f, ok := fm.parsed[w]; ok {
		return f
	}

	ctx := context.Background()
	for _, path := range fm.paths[w] {
		data, err := os.ReadFile(path)
		if err != nil {
			fm.log.LogAttrs(ctx, slog.LevelDebug, "font unavailable", slog.String("path", path), slog.Any("error", err))
			continue
		}
		f, err := parseFont(data)
		if err != nil {
			fm.log.LogAttrs(ctx, slog.LevelDebug, "font unusable", slog.String("path", path), slog.Any("error", err))
			continue
		}
		fm.log.LogAttrs(ctx, slog.LevelDebug, "font", slog.String("weight", w.String()), slog.String("path", path))
		fm.parsed[w] = f
		return f
	}

	data, ok := embedded[w]
	if !ok {
		data = goregular.TTF
	}
	f, err := opentype.Parse(data)
	if err != nil {
		// The embedded fonts are known to be valid.
		panic(fmt.Sprintf("parse embedded %s font: %v", w, err))
	}
	fm.log.LogAttrs(ctx, slog.LevelDebug, "using embedded font", slog.String("weight", w.String()))
	fm.parsed[w] = f
	return f
}

// parseFont parses a TTF/OTF font, or the first font of a TTC collection.
func parseFont(data []byte) (*opentype.Font, error) {
	f, err := opentype.Parse(data)
	if err == nil {
		return f, nil
	}
	c, cerr := opentype.ParseCollection(data)
	if cerr != nil {
		return nil, err
	}
	return c.Font(0)
}
