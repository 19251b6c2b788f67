// merge.go — Merge document settings onto built-in defaults.
package template

// MergeFontPaths returns the candidate font files per weight. A non-empty
// list in cfg replaces the DefaultFontPaths of its weight; empty lists keep
// the defaults.
func MergeFontPaths(cfg FontConfig) map[Weight][]string {
	paths := make(map[Weight][]string, len(DefaultFontPaths))
	for w, p := range DefaultFontPaths {
		paths[w] = p
	}
	for w, override := range map[Weight][]string{
		Regular: cfg.Regular,
		Bold:    cfg.Bold,
		Mono:    cfg.Mono,
	} {
		if len(override) != 0 {
			paths[w] = override
		}
	}
	return paths
}

// applyDefaults fills in the optional document fields.
func applyDefaults(doc *Document) {
	applyThemeDefaults(&doc.Theme)
	for i := range doc.Cards {
		applyStatusDefaults(&doc.Cards[i].Status)
	}
}

// applyThemeDefaults sets sane fallbacks for theme fields.
func applyThemeDefaults(t *Theme) {
	if t.Scale <= 0 {
		t.Scale = DefaultScale
	}
}

// applyStatusDefaults sets sane fallbacks for status fields. Static badges
// carry no dot cycles.
func applyStatusDefaults(s *Status) {
	switch {
	case !s.Animated():
		s.DotCycles = 0
	case s.DotCycles <= 0:
		s.DotCycles = DefaultDotCycles
	}
}
