// statuscards — README status card and badge generation.
//
// Usage:
//
//	statuscards [-config cards.json] [-out dir] [-seed n] [id...]
//	statuscards badge [-o path] [-seed n]
//	statuscards focus [-o path] [-seed n]
//	statuscards init [-config path]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"

	"github.com/xob0t/statuscards/internal/version"
	"github.com/xob0t/statuscards/pkg/animation"
	"github.com/xob0t/statuscards/pkg/badge"
	"github.com/xob0t/statuscards/pkg/cards"
	"github.com/xob0t/statuscards/pkg/template"
)

// Exit status codes.
const (
	success       = 0
	internalError = 1 << (iota - 1)
	invocationError
)

// Environment variables providing flag defaults.
const (
	envConfig = "STATUSCARDS_CONFIG"
	envOut    = "STATUSCARDS_OUT"
	envSeed   = "STATUSCARDS_SEED"
)

const (
	defaultConfig = "cards.json"
	lockFile      = ".statuscards.lock"
	snippetWidth  = 400
)

func main() { os.Exit(Main()) }

func Main() int {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error: load .env: %v\n", err)
		return invocationError
	}

	args := os.Args[1:]
	if len(args) != 0 {
		switch args[0] {
		case "init":
			return runInit(args[1:])
		case "badge":
			return runBadge("badge", "orchestration", args[1:], badge.OrchestrationOutput, badge.Orchestration)
		case "focus":
			return runBadge("focus", "focus", args[1:], badge.FocusOutput, badge.Focus)
		case "help", "-h", "--help":
			printUsage(os.Stdout)
			return success
		}
	}
	// Default: generate cards.
	return run(args)
}

func run(args []string) int {
	fs := flag.NewFlagSet("statuscards", flag.ContinueOnError)
	configPath := fs.String("config", envOr(envConfig, defaultConfig), "Card document (.json or .toml)")
	out := fs.String("out", os.Getenv(envOut), "Output directory (default: the document's output)")
	seed := seedFlag(fs)
	logging := fs.String("log", "info", "logging level (debug, info, warn or error)")
	lines := fs.Bool("lines", false, "display source line details in logs")
	v := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() { printUsage(os.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return success
		}
		return invocationError
	}
	if *v {
		if err := version.Print(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return internalError
		}
		return success
	}
	if *seed < 0 {
		fmt.Fprintln(os.Stderr, "Error: seed must not be negative")
		return invocationError
	}
	log, ok := newLogger(*logging, *lines)
	if !ok {
		fs.Usage()
		return invocationError
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	doc, err := template.LoadDocument(*configPath)
	if err != nil {
		report(err)
		return internalError
	}
	// mlog is the logger for main.
	mlog := log.With(slog.String("component", "statuscards.main"))
	mlog.LogAttrs(ctx, slog.LevelDebug, "loaded document",
		slog.String("path", *configPath),
		slog.Int("cards", len(doc.Cards)),
	)

	ids := fs.Args()
	dir := doc.Output
	if *out != "" {
		dir = *out
	}

	g := cards.NewGenerator(doc.Theme, dir, uint64(*seed), log)
	g.Stdout = os.Stdout
	g.Lock = func() (func(), error) { return lock(dir) }
	results, err := g.Run(ctx, doc.Cards, ids)
	switch {
	case errors.Is(err, cards.ErrNoMatch):
		fmt.Printf("No cards found with IDs: %s\n", strings.Join(ids, ", "))
		return success
	case err != nil:
		report(err)
		return internalError
	}

	fmt.Printf("\nCards saved to %s/\n", dir)
	fmt.Println("\nTo use in README (responsive layout):")
	rel, err := filepath.Rel(filepath.Dir(*configPath), dir)
	if err != nil {
		rel = dir
	}
	if err := cards.Snippet(os.Stdout, results, rel, snippetWidth); err != nil {
		report(err)
		return internalError
	}
	return success
}

// renderFunc renders a badge animation.
type renderFunc func(*template.FontManager, uint64) (animation.Sequence, error)

func runBadge(name, title string, args []string, output string, render renderFunc) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&output, "o", output, "Output GIF path")
	seed := seedFlag(fs)
	logging := fs.String("log", "info", "logging level (debug, info, warn or error)")
	lines := fs.Bool("lines", false, "display source line details in logs")
	if err := fs.Parse(args); err != nil {
		return invocationError
	}
	if *seed < 0 {
		fmt.Fprintln(os.Stderr, "Error: seed must not be negative")
		return invocationError
	}
	log, ok := newLogger(*logging, *lines)
	if !ok {
		fs.Usage()
		return invocationError
	}

	fonts := template.NewFontManager(template.FontConfig{}, badge.Scale, log)
	seq, err := render(fonts, uint64(*seed))
	if err != nil {
		report(err)
		return internalError
	}
	b := seq.Frames[0].Bounds()
	fmt.Printf("Creating %s badge at %dx%dpx (%dx retina)\n", title, b.Dx(), b.Dy(), badge.Scale)

	var total int
	for _, d := range seq.Delays {
		total += d
	}
	fmt.Printf("  Total frames: %d\n", len(seq.Frames))
	fmt.Printf("  Total duration: %.1f seconds\n", float64(total)/1000)

	if err := badge.Write(output, seq); err != nil {
		report(err)
		return internalError
	}
	log.With(slog.String("component", "statuscards.main")).LogAttrs(context.Background(), slog.LevelDebug, "wrote badge",
		slog.String("badge", title),
		slog.String("path", output),
		slog.Int("frames", len(seq.Frames)),
	)
	fmt.Printf("Saved to %s\n", output)
	return success
}

func runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	path := fs.String("config", envOr(envConfig, defaultConfig), "Output path for the sample document")
	if err := fs.Parse(args); err != nil {
		return invocationError
	}

	f, err := os.OpenFile(*path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		report(fmt.Errorf("write sample: %w", err))
		return internalError
	}
	_, err = io.WriteString(f, template.ExampleJSON())
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		report(fmt.Errorf("write sample: %w", err))
		return internalError
	}

	fmt.Printf("Created: %s\n", *path)
	fmt.Printf("Run: statuscards -config %s\n", *path)
	return success
}

// newLogger returns the root logger writing JSON to stderr at the named
// level.
func newLogger(level string, lines bool) (*slog.Logger, bool) {
	var lv slog.LevelVar
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		return nil, false
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:     &lv,
		AddSource: lines,
	})), true
}

// lock takes the output directory lock, returning a function releasing it.
func lock(dir string) (func(), error) {
	path := filepath.Join(dir, lockFile)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock output directory: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("output directory %s is in use by another statuscards run", dir)
	}
	return func() {
		fl.Unlock()
		os.Remove(path)
	}, nil
}

// seedFlag registers the -seed flag. A negative value marks an invalid
// STATUSCARDS_SEED default.
func seedFlag(fs *flag.FlagSet) *int64 {
	def := int64(animation.DefaultSeed)
	if s := os.Getenv(envSeed); s != "" {
		n, err := strconv.ParseUint(s, 10, 63)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid %s: %q\n", envSeed, s)
			def = -1
		} else {
			def = int64(n)
		}
	}
	return fs.Int64("seed", def, "Random seed for animation timing")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func report(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `statuscards — README status cards and badges (Pure Go)

USAGE:
    statuscards [options] [id...]
    statuscards badge [-o <path>] [-seed <n>]
    statuscards focus [-o <path>] [-seed <n>]
    statuscards init [-config <path>]

CARDS:
    -config <path>     Card document, .json or .toml (default: cards.json)
    -out <dir>         Output directory (default: document output, assets/cards)
    -seed <n>          Random seed for animation timing (default: 42)
    -log <level>       Logging level: debug, info, warn or error
    -lines             Include source lines in logs
    -version           Print version and exit
    id...              Only generate the listed cards

BADGES:
    badge              Orchestration status badge (assets/status-orchestration.gif)
    focus              Terminal focus badge (assets/status-focus.gif)

ENVIRONMENT:
    STATUSCARDS_CONFIG, STATUSCARDS_OUT and STATUSCARDS_SEED set flag
    defaults. A .env file in the working directory is loaded first.

EXAMPLES:
    statuscards init
    statuscards
    statuscards swarm void
    statuscards -config cards.toml -out docs/cards
    statuscards badge -o assets/status-orchestration.gif
`)
}
