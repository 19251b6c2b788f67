// Package generator writes rendered frames as PNG stills or looping GIF
// animations.
//
// All output follows a unified pipeline: frames are rendered first, then
// written as a PNG or assembled into a GIF with per-frame delays.
package generator

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
)

// Config holds the frames to write.
type Config struct {
	Image  image.Image   // Single still frame; shorthand for a one-element Frames
	Frames []image.Image // Ordered frames; all must share the same bounds
	Delays []int         // Per-frame display time in milliseconds, or one delay for a single frame
}

// Generate creates an output file. The format is inferred from the file extension:
//   - ".png" → PNG image, requires exactly one frame
//   - ".gif" → looping GIF animation, or a still GIF for a single frame
//
// Nothing is written if the frames cannot be encoded in the format.
func Generate(output string, cfg Config) error {
	frames, delays, err := cfg.sequence()
	if err != nil {
		return err
	}
	enc, err := EncoderFor(filepath.Ext(output))
	if err != nil {
		return err
	}
	if err := enc.Check(len(frames)); err != nil {
		return fmt.Errorf("%s: %w", output, err)
	}

	return writeFile(output, func(w io.Writer) error {
		return enc.Encode(w, frames, delays)
	})
}

// writeFile writes output atomically: the content is encoded into a
// temporary file in the same directory, which replaces output only once
// encoding has succeeded.
func writeFile(output string, encode func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(output), "."+filepath.Base(output)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if err = encode(f); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", output, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", output, err)
	}
	if err = os.Chmod(f.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", output, err)
	}
	if err = os.Rename(f.Name(), output); err != nil {
		return fmt.Errorf("rename %s: %w", output, err)
	}
	return nil
}

// GenerateToWriter writes media to an io.Writer. The format is specified by ext (".png" or ".gif").
func GenerateToWriter(w io.Writer, ext string, cfg Config) error {
	frames, delays, err := cfg.sequence()
	if err != nil {
		return err
	}
	enc, err := EncoderFor(ext)
	if err != nil {
		return err
	}
	if err := enc.Check(len(frames)); err != nil {
		return err
	}
	return enc.Encode(w, frames, delays)
}

// sequence returns the validated frames and delays held by cfg.
func (cfg Config) sequence() ([]image.Image, []int, error) {
	frames := cfg.Frames
	if cfg.Image != nil {
		if len(frames) != 0 {
			return nil, nil, errors.New("both Image and Frames set")
		}
		frames = []image.Image{cfg.Image}
	}
	if len(frames) == 0 {
		return nil, nil, errors.New("no frames to write")
	}

	delays := cfg.Delays
	switch {
	case len(frames) == 1 && len(delays) <= 1:
	case len(delays) != len(frames):
		return nil, nil, fmt.Errorf("mismatched frame count and delay count: %d != %d", len(frames), len(delays))
	}
	for i, d := range delays {
		if d <= 0 {
			return nil, nil, fmt.Errorf("non-positive delay at frame %d: %d", i, d)
		}
	}

	b := frames[0].Bounds()
	for i, f := range frames[1:] {
		if f.Bounds() != b {
			return nil, nil, fmt.Errorf("mismatched bounds at %d: %v != %v", i+1, f.Bounds(), b)
		}
	}
	return frames, delays, nil
}
