// interface.go — Output encoders, selected by file extension.
package generator

import (
	"fmt"
	"image"
	"io"
	"strings"
)

// Encoder writes a validated frame sequence in one image format.
type Encoder interface {
	// Check reports whether the encoder can write n frames. It is called
	// before any output is created.
	Check(n int) error

	// Encode writes frames with their delays in milliseconds to w.
	Encode(w io.Writer, frames []image.Image, delays []int) error
}

// encoders maps lower-case file extensions to their encoders.
var encoders = map[string]Encoder{
	".png": pngEncoder{},
	".gif": gifEncoder{},
}

// EncoderFor returns the encoder for the file extension ext.
func EncoderFor(ext string) (Encoder, error) {
	enc, ok := encoders[strings.ToLower(ext)]
	if !ok {
		return nil, fmt.Errorf("unsupported format %q: use .png or .gif", ext)
	}
	return enc, nil
}

type pngEncoder struct{}

func (pngEncoder) Check(n int) error {
	if n != 1 {
		return fmt.Errorf("PNG output requires one frame, got %d", n)
	}
	return nil
}

func (pngEncoder) Encode(w io.Writer, frames []image.Image, _ []int) error {
	return encodePNG(w, frames[0])
}

type gifEncoder struct{}

func (gifEncoder) Check(int) error { return nil }

func (gifEncoder) Encode(w io.Writer, frames []image.Image, delays []int) error {
	return encodeGIF(w, frames, delays)
}
