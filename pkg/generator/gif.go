// gif.go — Animated GIF writer with a shared, deterministic palette.
package generator

import (
	"cmp"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"slices"
)

// maxPaletteSize is the largest color table a GIF frame may carry.
const maxPaletteSize = 256

// encodeGIF writes frames as a GIF. A single frame is written as a still
// image; multiple frames loop forever and each frame restores the background
// before the next is drawn. Delays are in milliseconds.
func encodeGIF(w io.Writer, frames []image.Image, delays []int) error {
	pal := quantize(frames)
	lookup := make(map[color.RGBA]uint8, len(pal))
	for i, c := range pal {
		lookup[c.(color.RGBA)] = uint8(i)
	}

	b := frames[0].Bounds()
	g := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(frames)),
		Config: image.Config{
			ColorModel: pal,
			Width:      b.Dx(),
			Height:     b.Dy(),
		},
		BackgroundIndex: paletteIndex(pal, lookup, rgbaAt(frames[0], b.Min.X, b.Min.Y)),
	}
	for _, frame := range frames {
		g.Image = append(g.Image, toPaletted(frame, pal, lookup))
	}

	g.Delay = make([]int, len(frames))
	for i, d := range delays {
		g.Delay[i] = centiseconds(d)
	}
	if len(frames) == 1 {
		g.LoopCount = -1
	} else {
		g.LoopCount = 0
		g.Disposal = make([]byte, len(frames))
		for i := range g.Disposal {
			g.Disposal[i] = gif.DisposalBackground
		}
	}

	if err := gif.EncodeAll(w, g); err != nil {
		return fmt.Errorf("encode GIF: %w", err)
	}
	return nil
}

// centiseconds converts a millisecond delay to GIF delay units,
// rounding to the nearest unit and never returning zero.
func centiseconds(ms int) int {
	return max((ms+5)/10, 1)
}

// quantize returns a palette shared by all frames. If the frames use at most
// 256 distinct colors the palette is exact, otherwise it holds the most
// frequent colors. Ties are broken by color value so the result does not
// depend on map iteration order.
func quantize(frames []image.Image) color.Palette {
	counts := make(map[color.RGBA]int)
	for _, frame := range frames {
		b := frame.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				counts[rgbaAt(frame, x, y)]++
			}
		}
	}

	type entry struct {
		c color.RGBA
		n int
	}
	entries := make([]entry, 0, len(counts))
	for c, n := range counts {
		entries = append(entries, entry{c: c, n: n})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(b.n, a.n); c != 0 {
			return c
		}
		return cmp.Compare(pack(a.c), pack(b.c))
	})
	if len(entries) > maxPaletteSize {
		entries = entries[:maxPaletteSize]
	}

	pal := make(color.Palette, len(entries))
	for i, e := range entries {
		pal[i] = e.c
	}
	return pal
}

// toPaletted maps frame onto pal, caching nearest-color lookups in lookup.
func toPaletted(frame image.Image, pal color.Palette, lookup map[color.RGBA]uint8) *image.Paletted {
	b := frame.Bounds()
	dst := image.NewPaletted(b, pal)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Pix[dst.PixOffset(x, y)] = paletteIndex(pal, lookup, rgbaAt(frame, x, y))
		}
	}
	return dst
}

func paletteIndex(pal color.Palette, lookup map[color.RGBA]uint8, c color.RGBA) uint8 {
	idx, ok := lookup[c]
	if !ok {
		idx = uint8(pal.Index(c))
		lookup[c] = idx
	}
	return idx
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba.RGBAAt(x, y)
	}
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func pack(c color.RGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}
