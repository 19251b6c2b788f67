// renderer.go - Frame rendering for status badges and cards.
// Cards use a layered approach: the static content (icon, title, wrapped
// description, tagline) is drawn once into a backdrop, and each frame copies
// the backdrop and draws the status badge over it.
package template

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/xob0t/statuscards/pkg/generator"
)

// Renderer handles frame composition. Lengths given to a Renderer are in
// points and are multiplied by its scale.
type Renderer struct {
	fonts *FontManager
	scale int
}

// NewRenderer creates a new renderer drawing with the provided fonts.
func NewRenderer(fonts *FontManager, scale int) *Renderer {
	return &Renderer{
		fonts: fonts,
		scale: max(scale, 1),
	}
}

// px converts points to pixels.
func (r *Renderer) px(pt int) int {
	return pt * r.scale
}

// ── Badges ──

// BadgeOptions describes a single-line badge. Lengths are in points.
type BadgeOptions struct {
	Height   int
	PadX     int
	FontSize float64
	Weight   Weight
	Radius   int // corner radius; 0 for square corners
	Lift     int // upward text offset compensating for ascent metrics
	Text     color.Color
}

// Badge renders fixed-size single-line badge frames.
type Badge struct {
	width, height int
	padX, lift    int
	radius        int
	fg            color.Color
	face          font.Face
	ascent, inkH  int
}

// Badge returns a badge wide enough to hold the widest of texts.
func (r *Renderer) Badge(opts BadgeOptions, texts ...string) *Badge {
	face := r.fonts.Face(opts.FontSize, opts.Weight)
	padX := r.px(opts.PadX)
	var textW int
	for _, t := range texts {
		textW = max(textW, Measure(face, t))
	}
	fg := opts.Text
	if fg == nil {
		fg = color.White
	}
	ascent, inkH := inkMetrics(face)
	return &Badge{
		width:  textW + 2*padX,
		height: r.px(opts.Height),
		padX:   padX,
		lift:   r.px(opts.Lift),
		radius: r.px(opts.Radius),
		fg:     fg,
		face:   face,
		ascent: ascent,
		inkH:   inkH,
	}
}

// Bounds returns the bounds of every frame rendered by the badge.
func (b *Badge) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Frame renders text left-aligned on a badge filled with bg.
func (b *Badge) Frame(text string, bg color.Color) *image.RGBA {
	img := image.NewRGBA(b.Bounds())
	fillRect(img, img.Bounds(), b.radius, bg)
	y := (b.height-b.inkH)/2 - b.lift
	drawString(img, text, b.padX, y+b.ascent, b.fg, b.face)
	return img
}

// ── Cards ──

// Card element sizes in points.
const (
	cardBadgeHeight   = 28
	cardBadgePadX     = 8
	cardBadgePadY     = 4
	cardBadgeLift     = 2
	cardBadgeGap      = 8
	cardTitleHeight   = 24
	cardTitleGap      = 12
	cardIconGap       = 10
	cardLineHeight    = 20
	cardDescGap       = 16
	cardTaglineGap    = 8
	cardTaglineHeight = 24
)

// Card font sizes in points.
const (
	iconSize    = 18
	titleSize   = 16
	bodySize    = 12
	taglineSize = 12
	badgeSize   = 10
)

// CardLayout is a card with its static content laid out and drawn.
// Frames differ only in the status badge.
type CardLayout struct {
	Lines []string // wrapped description

	backdrop  *image.RGBA
	padding   int
	badgeFace font.Face
	badgePadX int
	badgePadY int
	lift      int
	ascent    int
	inkH      int
}

// LayoutCard wraps the card description to the content width, computes the
// card height and draws the static card content.
func (r *Renderer) LayoutCard(card Card, theme Theme) *CardLayout {
	width := r.px(theme.CardWidth)
	padding := r.px(theme.CardPadding)

	fontIcon := r.fonts.Face(iconSize, Regular)
	fontTitle := r.fonts.Face(titleSize, Bold)
	fontBody := r.fonts.Face(bodySize, Regular)
	fontTagline := r.fonts.Face(taglineSize, Bold)
	fontBadge := r.fonts.Face(badgeSize, Regular)

	lines := Wrap(card.Description, fontBody, width-2*padding)

	height := padding +
		r.px(cardBadgeHeight) + r.px(cardBadgeGap) +
		r.px(cardTitleHeight) + r.px(cardTitleGap) +
		len(lines)*r.px(cardLineHeight) + r.px(cardDescGap) +
		r.px(cardTaglineHeight) + padding

	primary := generator.ParseHexRGBA(theme.TextPrimary)
	secondary := generator.ParseHexRGBA(theme.TextSecondary)
	img := generator.NewSolidImage(width, height, generator.ParseHexRGBA(theme.Background))

	y := padding + r.px(cardBadgeHeight) + r.px(cardBadgeGap)

	// Icon + Title
	titleX := padding
	if card.Icon != "" {
		drawTop(img, card.Icon, padding, y, secondary, fontIcon)
		titleX += Measure(fontIcon, card.Icon) + r.px(cardIconGap)
	}
	drawTop(img, card.Title, titleX, y, primary, fontTitle)
	y += r.px(cardTitleHeight) + r.px(cardTitleGap)

	// Description
	for _, line := range lines {
		drawTop(img, line, padding, y, secondary, fontBody)
		y += r.px(cardLineHeight)
	}
	y += r.px(cardTaglineGap)

	// Tagline
	drawTop(img, card.Tagline, padding, y, primary, fontTagline)

	ascent, inkH := inkMetrics(fontBadge)
	return &CardLayout{
		Lines:     lines,
		backdrop:  img,
		padding:   padding,
		badgeFace: fontBadge,
		badgePadX: r.px(cardBadgePadX),
		badgePadY: r.px(cardBadgePadY),
		lift:      r.px(cardBadgeLift),
		ascent:    ascent,
		inkH:      inkH,
	}
}

// Bounds returns the bounds of every frame rendered from the layout.
func (l *CardLayout) Bounds() image.Rectangle {
	return l.backdrop.Bounds()
}

// Frame renders the card with a status badge showing text on bg. The badge
// is right-aligned to the card padding, so its position follows the width
// of text.
func (l *CardLayout) Frame(text string, bg color.Color) *image.RGBA {
	img := image.NewRGBA(l.backdrop.Bounds())
	draw.Copy(img, image.Point{}, l.backdrop, l.backdrop.Bounds(), draw.Src, nil)

	textW := Measure(l.badgeFace, text)
	badgeW := textW + 2*l.badgePadX
	badgeH := l.inkH + 2*l.badgePadY
	x := img.Bounds().Dx() - l.padding - badgeW
	y := l.padding

	fillRect(img, image.Rect(x, y, x+badgeW, y+badgeH), 0, bg)
	drawString(img, text, x+l.badgePadX, y+l.badgePadY-l.lift+l.ascent, color.White, l.badgeFace)
	return img
}

// ── Drawing helpers ──

// drawString draws text with its baseline at y.
func drawString(img draw.Image, text string, x, y int, col color.Color, face font.Face) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}

// drawTop draws text with the top of the face's ascent at y.
func drawTop(img draw.Image, text string, x, y int, col color.Color, face font.Face) {
	drawString(img, text, x, y+face.Metrics().Ascent.Ceil(), col, face)
}

// fillRect fills r with c, rounding the corners when radius is positive.
func fillRect(dst draw.Image, r image.Rectangle, radius int, c color.Color) {
	src := &image.Uniform{c}
	radius = min(radius, r.Dx()/2, r.Dy()/2)
	if radius <= 0 {
		draw.Draw(dst, r, src, image.Point{}, draw.Src)
		return
	}

	w, h, rf := float32(r.Dx()), float32(r.Dy()), float32(radius)
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.MoveTo(rf, 0)
	z.LineTo(w-rf, 0)
	z.QuadTo(w, 0, w, rf)
	z.LineTo(w, h-rf)
	z.QuadTo(w, h, w-rf, h)
	z.LineTo(rf, h)
	z.QuadTo(0, h, 0, h-rf)
	z.LineTo(0, rf)
	z.QuadTo(0, 0, rf, 0)
	z.ClosePath()
	z.Draw(dst, r, src, image.Point{})
}
