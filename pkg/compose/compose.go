package compose

import (
	"image"
	"image/draw"
	"io"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/cardforge/pkg/card"
	cferrors "github.com/matzehuels/cardforge/pkg/errors"
	"github.com/matzehuels/cardforge/pkg/fonts"
	"github.com/matzehuels/cardforge/pkg/template"
	"github.com/matzehuels/cardforge/pkg/units"
)

// Trim size of every card in millimetres.
const (
	TrimWidthMM  = 40.0
	TrimHeightMM = 62.0
)

// LineSpacing is the stats line step as a multiple of the font size.
const LineSpacing = 1.2

// Config configures a Compositor.
type Config struct {
	// DPI is the output resolution. Zero selects units.DefaultDPI.
	DPI int

	// FramePath is the frame image drawn under every card. Required.
	FramePath string

	// Strict fails the render on a missing art file or unreadable font
	// instead of skipping the region.
	Strict bool
}

// Compositor renders cards. It holds configuration only.
type Compositor struct {
	cfg    Config
	conv   units.Converter
	logger *log.Logger
}

// New creates a Compositor. A nil logger uses log.Default().
func New(cfg Config, logger *log.Logger) *Compositor {
	if logger == nil {
		logger = log.Default()
	}
	conv := units.New(cfg.DPI)
	cfg.DPI = conv.DPI
	return &Compositor{cfg: cfg, conv: conv, logger: logger}
}

// Config returns the compositor's configuration.
func (c *Compositor) Config() Config { return c.cfg }

// RenderedCard is one composited card image.
type RenderedCard struct {
	Name    string
	Image   *image.RGBA
	Skipped []SkippedRegion
}

// SkippedRegion names a template region left out of a render.
type SkippedRegion struct {
	Region string
	Reason string
}

// EncodePNG writes the card image as PNG.
func (r *RenderedCard) EncodePNG(w io.Writer) error {
	if err := imaging.Encode(w, r.Image, imaging.PNG); err != nil {
		return cferrors.Wrap(cferrors.ErrCodeEncode, err, "encode png").WithSubject(r.Name)
	}
	return nil
}

// CanvasSize returns the pixel size of a card rendered with bleedMM.
func (c *Compositor) CanvasSize(bleedMM float64) (w, h int) {
	return c.conv.ToPixels(TrimWidthMM + 2*bleedMM), c.conv.ToPixels(TrimHeightMM + 2*bleedMM)
}

// Render composites one card. tpl may be nil, which renders the frame only.
func (c *Compositor) Render(tpl *template.Template, cd card.Card, deck card.Color, bleedMM float64) (*RenderedCard, error) {
	if bleedMM < 0 || math.IsNaN(bleedMM) || math.IsInf(bleedMM, 0) {
		return nil, cferrors.New(cferrors.ErrCodeInvalidGeometry, "bleed must be a non-negative number of millimetres, got %v", bleedMM)
	}
	if tpl == nil {
		tpl = template.Empty()
	}

	w, h := c.CanvasSize(bleedMM)
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))

	frame, err := c.loadFrame(w, h)
	if err != nil {
		return nil, err
	}
	draw.Draw(canvas, canvas.Bounds(), Recolor(frame, deck), image.Point{}, draw.Over)

	out := &RenderedCard{Name: cd.Name, Image: canvas}
	for _, kind := range template.Kinds {
		region, ok := tpl.Lookup(kind)
		if !ok {
			continue
		}

		var rerr error
		switch kind {
		case template.KindArt:
			rerr = c.drawArt(canvas, region, cd, bleedMM)
		case template.KindTitle:
			rerr = c.drawTitle(canvas, region, cd, bleedMM)
		case template.KindStats:
			rerr = c.drawStats(canvas, region, cd, bleedMM)
		}
		if rerr == nil {
			continue
		}
		if _, silent := rerr.(skip); silent {
			continue
		}
		if c.cfg.Strict {
			return nil, rerr
		}
		reason := cferrors.UserMessage(rerr)
		out.Skipped = append(out.Skipped, SkippedRegion{Region: region.Name, Reason: reason})
		fields := []any{"card", cd.Name, "region", region.Name, "reason", reason}
		if kind.IsText() {
			fields = append(fields, "font", fonts.DisplayName(region.Font))
		}
		c.logger.Debug("skipped region", fields...)
	}

	return out, nil
}

// skip marks a region the card has no data for. It is neither fatal nor
// reported in RenderedCard.Skipped.
type skip string

func (s skip) Error() string { return string(s) }

// box converts a region to its pixel rectangle on a canvas with bleedMM.
func (c *Compositor) box(r template.Region, bleedMM float64) (image.Rectangle, bool) {
	x := c.conv.ToPixels(r.X + bleedMM)
	y := c.conv.ToPixels(r.Y + bleedMM)
	w := c.conv.ToPixels(r.W)
	h := c.conv.ToPixels(r.H)
	if x < 0 || y < 0 || w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}

func (c *Compositor) loadFrame(w, h int) (*image.NRGBA, error) {
	if c.cfg.FramePath == "" {
		return nil, cferrors.New(cferrors.ErrCodeFrameUnreadable, "no frame configured")
	}
	src, err := imaging.Open(c.cfg.FramePath)
	if err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeFrameUnreadable, err, "load frame").WithSubject(c.cfg.FramePath)
	}
	return imaging.Resize(src, w, h, imaging.Lanczos), nil
}

func (c *Compositor) drawArt(canvas *image.RGBA, r template.Region, cd card.Card, bleedMM float64) error {
	if cd.ArtPath == "" {
		return skip("card has no art")
	}
	rect, ok := c.box(r, bleedMM)
	if !ok {
		return cferrors.New(cferrors.ErrCodeInvalidTemplate, "region has no pixel area").WithSubject(r.Name)
	}
	if _, err := os.Stat(cd.ArtPath); err != nil {
		return cferrors.Wrap(cferrors.ErrCodeAssetNotFound, err, "art not found").WithSubject(cd.ArtPath)
	}
	src, err := imaging.Open(cd.ArtPath)
	if err != nil {
		return cferrors.Wrap(cferrors.ErrCodeImageUnreadable, err, "decode art").WithSubject(cd.ArtPath)
	}
	art := imaging.Resize(src, rect.Dx(), rect.Dy(), imaging.Lanczos)
	draw.Draw(canvas, rect, art, image.Point{}, draw.Over)
	return nil
}

func (c *Compositor) drawTitle(canvas *image.RGBA, r template.Region, cd card.Card, bleedMM float64) error {
	rect, ok := c.box(r, bleedMM)
	if !ok {
		return cferrors.New(cferrors.ErrCodeInvalidTemplate, "region has no pixel area").WithSubject(r.Name)
	}
	return drawLines(canvas, r, rect.Min, []string{cd.Name})
}

func (c *Compositor) drawStats(canvas *image.RGBA, r template.Region, cd card.Card, bleedMM float64) error {
	if !cd.IsUnit() {
		return skip("card has no stats")
	}
	rect, ok := c.box(r, bleedMM)
	if !ok {
		return cferrors.New(cferrors.ErrCodeInvalidTemplate, "region has no pixel area").WithSubject(r.Name)
	}
	lines := make([]string, 0, 6)
	for _, l := range cd.Stats.Lines() {
		lines = append(lines, statLine(l))
	}
	return drawLines(canvas, r, rect.Min, lines)
}
