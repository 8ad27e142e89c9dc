package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cardforge/pkg/card"
	"github.com/matzehuels/cardforge/pkg/compose"
	"github.com/matzehuels/cardforge/pkg/config"
	cferrors "github.com/matzehuels/cardforge/pkg/errors"
	cfio "github.com/matzehuels/cardforge/pkg/io"
	"github.com/matzehuels/cardforge/pkg/observability"
	"github.com/matzehuels/cardforge/pkg/sheet"
	"github.com/matzehuels/cardforge/pkg/template"
)

// Runner executes pipeline stages against one configuration.
//
// The Runner holds no per-run state, so multiple goroutines can share it.
type Runner struct {
	Config *config.Config
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cfg uses config.Default(), a nil logger
// uses log.Default().
func NewRunner(cfg *config.Config, logger *log.Logger) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Config: cfg, Logger: logger}
}

// LoadDeck reads a deck file.
func (r *Runner) LoadDeck(path string) (*card.Deck, error) {
	deck, err := card.LoadDeck(path)
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}
	r.Logger.Debug("loaded deck", "name", deck.Name, "cards", deck.Len(), "color", deck.Color)
	return deck, nil
}

// LoadTemplate reads the configured template. No configured template
// yields an empty one, which renders the frame only.
func (r *Runner) LoadTemplate() (*template.Template, error) {
	path := r.Config.Render.Template
	if path == "" {
		return template.Empty(), nil
	}
	tpl, err := template.Load(path, template.ParseOptions{Strict: r.Config.Render.Strict})
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	for _, s := range tpl.Skipped() {
		r.Logger.Warn("skipped template region", "region", s.Name, "reason", s.Reason)
	}
	r.Logger.Debug("loaded template", "path", path, "regions", tpl.Names())
	return tpl, nil
}

// Compositor returns a compositor for the configured frame and resolution.
func (r *Runner) Compositor() *compose.Compositor {
	return compose.New(compose.Config{
		DPI:       r.Config.Render.DPI,
		FramePath: r.Config.Render.Frame,
		Strict:    r.Config.Render.Strict,
	}, r.Logger)
}

// OutDir returns the directory a deck is exported to.
func (r *Runner) OutDir(deck *card.Deck) string {
	return cfio.DeckDir(r.Config.Workspace, deck.Name)
}

// job is the shared input of every card rendered in one call.
type job struct {
	comp   *compose.Compositor
	tpl    *template.Template
	deck   *card.Deck
	accent card.Color
	bleed  float64
}

func (r *Runner) newJob(deck *card.Deck, bleed *float64) (*job, error) {
	tpl, err := r.LoadTemplate()
	if err != nil {
		return nil, err
	}
	accent, err := r.Config.AccentColor(deck.Color)
	if err != nil {
		return nil, err
	}
	j := &job{comp: r.Compositor(), tpl: tpl, deck: deck, accent: accent, bleed: r.Config.Render.BleedMM}
	if bleed != nil {
		j.bleed = *bleed
	}
	return j, nil
}

// renderCard composites and exports card i to dir.
func (r *Runner) renderCard(ctx context.Context, j *job, i int, dir string) (string, []compose.SkippedRegion, error) {
	cd := j.deck.Cards[i]
	start := time.Now()
	observability.Render().OnCardStart(ctx, j.deck.Name, cd.Name)

	path, skipped, err := func() (string, []compose.SkippedRegion, error) {
		out, err := j.comp.Render(j.tpl, cd, j.accent, j.bleed)
		if err != nil {
			return "", nil, err
		}
		path := filepath.Join(dir, cfio.CardFileName(j.deck.Name, i, cd.Name))
		err = cfio.ExportPNG(path, out.Image)
		observability.Export().OnFileWritten(ctx, path, err)
		if err != nil {
			return "", nil, err
		}
		return path, out.Skipped, nil
	}()

	observability.Render().OnCardComplete(ctx, j.deck.Name, cd.Name, time.Since(start), err)
	for _, s := range skipped {
		observability.Render().OnRegionSkipped(ctx, cd.Name, s.Region, s.Reason)
	}
	if err != nil {
		return "", nil, fmt.Errorf("card %d (%s): %w", i, cd.Name, err)
	}
	return path, skipped, nil
}

// RenderDeck composites every card of deck and writes one PNG per card.
// Cards render in parallel; the result lists files in deck order. The
// first failure cancels the remaining cards.
func (r *Runner) RenderDeck(ctx context.Context, deck *card.Deck, opts RenderOptions) (res *RenderResult, err error) {
	start := time.Now()
	total := deck.Len()
	observability.Render().OnDeckStart(ctx, deck.Name, total)
	defer func() {
		n := 0
		if res != nil {
			n = len(res.Files)
		}
		observability.Render().OnDeckComplete(ctx, deck.Name, n, time.Since(start), err)
	}()

	j, err := r.newJob(deck, opts.BleedMM)
	if err != nil {
		return nil, err
	}
	dir := opts.OutDir
	if dir == "" {
		dir = r.OutDir(deck)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = r.Config.Render.Workers
	}

	files := make([]string, total)
	skipped := make([][]compose.SkippedRegion, total)

	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range deck.Cards {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path, sk, err := r.renderCard(gctx, j, i, dir)
			if err != nil {
				return err
			}
			files[i], skipped[i] = path, sk

			mu.Lock()
			defer mu.Unlock()
			done++
			if opts.Progress != nil {
				opts.Progress(done, total, path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res = &RenderResult{Deck: deck, Files: files, Duration: time.Since(start)}
	for i, sk := range skipped {
		for _, s := range sk {
			res.Skipped = append(res.Skipped, SkippedRegion{Card: deck.Cards[i].Name, Region: s.Region, Reason: s.Reason})
		}
	}
	r.Logger.Info("rendered deck", "deck", deck.Name, "cards", total, "dir", dir, "duration", res.Duration)
	return res, nil
}

// RenderCard composites the card at index without writing it.
func (r *Runner) RenderCard(deck *card.Deck, index int, bleed *float64) (*compose.RenderedCard, error) {
	cd, ok := deck.At(index)
	if !ok {
		return nil, cferrors.New(cferrors.ErrCodeInvalidInput, "card index %d out of range (deck has %d cards)", index, deck.Len())
	}
	j, err := r.newJob(deck, bleed)
	if err != nil {
		return nil, err
	}
	return j.comp.Render(j.tpl, cd, j.accent, j.bleed)
}

// Preview renders the card at index to out, or into the deck's export
// directory when out is empty, and returns the written path.
func (r *Runner) Preview(ctx context.Context, deck *card.Deck, index int, out string) (string, error) {
	rendered, err := r.RenderCard(deck, index, nil)
	if err != nil {
		return "", err
	}
	if out == "" {
		out = filepath.Join(r.OutDir(deck), cfio.CardFileName(deck.Name, index, rendered.Name))
	}
	err = cfio.ExportPNG(out, rendered.Image)
	observability.Export().OnFileWritten(ctx, out, err)
	if err != nil {
		return "", err
	}
	for _, s := range rendered.Skipped {
		r.Logger.Warn("skipped region", "card", rendered.Name, "region", s.Region, "reason", s.Reason)
	}
	return out, nil
}

// BuildSheet packs the image files in refs, in order, and writes the PDF.
// Inputs that are not readable images are skipped. With nothing left to
// pack no file is written.
func (r *Runner) BuildSheet(ctx context.Context, refs []string, opts SheetOptions) (*SheetResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	g := r.Config.Geometry()
	if opts.Geometry != nil {
		g = *opts.Geometry
	}
	packed, err := sheet.PackFiles(refs, g)
	if err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}
	plan := packed.Plan
	for _, s := range packed.Skipped {
		r.Logger.Warn("skipped image", "path", s.Ref, "reason", s.Reason)
	}
	observability.Sheet().OnPackComplete(ctx, plan.Len(), len(plan.Pages), len(packed.Skipped))

	res := &SheetResult{Plan: plan, Skipped: packed.Skipped}

	if opts.PlanOutput != "" {
		err := cfio.WriteFileAtomic(opts.PlanOutput, func(w io.Writer) error {
			return sheet.WriteJSON(w, plan)
		})
		observability.Export().OnFileWritten(ctx, opts.PlanOutput, err)
		if err != nil {
			return nil, fmt.Errorf("write plan: %w", err)
		}
		res.PlanFile = opts.PlanOutput
	}

	if len(plan.Pages) == 0 {
		r.Logger.Warn("nothing to pack", "inputs", len(refs))
		res.Duration = time.Since(start)
		return res, nil
	}

	writeStart := time.Now()
	err = cfio.WriteFileAtomic(opts.Output, func(w io.Writer) error {
		return sheet.WritePDF(w, plan, sheet.FileSource{})
	})
	observability.Sheet().OnWriteComplete(ctx, opts.Output, len(plan.Pages), time.Since(writeStart), err)
	observability.Export().OnFileWritten(ctx, opts.Output, err)
	if err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	res.PDF = opts.Output
	res.Duration = time.Since(start)
	r.Logger.Info("wrote sheet", "path", opts.Output, "cards", plan.Len(), "pages", len(plan.Pages), "duration", res.Duration)
	return res, nil
}

// SheetPath returns the default PDF path for a deck.
func (r *Runner) SheetPath(deck *card.Deck, dir string) string {
	if dir == "" {
		dir = r.OutDir(deck)
	}
	return filepath.Join(dir, cferrors.SanitizeFileName(deck.Name)+".pdf")
}

// Build renders deck and packs the exported cards, in deck order, into
// <out dir>/<deck name>.pdf.
func (r *Runner) Build(ctx context.Context, deck *card.Deck, opts RenderOptions) (*BuildResult, error) {
	rendered, err := r.RenderDeck(ctx, deck, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	sheetOpts := SheetOptions{Output: r.SheetPath(deck, opts.OutDir)}
	if opts.BleedMM != nil {
		g := r.Config.Geometry()
		g.Bleed = *opts.BleedMM
		sheetOpts.Geometry = &g
	}
	sh, err := r.BuildSheet(ctx, rendered.Files, sheetOpts)
	if err != nil {
		return nil, fmt.Errorf("sheet: %w", err)
	}
	return &BuildResult{Render: rendered, Sheet: sh}, nil
}
