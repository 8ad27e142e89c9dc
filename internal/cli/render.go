package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardforge/pkg/pipeline"
)

// renderOpts holds the command-line flags shared by render and build.
type renderOpts struct {
	outDir  string  // export directory, default <workspace>/<deck>
	workers int     // parallel renders, 0 uses render.workers
	bleed   float64 // bleed in mm, applied only when the flag is set
}

// addRenderFlags registers the render flags on cmd.
func addRenderFlags(cmd *cobra.Command, opts *renderOpts) {
	cmd.Flags().StringVarP(&opts.outDir, "output", "o", "", "output directory (default <workspace>/<deck name>)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "cards rendered in parallel (default from config)")
	cmd.Flags().Float64Var(&opts.bleed, "bleed", 0, "bleed margin in mm around each card")
	mustRegisterFlagCompletion(cmd, "output", dirsOnly)
	mustRegisterFlagCompletion(cmd, "workers", cobra.NoFileCompletions)
	mustRegisterFlagCompletion(cmd, "bleed", cobra.NoFileCompletions)
}

// pipelineOptions converts flags to pipeline options. spin, if not nil,
// shows render progress.
func (o *renderOpts) pipelineOptions(cmd *cobra.Command, spin *Spinner) pipeline.RenderOptions {
	opts := pipeline.RenderOptions{OutDir: o.outDir, Workers: o.workers}
	if cmd.Flags().Changed("bleed") {
		bleed := o.bleed
		opts.BleedMM = &bleed
	}
	if spin != nil {
		opts.Progress = func(done, total int, path string) {
			spin.SetMessage(fmt.Sprintf("Rendering cards %d/%d (%s)", done, total, filepath.Base(path)))
		}
	}
	return opts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render DECK",
		Short: "Render every card of a deck to PNG",
		Long: `Render composites every card of a deck onto the configured frame and
template and writes one PNG per card.

Files are named <card name>-<suffix>.png, so cards sharing a name never
overwrite each other.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDeck,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}
	addRenderFlags(cmd, &opts)
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, deckPath string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner()
	if err != nil {
		return err
	}
	deck, err := runner.LoadDeck(deckPath)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	var res *pipeline.RenderResult
	err = withSpinner(ctx, fmt.Sprintf("Rendering %s...", deck.Name), func(spin *Spinner) (err error) {
		res, err = runner.RenderDeck(ctx, deck, opts.pipelineOptions(cmd, spin))
		return err
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d cards", len(res.Files)))

	printSuccess("Rendered %s", StyleHighlight.Render(deck.Name))
	printCounts(count{n: len(res.Files), label: "cards"}, count{n: len(res.Skipped), label: "skipped regions", warn: true})
	if len(res.Files) > 0 {
		printFile(filepath.Dir(res.Files[0]))
	}
	return nil
}

// withSpinner runs fn with a spinner on stderr.
func withSpinner(ctx context.Context, message string, fn func(*Spinner) error) error {
	spin := newSpinnerWithContext(ctx, message)
	spin.Start()
	defer spin.Stop()
	return fn(spin)
}
