package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardforge/pkg/pipeline"
)

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "build DECK",
		Short: "Render a deck and pack it into a printable PDF",
		Long: `Build renders every card of a deck like render does, then packs the
cards in deck order into <output dir>/<deck name>.pdf.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDeck,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			deck, err := runner.LoadDeck(args[0])
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(ctx))
			var res *pipeline.BuildResult
			err = withSpinner(ctx, fmt.Sprintf("Building %s...", deck.Name), func(spin *Spinner) (err error) {
				res, err = runner.Build(ctx, deck, opts.pipelineOptions(cmd, spin))
				return err
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Built %s", deck.Name))

			printSuccess("Rendered %s", StyleHighlight.Render(deck.Name))
			printCounts(count{n: len(res.Render.Files), label: "cards"}, count{n: len(res.Render.Skipped), label: "skipped regions", warn: true})
			printSheetResult(res.Sheet)
			return nil
		},
	}
	addRenderFlags(cmd, &opts)
	return cmd
}
