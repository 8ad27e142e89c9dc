package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfio "github.com/matzehuels/cardforge/pkg/io"
	"github.com/matzehuels/cardforge/pkg/pipeline"
)

// sheetOpts holds the command-line flags for the sheet command.
type sheetOpts struct {
	output     string
	plan       string
	margin     float64
	cardWidth  float64
	cardHeight float64
}

// sheetCommand creates the sheet command.
func (c *CLI) sheetCommand() *cobra.Command {
	opts := sheetOpts{output: "sheet.pdf"}

	cmd := &cobra.Command{
		Use:   "sheet (DIR | FILE...)",
		Short: "Pack card images onto printable PDF pages",
		Long: `Sheet lays out card images row by row on A4 pages, inside the page
margins, and writes them as a PDF.

Given a single directory, every image in it is packed in file name order.
Files that are not readable images are skipped.`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeSheetInputs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSheet(cmd, args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output PDF file")
	cmd.Flags().StringVar(&opts.plan, "plan", "", "also write the placement plan as JSON")
	cmd.Flags().Float64Var(&opts.margin, "margin", 0, "page margin in mm (default from config)")
	cmd.Flags().Float64Var(&opts.cardWidth, "card-width", 0, "card width in mm (default from config)")
	cmd.Flags().Float64Var(&opts.cardHeight, "card-height", 0, "card height in mm (default from config)")
	mustRegisterFlagCompletion(cmd, "output", fileExt("pdf"))
	mustRegisterFlagCompletion(cmd, "plan", fileExt("json"))
	return cmd
}

func (c *CLI) runSheet(cmd *cobra.Command, args []string, opts *sheetOpts) error {
	ctx := cmd.Context()

	runner, err := c.newRunner()
	if err != nil {
		return err
	}
	refs, err := sheetInputs(args)
	if err != nil {
		return err
	}

	g := runner.Config.Geometry()
	if cmd.Flags().Changed("margin") {
		g.Margin = opts.margin
	}
	if cmd.Flags().Changed("card-width") {
		g.CardWidth = opts.cardWidth
	}
	if cmd.Flags().Changed("card-height") {
		g.CardHeight = opts.cardHeight
	}

	prog := newProgress(loggerFromContext(ctx))
	res, err := runner.BuildSheet(ctx, refs, pipeline.SheetOptions{
		Output:     opts.output,
		PlanOutput: opts.plan,
		Geometry:   &g,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Packed %d images", res.Plan.Len()))

	printSheetResult(res)
	return nil
}

// sheetInputs expands a single directory argument into its images.
func sheetInputs(args []string) ([]string, error) {
	if len(args) == 1 {
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			return cfio.ListImages(args[0])
		}
	}
	return args, nil
}

func printSheetResult(res *pipeline.SheetResult) {
	if res.PDF == "" {
		printWarning("No images to pack")
	} else {
		printSuccess("Packed sheet")
	}
	printCounts(
		count{n: res.Plan.Len(), label: "cards"},
		count{n: len(res.Plan.Pages), label: "pages"},
		count{n: len(res.Skipped), label: "skipped", warn: true},
	)
	for _, s := range res.Skipped {
		printDetail("skipped %s: %s", s.Ref, s.Reason)
	}
	if res.PDF != "" {
		printFile(res.PDF)
	}
	if res.PlanFile != "" {
		printFile(res.PlanFile)
	}
}
