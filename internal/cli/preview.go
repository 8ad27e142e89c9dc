package cli

import (
	"github.com/spf13/cobra"
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		index  int
		output string
	)

	cmd := &cobra.Command{
		Use:               "preview DECK",
		Short:             "Render a single card of a deck",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDeck,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			deck, err := runner.LoadDeck(args[0])
			if err != nil {
				return err
			}
			path, err := runner.Preview(cmd.Context(), deck, index, output)
			if err != nil {
				return err
			}
			printSuccess("Rendered %s", StyleHighlight.Render(deck.Cards[index].Name))
			printFile(path)
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "card", 0, "zero-based index of the card in the deck")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG file (default in the deck's export directory)")
	mustRegisterFlagCompletion(cmd, "card", completeCardIndex)
	mustRegisterFlagCompletion(cmd, "output", fileExt("png"))
	return cmd
}
