package cli

import (
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardforge/pkg/card"
	cfio "github.com/matzehuels/cardforge/pkg/io"
)

// Extensions offered by file completions, without the leading dot.
var (
	deckExtensions   = []string{"json", "toml"}
	configExtensions = []string{"toml"}
)

// completionCommand creates the completion command.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for cardforge.

Deck arguments complete to .json and .toml files, sheet inputs to images
and directories, and output flags to the file type each command writes.

  $ source <(cardforge completion bash)
  $ cardforge completion zsh > "${fpath[1]}/_cardforge"
  $ cardforge completion fish > ~/.config/fish/completions/cardforge.fish
  PS> cardforge completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// fileExt completes files with one of exts.
func fileExt(exts ...string) cobra.CompletionFunc {
	return func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
		return exts, cobra.ShellCompDirectiveFilterFileExt
	}
}

// dirsOnly completes directories.
func dirsOnly(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// completeDeck completes the single DECK argument.
func completeDeck(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return fileExt(deckExtensions...)(cmd, args, toComplete)
}

// completeSheetInputs completes card images. Directories are offered too,
// since a single directory argument packs every image in it.
func completeSheetInputs(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
	return imageExtensions(), cobra.ShellCompDirectiveFilterFileExt
}

func imageExtensions() []string {
	exts := make([]string, 0, len(cfio.ImageExtensions))
	for ext := range cfio.ImageExtensions {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	sort.Strings(exts)
	return exts
}

// mustRegisterFlagCompletion registers fn for flag. It panics if the flag
// does not exist.
func mustRegisterFlagCompletion(cmd *cobra.Command, flag string, fn cobra.CompletionFunc) {
	if err := cmd.RegisterFlagCompletionFunc(flag, fn); err != nil {
		panic(err)
	}
}

// completeCardIndex offers the card indexes of the deck named by the first
// argument, described by card name.
func completeCardIndex(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	deck, err := card.LoadDeck(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	out := make([]cobra.Completion, deck.Len())
	for i, cd := range deck.Cards {
		out[i] = strconv.Itoa(i) + "\t" + cd.Name
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveKeepOrder
}
