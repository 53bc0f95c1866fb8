package cli

import (
	"github.com/spf13/cobra"

	"github.com/cuedego/secreon/internal/wordlist"
	"github.com/cuedego/secreon/pkg/secreon"
)

var wordsCmd = &cobra.Command{
	Use:   "words <word>",
	Short: "Look up a word's index in the canonical wordlist, or suggest matches",
	Long: `words resolves a single word (or unambiguous 4-character prefix) to its
index in the 1024-word list used to encode mnemonic shares. If the word is
not found, the closest matches are suggested instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runWords,
}

func runWords(cmd *cobra.Command, args []string) error {
	word := args[0]

	idx, err := secreon.WordToIndex(word)
	if err != nil {
		suggestions := wordlist.Suggest(word)
		if len(suggestions) == 0 {
			return err
		}
		outln(cmd.OutOrStdout(), "Unknown word. Did you mean:")
		for _, s := range suggestions {
			out(cmd.OutOrStdout(), "  %s\n", s)
		}
		return nil
	}

	out(cmd.OutOrStdout(), "%d\n", idx)
	return nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(wordsCmd)
}
