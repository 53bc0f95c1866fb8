package cli

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cuedego/secreon/internal/output"
	"github.com/cuedego/secreon/pkg/secreon"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	combineFromFile  string
	combinePromptPass bool
)

var combineCmd = &cobra.Command{
	Use:   "combine [mnemonic ...]",
	Short: "Recover a master secret from mnemonic shares",
	Long: `combine takes one or more mnemonic share strings, either as positional
arguments or one per line from a file (--from-file), and recovers the
original master secret.`,
	RunE: runCombine,
}

func runCombine(cmd *cobra.Command, args []string) error {
	mnemonics := args
	if combineFromFile != "" {
		lines, err := readLines(combineFromFile)
		if err != nil {
			return err
		}
		mnemonics = append(mnemonics, lines...)
	}
	output.Infof("recovering master secret from %d mnemonic share(s)", len(mnemonics))

	var passphrase []byte
	if combinePromptPass {
		p, err := promptPassphrase()
		if err != nil {
			return err
		}
		defer zero(p)
		passphrase = p
	}

	masterSecret, err := secreon.CombineMnemonics(mnemonics, passphrase)
	if err != nil {
		return err
	}
	defer zero(masterSecret)

	ctx := GetCmdContext(cmd)
	format := output.FormatText
	if ctx != nil && ctx.Fmt != nil {
		format = ctx.Fmt.Format()
	}
	localFmt := output.NewFormatter(format, cmd.OutOrStdout())

	if localFmt.IsJSON() {
		return localFmt.Print(map[string]string{"master_secret": hex.EncodeToString(masterSecret)})
	}
	return localFmt.Printf("%s\n", hex.EncodeToString(masterSecret))
}

// readLines reads non-empty lines from path.
func readLines(path string) ([]string, error) {
	// #nosec G304 -- path is an explicit user-provided CLI flag
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(combineCmd)
	combineCmd.Flags().StringVar(&combineFromFile, "from-file", "", "read mnemonics one per line from this file")
	combineCmd.Flags().BoolVar(&combinePromptPass, "passphrase", false, "prompt for the passphrase used at generation")
}
