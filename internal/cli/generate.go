package cli

import (
	"crypto/rand"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cuedego/secreon/internal/output"
	"github.com/cuedego/secreon/internal/secure"
	"github.com/cuedego/secreon/pkg/secreon"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	generateGroupThreshold  int
	generateMemberThreshold int
	generateMemberCount     int
	generateStrengthBytes   int
	generateExtendable      bool
	generateIterationExp    int
	generatePromptPass      bool
	generateShowQR          bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new master secret and split it into mnemonic shares",
	Long: `generate creates a random master secret and splits it into one group of
SLIP-39 mnemonic shares, requiring member-threshold of member-count shares
within the group to recover it.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	masterSecret := secure.New(generateStrengthBytes)
	defer masterSecret.Destroy()

	if _, err := rand.Read(masterSecret.Bytes()); err != nil {
		return fmt.Errorf("generating master secret: %w", err)
	}

	var passphrase []byte
	if generatePromptPass {
		p, err := promptPassphrase()
		if err != nil {
			return err
		}
		defer zero(p)
		passphrase = p
	}

	groups := []secreon.GroupSpec{{MemberThreshold: generateMemberThreshold, MemberCount: generateMemberCount}}

	mnemonics, err := secreon.GenerateMnemonics(nil, generateGroupThreshold, groups, masterSecret.Bytes(), passphrase, generateExtendable, generateIterationExp)
	if err != nil {
		return err
	}

	ctx := GetCmdContext(cmd)
	format := output.FormatText
	if ctx != nil && ctx.Fmt != nil {
		format = ctx.Fmt.Format()
	}
	localFmt := output.NewFormatter(format, cmd.OutOrStdout())

	if localFmt.IsJSON() {
		if err := printGenerateJSON(localFmt, mnemonics); err != nil {
			return err
		}
	} else if err := printGenerateText(localFmt, mnemonics); err != nil {
		return err
	}

	if ctx != nil && ctx.Log != nil {
		ctx.Log.Debug("generated %d group(s) of mnemonic shares", len(mnemonics))
	}
	output.Success(fmt.Sprintf("generated %d group(s) of mnemonic shares", len(mnemonics)))

	return nil
}

// shareEntry is one mnemonic share in the JSON rendering of generate's
// output.
type shareEntry struct {
	Group    int    `json:"group"`
	Index    int    `json:"index"`
	Mnemonic string `json:"mnemonic"`
}

func printGenerateJSON(f *output.Formatter, mnemonics [][]string) error {
	var entries []shareEntry
	for gi, group := range mnemonics {
		for mi, m := range group {
			entries = append(entries, shareEntry{Group: gi + 1, Index: mi + 1, Mnemonic: m})
		}
	}
	return f.Print(entries)
}

func printGenerateText(f *output.Formatter, mnemonics [][]string) error {
	for gi, group := range mnemonics {
		if err := f.Println(fmt.Sprintf("Group %d:", gi+1)); err != nil {
			return err
		}

		table := output.NewTable("#", "Mnemonic")
		table.SetNoHeader(true)
		for mi, m := range group {
			table.AddRow(strconv.Itoa(mi+1), m)
		}
		if err := table.Render(f.Writer()); err != nil {
			return err
		}

		if generateShowQR {
			for mi, m := range group {
				if err := output.RenderQR(f.Writer(), m, output.DefaultQRConfig()); err != nil {
					return fmt.Errorf("rendering QR code for share %d: %w", mi+1, err)
				}
			}
		}
	}
	return nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntVar(&generateGroupThreshold, "group-threshold", 1, "number of groups required to recover the secret")
	generateCmd.Flags().IntVar(&generateMemberThreshold, "member-threshold", 2, "number of member shares required within the group")
	generateCmd.Flags().IntVar(&generateMemberCount, "member-count", 3, "number of member shares to generate within the group")
	generateCmd.Flags().IntVar(&generateStrengthBytes, "strength", 16, "master secret length in bytes (must be even, >= 16)")
	generateCmd.Flags().BoolVar(&generateExtendable, "extendable", true, "leave the share-set identifier out of the master secret encryption salt (SLIP-39 extendable)")
	generateCmd.Flags().IntVar(&generateIterationExp, "iteration-exponent", 1, "PBKDF2 iteration exponent (0-15)")
	generateCmd.Flags().BoolVar(&generatePromptPass, "passphrase", false, "prompt for a passphrase to encrypt the master secret")
	generateCmd.Flags().BoolVar(&generateShowQR, "qr", false, "render each share mnemonic as a terminal QR code")
}
