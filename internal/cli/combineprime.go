package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cuedego/secreon/internal/classicio"
	secreonerrors "github.com/cuedego/secreon/pkg/errors"
	"github.com/cuedego/secreon/pkg/secreon"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var combinePrimeInFile string

var combinePrimeCmd = &cobra.Command{
	Use:   "combine-prime",
	Short: "Recover a secret from classic prime-field Shamir shares",
	Long: `combine-prime reads a share envelope JSON (produced by split-prime) from
--in (or stdin) and reconstructs the shared secret. When split-prime was run
with --kdf, the shared secret is the derived key, not the original input.`,
	RunE: runCombinePrime,
}

func runCombinePrime(cmd *cobra.Command, _ []string) error {
	var data []byte
	var err error
	if combinePrimeInFile == "" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		// #nosec G304 -- path is an explicit user-provided CLI flag
		data, err = os.ReadFile(combinePrimeInFile)
	}
	if err != nil {
		return err
	}

	shares, prime, meta, err := classicio.Unmarshal(data)
	if err != nil {
		return err
	}
	if len(shares) < meta.Threshold {
		return secreonerrors.New(secreonerrors.KindInsufficientShares, "not enough shares in envelope to meet threshold")
	}

	secretInt, err := secreon.CombinePrime(shares, prime)
	if err != nil {
		return err
	}

	secretBytes := secretInt.Bytes()
	if pad := meta.SecretByteLength - len(secretBytes); pad > 0 {
		padded := make([]byte, meta.SecretByteLength)
		copy(padded[pad:], secretBytes)
		secretBytes = padded
	}

	_, writeErr := cmd.OutOrStdout().Write(secretBytes)
	return writeErr
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(combinePrimeCmd)
	combinePrimeCmd.Flags().StringVar(&combinePrimeInFile, "in", "", "input file for the share envelope JSON (default: stdin)")
}
