package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cuedego/secreon/internal/classicio"
	"github.com/cuedego/secreon/pkg/secreon"
	secreonerrors "github.com/cuedego/secreon/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	splitPrimeThreshold  int
	splitPrimeShareCount int
	splitPrimeSecretFile string
	splitPrimeOutFile    string
	splitPrimeKDF        string
)

var splitPrimeCmd = &cobra.Command{
	Use:   "split-prime",
	Short: "Split a secret into classic prime-field Shamir shares",
	Long: `split-prime reads a secret from --secret-file and splits it into
--shares shares, --threshold of which are needed to recover it, over a large
prime field. The result is written as a JSON envelope to --out (or stdout).`,
	RunE: runSplitPrime,
}

func runSplitPrime(cmd *cobra.Command, _ []string) error {
	if splitPrimeSecretFile == "" {
		return secreonerrors.New(secreonerrors.KindInvalidArgument, "--secret-file is required")
	}

	// #nosec G304 -- path is an explicit user-provided CLI flag
	secret, err := os.ReadFile(splitPrimeSecretFile)
	if err != nil {
		return err
	}

	kdf := secreon.KDFSpec{Algorithm: splitPrimeKDF}

	result, err := secreon.SplitPrime(nil, secret, splitPrimeThreshold, splitPrimeShareCount, nil, kdf)
	if err != nil {
		return err
	}

	data, err := classicio.Marshal(result)
	if err != nil {
		return err
	}

	if splitPrimeOutFile == "" {
		outln(cmd.OutOrStdout(), string(data))
		return nil
	}
	return os.WriteFile(splitPrimeOutFile, data, 0o600)
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(splitPrimeCmd)
	splitPrimeCmd.Flags().IntVar(&splitPrimeThreshold, "threshold", 3, "number of shares required to recover the secret")
	splitPrimeCmd.Flags().IntVar(&splitPrimeShareCount, "shares", 5, "number of shares to generate")
	splitPrimeCmd.Flags().StringVar(&splitPrimeSecretFile, "secret-file", "", "path to the secret to split")
	splitPrimeCmd.Flags().StringVar(&splitPrimeOutFile, "out", "", "output file for the share envelope JSON (default: stdout)")
	splitPrimeCmd.Flags().StringVar(&splitPrimeKDF, "kdf", "", "key derivation applied to the secret before splitting: \"\", sha256, pbkdf2")
}
