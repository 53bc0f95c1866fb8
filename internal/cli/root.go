// Package cli implements the secreon command-line interface: generating and
// combining two-tier SLIP-39 mnemonic shares, and splitting/combining secrets
// under classic prime-field Shamir sharing.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cuedego/secreon/internal/config"
	"github.com/cuedego/secreon/internal/output"
	secreonerrors "github.com/cuedego/secreon/pkg/errors"
)

var (
	homeDir      string
	outputFormat string
	verbose      bool

	cfg       *config.Config
	logger    *config.Logger
	formatter *output.Formatter

	cmdCtx *CommandContext
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "secreon",
	Short: "Split and recombine secrets with Shamir's Secret Sharing",
	Long: `secreon splits secrets into recoverable shares and combines them back.

It implements classic prime-field Shamir's Secret Sharing for arbitrary byte
secrets, and SLIP-39 compatible two-tier mnemonic sharing for master secrets,
with optional passphrase-based encryption.

Example:
  secreon generate --group-threshold 1 --member-threshold 2 --member-count 3
  secreon combine --from-file shares.txt
  secreon split-prime --threshold 3 --shares 5 --secret-file secret.bin`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initGlobals(cmd)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		formatErr(err)
		return err
	}
	return nil
}

// formatErr prints the error with proper formatting.
func formatErr(err error) {
	format := output.FormatText
	if formatter != nil {
		format = formatter.Format()
	}
	if fmtErr := output.FormatError(os.Stderr, err, format); fmtErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v (formatting failed: %v)\n", err, fmtErr)
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	return secreonerrors.ExitCode(err)
}

// initGlobals initializes global configuration, logger, and formatter.
func initGlobals(cmd *cobra.Command) error {
	home := homeDir
	if home == "" {
		home = os.Getenv(config.EnvHome)
	}
	if home == "" {
		home = config.DefaultHome()
	}

	configPath := config.Path(home)
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = config.Defaults()
			cfg.Home = home
		} else {
			fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
			cfg = config.Defaults()
			cfg.Home = home
		}
	}

	config.ApplyEnvironment(cfg)

	for _, w := range cfg.Warnings {
		output.Warn(w)
	}

	if homeDir != "" {
		cfg.Home = homeDir
	}
	if verbose {
		cfg.Output.Verbose = true
		cfg.Logging.Level = "debug"
	}
	if outputFormat != "" && outputFormat != "auto" {
		cfg.Output.DefaultFormat = outputFormat
	}

	if strings.HasPrefix(cfg.Home, "~/") {
		if userHome, homeErr := os.UserHomeDir(); homeErr == nil {
			cfg.Home = userHome + cfg.Home[1:]
		}
	}

	logLevel := config.ParseLogLevel(cfg.Logging.Level)
	logger, err = config.NewLogger(logLevel, cfg.Logging.File)
	if err != nil {
		logger = config.NullLogger()
	}

	explicitFormat := output.ParseFormat(cfg.Output.DefaultFormat)
	detectedFormat := output.DetectFormat(os.Stdout, explicitFormat)
	formatter = output.NewFormatter(detectedFormat, os.Stdout)

	cmdCtx = NewCommandContext(cfg, logger, formatter)
	SetCmdContext(cmd, cmdCtx)

	return nil
}

// cleanup releases resources.
func cleanup() {
	if logger != nil {
		if closeErr := logger.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close logger: %v\n", closeErr)
		}
	}
}

// Config returns the global configuration.
func Config() *config.Config {
	return cfg
}

// Logger returns the global logger.
func Logger() *config.Logger {
	return logger
}

// Formatter returns the global output formatter.
func Formatter() *output.Formatter {
	return formatter
}

// Context returns the global command context.
func Context() *CommandContext {
	return cmdCtx
}

// Version information, set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display the version, build commit, and build date.`,
	Run: func(cmd *cobra.Command, _ []string) {
		if formatter != nil && formatter.Format() == output.FormatJSON {
			cmd.Println("{")
			cmd.Printf(`  "version": "%s",`+"\n", Version)
			cmd.Printf(`  "commit": "%s",`+"\n", GitCommit)
			cmd.Printf(`  "date": "%s"`+"\n", BuildDate)
			cmd.Println("}")
		} else {
			cmd.Printf("secreon version %s\n", Version)
			cmd.Printf("  commit: %s\n", GitCommit)
			cmd.Printf("  built:  %s\n", BuildDate)
		}
	},
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "secreon data directory (default: ~/.secreon)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "auto", "output format: text, json, auto")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}
