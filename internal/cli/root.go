// Package cli provides the command-line interface for colourfactory.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/colourfactory/internal/config"
	"github.com/jmylchreest/colourfactory/internal/version"
)

// rootOptions holds global flags and the state derived from them before any
// subcommand runs.
type rootOptions struct {
	verbose  bool
	quiet    bool
	logLevel string
	envFile  string

	cfg    config.Config
	logger hclog.Logger
}

// NewRootCmd builds the colourfactory command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{logger: hclog.NewNullLogger()}

	rootCmd := &cobra.Command{
		Use:   "colourfactory",
		Short: "Generate unreserved colours for province maps",
		Long: `colourfactory deterministically generates distinct RGB colours that are not
already used in a province definition list (definition.csv), keeping a minimum
contrast between neighbouring colours and staying inside per-channel limits.

The result is written as a text list and as a square BMP palette image.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "load defaults from this .env file instead of ./.env")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateCmd(opts))
	rootCmd.AddCommand(newReservedCmd(opts))

	return rootCmd
}

// setup loads configuration and builds the logger.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	var envFiles []string
	if o.envFile != "" {
		envFiles = append(envFiles, o.envFile)
	}

	cfg, err := config.Load(envFiles...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	o.cfg = cfg

	level := cfg.LogLevel
	switch {
	case o.logLevel != "":
		level = hclog.LevelFromString(o.logLevel)
		if level == hclog.NoLevel {
			return fmt.Errorf("invalid log level: %s", o.logLevel)
		}
	case o.verbose:
		level = hclog.Debug
	case o.quiet:
		level = hclog.Error
	}

	o.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "colourfactory",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	})

	return nil
}

// printf writes user-facing status unless --quiet is set.
func (o *rootOptions) printf(cmd *cobra.Command, format string, args ...any) {
	if o.quiet {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

// warnf writes a warning to the command's error stream, even when quiet.
func (o *rootOptions) warnf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "⚠ "+format, args...)
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(version.GetInfo())
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")

	return cmd
}
