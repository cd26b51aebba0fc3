package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/dendrascience/jarpack/jar"
	"github.com/spf13/cobra"
)

// debugEnvVar toggles debug logging. When set, its value must be exactly
// "true" or "false"; anything else aborts before any archive work.
const debugEnvVar = "JARPACK_DEBUG"

// NewBuildCmd creates and returns the build subcommand for the jarpack CLI.
// It assembles the given classpath items, in order, into one output archive.
func NewBuildCmd() *cobra.Command {
	var (
		output          string
		mainClass       string
		thin            bool
		noClashWarnings bool
		verbose         bool
	)

	cmd := &cobra.Command{
		Use:   "build -o OUTPUT CLASSPATH...",
		Short: "Assemble classpath items into one archive",
		Long: `Assemble the given classpath items, in order, into a single output archive.

Each item is a directory or a nested archive (.jar or .zip). Items are
consumed strictly in the order given; when two items contribute the same
entry name, the earlier item establishes the kept content and the collision
is resolved by a name-driven strategy (structured-data merge, service-file
concatenation, size-gated overwrite for the log4j plugin cache, or
first-wins).

Missing and unrecognized items are skipped with a warning. A failure on a
single entry is reported and counted but never aborts the build; the archive
is still published and the command exits non-zero.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, err := debugEnabled()
			if err != nil {
				return err
			}
			logger := newLogger(debug)

			report, err := jar.NewRun(jar.Options{
				Classpath:             args,
				Output:                output,
				Thin:                  thin,
				MainClass:             mainClass,
				SuppressClashWarnings: noClashWarnings,
				Verbose:               verbose,
			}, logger).Execute()
			if err != nil {
				logger.Error("build aborted", "err", err)
				return err
			}
			if report.Errors > 0 {
				logger.Error("build completed with errors", "errors", report.Errors, "output", report.Output)
				return fmt.Errorf("build completed with %d errors", report.Errors)
			}
			if verbose {
				logger.Info("archive published", "output", report.Output, "entries", report.Entries)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Path of the output archive (required)")
	cmd.Flags().StringVarP(&mainClass, "main-class", "m", "", "Main-Class manifest value (dashes become underscores)")
	cmd.Flags().BoolVar(&thin, "thin", false, "Skip nested archives, copying only directory sources")
	cmd.Flags().BoolVar(&noClashWarnings, "no-clash-warnings", false, "Suppress per-duplicate strategy warnings")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func debugEnabled() (bool, error) {
	raw, ok := os.LookupEnv(debugEnvVar)
	if !ok {
		return false, nil
	}
	v, err := jar.ParseStrictBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", debugEnvVar, err)
	}
	return v, nil
}

func newLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "jarpack",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
