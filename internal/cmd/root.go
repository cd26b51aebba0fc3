package cmd

import (
	"github.com/dendrascience/jarpack/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the jarpack CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jarpack",
		Short: "jarpack - assemble classpath items into a single archive",
		Long: `jarpack assembles an ordered list of classpath items (directories and
nested archives) into one ZIP-compatible output archive.

Colliding entry names are resolved with content-aware merge strategies,
known-irrelevant metadata files are excluded, and a minimal manifest is
generated. The output is staged and then published atomically.

Use subcommands to perform different operations:
  - build: Assemble classpath items into one output archive
  - inspect: List or count the entries of an existing archive`,
		Version: version.GetFullVersion(),
	}

	groupAssembly := "assembly"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupAssembly,
		Title: "Assembly Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	buildCmd := NewBuildCmd()
	inspectCmd := NewInspectCmd()

	buildCmd.GroupID = groupAssembly
	inspectCmd.GroupID = groupUtilities

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(inspectCmd)

	return rootCmd
}
