package cmd

import (
	"fmt"

	"github.com/dendrascience/jarpack/jar"
	"github.com/klauspost/compress/zip"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates and returns the inspect subcommand for the jarpack
// CLI. It lists the entries of an existing archive.
func NewInspectCmd() *cobra.Command {
	var countOnly bool

	cmd := &cobra.Command{
		Use:   "inspect ARCHIVE",
		Short: "List the entries of an archive",
		Long: `List every entry of an existing archive with its uncompressed size.

Useful for checking what a build actually packaged, and for comparing the
entry sets of two assemblies.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			archive := args[0]
			if kind := jar.Classify(archive); kind != jar.ItemArchive {
				return fmt.Errorf("%s (%s): %w", archive, kind, jar.ErrNotAnArchive)
			}
			zr, err := zip.OpenReader(archive)
			if err != nil {
				return fmt.Errorf("opening %s: %w", archive, err)
			}
			defer zr.Close()

			if countOnly {
				fmt.Printf("Total entries: %d\n", len(zr.File))
				return nil
			}
			for _, f := range zr.File {
				fmt.Printf("%10d  %s\n", f.UncompressedSize64, f.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&countOnly, "count", false, "Print only the entry count")

	return cmd
}
