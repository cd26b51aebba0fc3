// Package cmd provides the command-line interface implementation for
// jarpack.
//
// This package contains all the subcommand implementations for the jarpack
// CLI tool. It uses the Cobra library for command structure and Fang for
// styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - build: Classpath assembly into a single output archive
//   - inspect: Archive entry listing and counting
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. The jar package does the actual
// assembly work; this package only translates flags, the JARPACK_DEBUG
// environment variable, and exit codes.
package cmd
