// Package main provides the jarpack command-line interface.
//
// jarpack assembles classpath-style inputs (directories and nested archives)
// into a single ZIP-compatible output archive. Colliding entry names are
// resolved with content-aware merge strategies, known-irrelevant metadata
// files are excluded, and a minimal manifest is generated.
//
// The main binary supports multiple subcommands:
//   - build: Assemble classpath items into one output archive
//   - inspect: List or count the entries of an existing archive
package main
