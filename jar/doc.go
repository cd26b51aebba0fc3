// Package jar implements the jarpack assembly engine.
//
// The engine takes an ordered list of classpath items (directories and zip
// archives), copies every entry into a staging area, and publishes the result
// as a single ZIP-compatible archive. Classpath order is significant: the
// first source to introduce an entry name establishes the "existing" side of
// any later collision.
//
// Key Components:
//
// Classpath Classification:
//   - Classify probes each item and reports directory, archive, missing, or
//     unknown; missing and unknown items are skipped with a warning
//
// Entry Sources:
//   - DirectoryWalker produces entries from a directory tree, following
//     symbolic links and preserving source modification times
//   - ArchiveReader streams entries out of a zip archive in stored order
//     without extracting it to disk
//
// Collision Resolution:
//   - An ordered table of filename rules selects a strategy for every
//     duplicate name: structured-data map merge, service-file line
//     concatenation, size-gated overwrite for the log4j plugin cache, or the
//     first-wins default
//
// Publication:
//   - Entries are staged in first-write order, zipped once, and renamed over
//     the destination so the output appears atomically
//
// A Run owns all per-invocation state (error counter, multi-release flag,
// overwrite latch). Runs are single-threaded and independent; concurrent runs
// in one process must each use their own Run value.
package jar
