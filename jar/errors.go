package jar

import "errors"

// Sentinel errors for package jar.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Configuration errors
	ErrMalformedBoolean = errors.New(`boolean flag must be exactly "true" or "false"`)
	ErrEmptyClasspath   = errors.New("classpath contains no items")
	ErrNoOutputPath     = errors.New("no output archive path configured")

	// Archive errors
	ErrNotAnArchive    = errors.New("not a recognized archive file")
	ErrUnsafeEntryName = errors.New("entry name escapes the archive root")
)
