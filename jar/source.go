package jar

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
)

// versionsPrefix is the reserved path prefix for versioned-release entries.
// Seeing any entry under it marks the whole output as multi-release.
const versionsPrefix = "META-INF/versions/"

// archiveExts are the file extensions recognized as classpath archives.
var archiveExts = []string{".jar", ".zip"}

// ItemKind classifies one classpath item.
type ItemKind int

const (
	ItemMissing ItemKind = iota
	ItemDirectory
	ItemArchive
	ItemUnknown
)

func (k ItemKind) String() string {
	switch k {
	case ItemDirectory:
		return "directory"
	case ItemArchive:
		return "archive"
	case ItemUnknown:
		return "unknown"
	default:
		return "missing"
	}
}

// Classify probes the filesystem and reports what kind of classpath item the
// path is. Classification happens fresh on every call; nothing is cached
// between runs.
func Classify(item string) ItemKind {
	info, err := os.Stat(item)
	if err != nil {
		return ItemMissing
	}
	if info.IsDir() {
		return ItemDirectory
	}
	if info.Mode().IsRegular() {
		ext := filepath.Ext(item)
		for _, ae := range archiveExts {
			if strings.EqualFold(ext, ae) {
				return ItemArchive
			}
		}
	}
	return ItemUnknown
}

// Entry is one record produced by an entry source. Content is consumed
// exactly once by the copier and is only valid until the source moves on to
// the next entry. A zero Modified time means the source supplied none.
type Entry struct {
	Name     string
	Content  io.Reader
	Modified time.Time
	IsDir    bool
	// Generated marks a record synthesized by the run itself (the
	// manifest). The exclusion table names META-INF/MANIFEST.MF so that
	// source copies are dropped; the copier waives that check for generated
	// records, otherwise the run's own manifest could never be written.
	Generated bool
}

// entrySink receives entries from a source. A non-nil return aborts the
// source; per-entry copy failures are absorbed by the sink itself so one bad
// entry never stops the stream.
type entrySink func(Entry) error

// failFunc reports a non-fatal per-entry failure inside a source.
type failFunc func(name string, err error)

// DirectoryWalker emits one entry per regular file under Root, with names
// relative to Root, plus directory records for each subdirectory. Symbolic
// links are followed. Entries arrive in lexical order within each directory.
type DirectoryWalker struct {
	Root string
}

func (w DirectoryWalker) Walk(emit entrySink, fail failFunc) error {
	return w.walk(w.Root, "", emit, fail)
}

func (w DirectoryWalker) walk(dir, rel string, emit entrySink, fail failFunc) error {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		if rel == "" {
			return err
		}
		fail(rel, err)
		return nil
	}
	for _, d := range dirents {
		full := filepath.Join(dir, d.Name())
		name := path.Join(rel, d.Name())
		// Stat rather than d.Info so symlinks resolve to their targets.
		info, err := os.Stat(full)
		if err != nil {
			fail(name, err)
			continue
		}
		switch {
		case info.IsDir():
			if err := emit(Entry{Name: name, IsDir: true}); err != nil {
				return err
			}
			if err := w.walk(full, name, emit, fail); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			f, err := os.Open(full)
			if err != nil {
				fail(name, err)
				continue
			}
			err = emit(Entry{Name: name, Content: f, Modified: info.ModTime()})
			f.Close()
			if err != nil {
				return err
			}
		}
		// Sockets, devices, and other irregular files are skipped.
	}
	return nil
}

// ArchiveReader streams entries out of a zip archive in the archive's own
// stored order, without extracting to disk. It flags the run as
// multi-release when any entry lives under the versioned-release prefix.
type ArchiveReader struct {
	Path  string
	State *RunState
}

func (r ArchiveReader) Stream(emit entrySink, fail failFunc) error {
	zr, err := zip.OpenReader(r.Path)
	if err != nil {
		return err
	}
	defer zr.Close()
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, versionsPrefix) {
			r.State.multiRelease = true
		}
		if f.FileInfo().IsDir() {
			if err := emit(Entry{Name: strings.TrimSuffix(f.Name, "/"), IsDir: true}); err != nil {
				return err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			fail(f.Name, err)
			continue
		}
		err = emit(Entry{Name: f.Name, Content: rc, Modified: f.Modified})
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
