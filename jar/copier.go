package jar

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

type stagedItem struct {
	name  string
	isDir bool
}

// stagingArea holds entries on disk under a temporary root until the run
// packages them. It remembers first-write order so the published archive is
// deterministic for a given classpath, and keeps source modification times
// off to the side rather than trusting the staging filesystem.
type stagingArea struct {
	root     string
	order    []stagedItem
	files    map[string]struct{}
	dirs     map[string]struct{}
	modified map[string]time.Time
}

func newStagingArea(root string) *stagingArea {
	return &stagingArea{
		root:     root,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
		modified: make(map[string]time.Time),
	}
}

func (s *stagingArea) has(name string) bool {
	_, ok := s.files[name]
	return ok
}

func (s *stagingArea) fileCount() int {
	return len(s.files)
}

// items returns every staged entry in first-write order.
func (s *stagingArea) items() []stagedItem {
	return s.order
}

func (s *stagingArea) diskPath(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// ensureDir records a directory entry. Repeated records for the same
// directory are collapsed; directories carry no content to clash over.
func (s *stagingArea) ensureDir(name string) error {
	if _, ok := s.dirs[name]; ok {
		return nil
	}
	if err := os.MkdirAll(s.diskPath(name), 0755); err != nil {
		return err
	}
	s.dirs[name] = struct{}{}
	s.order = append(s.order, stagedItem{name: name, isDir: true})
	return nil
}

// stageNew writes a not-yet-present entry and returns the byte count staged.
func (s *stagingArea) stageNew(name string, content io.Reader, modified time.Time) (int64, error) {
	n, err := s.write(name, content)
	if err != nil {
		return n, err
	}
	s.files[name] = struct{}{}
	s.order = append(s.order, stagedItem{name: name})
	if !modified.IsZero() {
		s.modified[name] = modified
	}
	return n, nil
}

// overwrite replaces an already-staged entry in place, keeping its position
// in the output order.
func (s *stagingArea) overwrite(name string, content io.Reader, modified time.Time) (int64, error) {
	n, err := s.write(name, content)
	if err != nil {
		return n, err
	}
	if !modified.IsZero() {
		s.modified[name] = modified
	} else {
		delete(s.modified, name)
	}
	return n, nil
}

func (s *stagingArea) write(name string, content io.Reader) (int64, error) {
	p := s.diskPath(name)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return 0, err
	}
	f, err := os.Create(p)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func (s *stagingArea) read(name string) ([]byte, error) {
	return os.ReadFile(s.diskPath(name))
}

// rewrite replaces a staged entry's bytes after a content merge. The entry
// keeps its order position and modification time.
func (s *stagingArea) rewrite(name string, data []byte) error {
	return os.WriteFile(s.diskPath(name), data, 0644)
}

// Copier applies the per-entry decision logic: exclusion first, then
// directory creation, first write, or clash resolution. Any error it returns
// covers a single entry; the caller records it and moves on.
type Copier struct {
	staging      *stagingArea
	state        *RunState
	log          *log.Logger
	quietClashes bool
}

// validEntryName rejects entry names that would resolve outside the staging
// root on the host filesystem: absolute paths, Windows separator and drive
// characters, and any name whose cleaned form climbs above the root. Archive
// entry names come straight off the wire, so they are never trusted as
// disk paths.
func validEntryName(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") {
		return false
	}
	if strings.ContainsAny(name, `\:`) {
		return false
	}
	clean := path.Clean(name)
	return clean != ".." && !strings.HasPrefix(clean, "../")
}

func (c *Copier) Copy(e Entry) error {
	if !validEntryName(e.Name) {
		return fmt.Errorf("%w: %q", ErrUnsafeEntryName, e.Name)
	}
	if !e.Generated && Excluded(e.Name) {
		c.log.Debug("excluded entry", "entry", e.Name)
		return nil
	}
	if e.IsDir {
		return c.staging.ensureDir(e.Name)
	}
	if !c.staging.has(e.Name) {
		n, err := c.staging.stageNew(e.Name, e.Content, e.Modified)
		if err != nil {
			return err
		}
		if e.Name == PluginCacheName && n > OverwriteThreshold {
			c.state.closeLatch()
		}
		return nil
	}
	return c.resolve(e)
}

// resolve handles an entry whose name is already staged.
func (c *Copier) resolve(e Entry) error {
	strategy := StrategyFor(e.Name)
	if !c.quietClashes {
		c.log.Warn("duplicate entry", "entry", e.Name, "strategy", strategy)
	}
	switch strategy {
	case MergeStructuredData:
		existing, err := c.staging.read(e.Name)
		if err != nil {
			return err
		}
		incoming, err := io.ReadAll(e.Content)
		if err != nil {
			return err
		}
		merged, err := mergeStructuredMaps(existing, incoming)
		if err != nil {
			return err
		}
		return c.staging.rewrite(e.Name, merged)
	case ConcatenateLines:
		existing, err := c.staging.read(e.Name)
		if err != nil {
			return err
		}
		incoming, err := io.ReadAll(e.Content)
		if err != nil {
			return err
		}
		return c.staging.rewrite(e.Name, concatenateLines(existing, incoming))
	case SizeThresholdOverwrite:
		if !c.state.latchOpen {
			c.log.Debug("overwrite latch closed, keeping staged copy", "entry", e.Name)
			return nil
		}
		n, err := c.staging.overwrite(e.Name, e.Content, e.Modified)
		if err != nil {
			return err
		}
		if n > OverwriteThreshold {
			c.state.closeLatch()
		}
		return nil
	default:
		// FirstWins: staged copy stays, incoming copy is dropped unread.
		return nil
	}
}
