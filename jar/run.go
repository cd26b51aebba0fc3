package jar

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zip"
)

// ParseStrictBool parses a boolean configuration value. Only the exact
// strings "true" and "false" are accepted; anything else is a configuration
// error and must abort before any archive work starts.
func ParseStrictBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w, got %q", ErrMalformedBoolean, s)
}

// RunState is the per-invocation mutable state of one assembly run. It is
// owned by a single Run, mutated only by its one processing goroutine, and
// never shared between runs.
type RunState struct {
	errors       int
	multiRelease bool
	latchOpen    bool
}

func newRunState() *RunState {
	return &RunState{latchOpen: true}
}

func (s *RunState) recordError() {
	s.errors++
}

// closeLatch is one-way: once the overwrite latch closes it stays closed for
// the remainder of the run.
func (s *RunState) closeLatch() {
	s.latchOpen = false
}

// Errors returns the number of per-entry failures recorded so far.
func (s *RunState) Errors() int {
	return s.errors
}

// MultiRelease reports whether any source contributed a versioned-release
// entry.
func (s *RunState) MultiRelease() bool {
	return s.multiRelease
}

// Options configures one assembly run. Classpath order is the merge
// precedence order.
type Options struct {
	Classpath []string
	Output    string
	// Thin skips nested archives entirely, copying only directory sources
	// and the generated manifest.
	Thin      bool
	MainClass string
	// SuppressClashWarnings silences the per-duplicate strategy warnings.
	SuppressClashWarnings bool
	// Verbose adds per-item progress output.
	Verbose bool
}

// Report summarizes a completed run. A positive Errors count means the
// archive was still published but the run must be treated as failed.
type Report struct {
	Output       string
	Entries      int
	Errors       int
	MultiRelease bool
}

// Run assembles one output archive. Create a fresh Run per invocation.
type Run struct {
	opts  Options
	log   *log.Logger
	state *RunState
}

// NewRun prepares an assembly run. A nil logger discards all output.
func NewRun(opts Options, logger *log.Logger) *Run {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Run{opts: opts, log: logger}
}

// Execute runs the full pipeline: classify and drain every classpath item in
// order, append the manifest, then package and atomically publish the
// archive. The returned error covers only fatal setup and teardown failures;
// per-entry failures are counted in the report instead.
func (r *Run) Execute() (Report, error) {
	if len(r.opts.Classpath) == 0 {
		return Report{}, ErrEmptyClasspath
	}
	if r.opts.Output == "" {
		return Report{}, ErrNoOutputPath
	}

	r.state = newRunState()

	stageRoot, err := os.MkdirTemp("", "jarpack-stage-*")
	if err != nil {
		return Report{}, fmt.Errorf("creating staging area: %w", err)
	}
	defer os.RemoveAll(stageRoot)

	staging := newStagingArea(stageRoot)
	copier := &Copier{
		staging:      staging,
		state:        r.state,
		log:          r.log,
		quietClashes: r.opts.SuppressClashWarnings,
	}

	fail := func(name string, err error) {
		r.log.Error("entry failed", "entry", name, "err", err)
		r.state.recordError()
	}
	emit := func(e Entry) error {
		if err := copier.Copy(e); err != nil {
			fail(e.Name, err)
		}
		return nil
	}

	for _, item := range r.opts.Classpath {
		switch kind := Classify(item); kind {
		case ItemMissing:
			r.log.Warn("classpath item does not exist, skipping", "item", item)
		case ItemUnknown:
			if Excluded(path.Base(filepath.ToSlash(item))) {
				r.log.Debug("skipping excluded classpath item", "item", item)
				continue
			}
			r.log.Warn("skipping unrecognized classpath item", "item", item)
		case ItemDirectory:
			if r.opts.Verbose {
				r.log.Info("copying directory", "item", item)
			}
			if err := (DirectoryWalker{Root: item}).Walk(emit, fail); err != nil {
				fail(item, err)
			}
		case ItemArchive:
			if r.opts.Thin {
				r.log.Debug("thin build, skipping nested archive", "item", item)
				continue
			}
			if r.opts.Verbose {
				r.log.Info("copying archive", "item", item)
			}
			if err := (ArchiveReader{Path: item, State: r.state}).Stream(emit, fail); err != nil {
				fail(item, err)
			}
		}
	}

	emit(ManifestEntry(r.opts.MainClass, r.state.multiRelease))

	if err := r.publish(staging); err != nil {
		return Report{}, err
	}

	return Report{
		Output:       r.opts.Output,
		Entries:      staging.fileCount(),
		Errors:       r.state.Errors(),
		MultiRelease: r.state.MultiRelease(),
	}, nil
}

// publish packages the staged entries in first-write order and renames the
// archive over the destination. The temporary file lives next to the
// destination so the rename is atomic on the same filesystem.
func (r *Run) publish(staging *stagingArea) error {
	destDir := filepath.Dir(r.opts.Output)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("creating destination directory: %w", err)
	}
	tmp := filepath.Join(destDir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(r.opts.Output), uuid.NewString()))
	if err := r.writeArchive(staging, tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("packaging archive: %w", err)
	}
	if err := os.Rename(tmp, r.opts.Output); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publishing archive: %w", err)
	}
	return nil
}

func (r *Run) writeArchive(staging *stagingArea, dest string) error {
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	w := zip.NewWriter(f)
	for _, item := range staging.items() {
		if item.isDir {
			if _, err := w.CreateHeader(&zip.FileHeader{Name: item.name + "/"}); err != nil {
				f.Close()
				return err
			}
			continue
		}
		hdr := &zip.FileHeader{Name: item.name, Method: zip.Deflate}
		if mod, ok := staging.modified[item.name]; ok {
			hdr.Modified = mod
		}
		dst, err := w.CreateHeader(hdr)
		if err != nil {
			f.Close()
			return err
		}
		src, err := os.Open(staging.diskPath(item.name))
		if err != nil {
			f.Close()
			return err
		}
		_, err = io.Copy(dst, src)
		src.Close()
		if err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
