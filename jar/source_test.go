package jar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
)

func TestClassify(t *testing.T) {
	dir := t.TempDir()

	jarPath := filepath.Join(dir, "lib.jar")
	writeTestZip(t, jarPath, nil)
	zipPath := filepath.Join(dir, "lib.zip")
	writeTestZip(t, zipPath, nil)
	txtPath := filepath.Join(dir, "notes.txt")
	os.WriteFile(txtPath, []byte("hi"), 0644)

	tests := []struct {
		path string
		want ItemKind
	}{
		{dir, ItemDirectory},
		{jarPath, ItemArchive},
		{zipPath, ItemArchive},
		{txtPath, ItemUnknown},
		{filepath.Join(dir, "nope"), ItemMissing},
		{filepath.Join(dir, "nope.jar"), ItemMissing},
	}
	for _, tt := range tests {
		if got := Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestDirectoryWalker_RelativeNames(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, "com", "example"), 0755)
	os.WriteFile(filepath.Join(root, "top.txt"), []byte("top"), 0644)
	os.WriteFile(filepath.Join(root, "com", "example", "deep.txt"), []byte("deep"), 0644)

	var names []string
	emit := func(e Entry) error {
		if !e.IsDir {
			names = append(names, e.Name)
		}
		return nil
	}
	fail := func(name string, err error) {
		t.Errorf("unexpected per-entry failure for %s: %v", name, err)
	}

	if err := (DirectoryWalker{Root: root}).Walk(emit, fail); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	want := []string{"com/example/deep.txt", "top.txt"}
	if len(names) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(names), len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestDirectoryWalker_FollowsSymlinks(t *testing.T) {
	target := t.TempDir()
	os.WriteFile(filepath.Join(target, "linked.txt"), []byte("via link"), 0644)

	root := t.TempDir()
	if err := os.Symlink(target, filepath.Join(root, "ext")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	var names []string
	emit := func(e Entry) error {
		if !e.IsDir {
			names = append(names, e.Name)
		}
		return nil
	}
	fail := func(name string, err error) {
		t.Errorf("unexpected per-entry failure for %s: %v", name, err)
	}

	if err := (DirectoryWalker{Root: root}).Walk(emit, fail); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(names) != 1 || names[0] != "ext/linked.txt" {
		t.Errorf("expected [ext/linked.txt] through the symlink, got %v", names)
	}
}

func TestArchiveReader_StoredOrderAndMultiRelease(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "lib.jar")
	writeTestZip(t, archive, []testZipEntry{
		{"z/last.txt", "z"},
		{"a/first.txt", "a"},
		{"META-INF/versions/9/com/example/Feature.class", "bytecode"},
	})

	state := newRunState()
	var names []string
	emit := func(e Entry) error {
		names = append(names, e.Name)
		return nil
	}
	fail := func(name string, err error) {
		t.Errorf("unexpected per-entry failure for %s: %v", name, err)
	}

	if err := (ArchiveReader{Path: archive, State: state}).Stream(emit, fail); err != nil {
		t.Fatalf("Stream failed: %v", err)
	}

	want := []string{"z/last.txt", "a/first.txt", "META-INF/versions/9/com/example/Feature.class"}
	if len(names) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(names), len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entry %d = %q, want %q (stored order must be preserved)", i, names[i], want[i])
		}
	}
	if !state.MultiRelease() {
		t.Error("versioned-release entry did not set the multi-release flag")
	}
}

func TestArchiveReader_NoVersionedEntries(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "lib.jar")
	writeTestZip(t, archive, []testZipEntry{
		{"com/example/Main.class", "bytecode"},
	})

	state := newRunState()
	emit := func(e Entry) error { return nil }
	fail := func(name string, err error) {}

	if err := (ArchiveReader{Path: archive, State: state}).Stream(emit, fail); err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	if state.MultiRelease() {
		t.Error("multi-release flag set without a versioned-release entry")
	}
}

type testZipEntry struct {
	name string
	data string
}

func writeTestZip(t *testing.T, path string, entries []testZipEntry) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	w := zip.NewWriter(f)
	for _, e := range entries {
		dst, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("adding %s: %v", e.name, err)
		}
		if _, err := dst.Write([]byte(e.data)); err != nil {
			t.Fatalf("writing %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing zip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing %s: %v", path, err)
	}
}
