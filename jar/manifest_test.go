package jar

import (
	"io"
	"strings"
	"testing"
)

func TestBuildPlatform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"go1.22.1", "1.22.1"},
		{"go1.25", "1.25"},
		{"go1.23rc2", "1.23"},
		{"go1.24beta1", "1.24"},
		{"devel +abc123", "devel +abc123"},
	}
	for _, tt := range tests {
		if got := buildPlatform(tt.in); got != tt.want {
			t.Errorf("buildPlatform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMungeMainClass(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"my-app.core", "my_app.core"},
		{"app.core", "app.core"},
		{"a-b-c.d-e", "a_b_c.d_e"},
	}
	for _, tt := range tests {
		if got := mungeMainClass(tt.in); got != tt.want {
			t.Errorf("mungeMainClass(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestManifestEntry(t *testing.T) {
	e := ManifestEntry("my-app.core", true)
	if e.Name != ManifestName {
		t.Errorf("manifest entry name = %q, want %q", e.Name, ManifestName)
	}
	data, err := io.ReadAll(e.Content)
	if err != nil {
		t.Fatalf("reading manifest content: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "Manifest-Version: 1.0\n") {
		t.Errorf("manifest missing version header:\n%s", content)
	}
	if !strings.Contains(content, "Created-By: jarpack ") {
		t.Errorf("manifest missing Created-By:\n%s", content)
	}
	if !strings.Contains(content, "Build-Go: ") {
		t.Errorf("manifest missing Build-Go:\n%s", content)
	}
	if !strings.Contains(content, "Multi-Release: true\n") {
		t.Errorf("manifest missing Multi-Release:\n%s", content)
	}
	if !strings.Contains(content, "Main-Class: my_app.core\n") {
		t.Errorf("manifest Main-Class not munged:\n%s", content)
	}
}

func TestManifestEntry_Minimal(t *testing.T) {
	e := ManifestEntry("", false)
	data, err := io.ReadAll(e.Content)
	if err != nil {
		t.Fatalf("reading manifest content: %v", err)
	}
	content := string(data)

	if strings.Contains(content, "Multi-Release") {
		t.Errorf("unexpected Multi-Release line:\n%s", content)
	}
	if strings.Contains(content, "Main-Class") {
		t.Errorf("unexpected Main-Class line:\n%s", content)
	}
}
