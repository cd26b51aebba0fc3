package jar

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/dendrascience/jarpack/version"
)

// ManifestName is the archive manifest entry. Source copies of it are
// excluded and a fresh one is generated at the end of every run.
const ManifestName = "META-INF/MANIFEST.MF"

// ManifestEntry builds the synthetic manifest record. It flows through the
// same copier path as every other entry, so exclusion and clash handling
// apply to it uniformly.
func ManifestEntry(mainClass string, multiRelease bool) Entry {
	var b strings.Builder
	b.WriteString("Manifest-Version: 1.0\n")
	fmt.Fprintf(&b, "Created-By: jarpack %s\n", version.GetVersion())
	fmt.Fprintf(&b, "Build-Go: %s\n", buildPlatform(runtime.Version()))
	if multiRelease {
		b.WriteString("Multi-Release: true\n")
	}
	if mainClass != "" {
		fmt.Fprintf(&b, "Main-Class: %s\n", mungeMainClass(mainClass))
	}
	return Entry{Name: ManifestName, Content: strings.NewReader(b.String()), Generated: true}
}

// buildPlatform reduces a Go toolchain version to its numeric core:
// "go1.22.1" becomes "1.22.1" and "go1.23rc2" becomes "1.23". Anything with
// no numeric core (devel builds) is reported as-is.
func buildPlatform(v string) string {
	v = strings.TrimPrefix(v, "go")
	for i := 0; i < len(v); i++ {
		if (v[i] < '0' || v[i] > '9') && v[i] != '.' {
			if i == 0 {
				return v
			}
			return v[:i]
		}
	}
	return v
}

// mungeMainClass translates dashes to underscores, matching how compiled
// class names encode dashed namespace segments.
func mungeMainClass(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
