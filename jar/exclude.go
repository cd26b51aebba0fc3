package jar

import (
	"path"
	"strings"
)

// excludedNames lists entry names that are never copied into the output,
// matched against the full relative name. Build descriptors, license files,
// module descriptors, and the package index carry no runtime value in an
// assembled archive, and the manifest is always regenerated.
var excludedNames = map[string]struct{}{
	"project.clj":           {},
	"pom.xml":               {},
	"LICENSE":               {},
	"COPYRIGHT":             {},
	"NOTICE":                {},
	"module-info.class":     {},
	"META-INF/INDEX.LIST":   {},
	"META-INF/DEPENDENCIES": {},
	"META-INF/MANIFEST.MF":  {},
}

// signatureExts are the extensions of package signing metadata under
// META-INF/. Signatures computed over a source archive cannot survive
// reassembly, so they are always dropped.
var signatureExts = []string{".SF", ".RSA", ".DSA"}

// Excluded reports whether the named entry must be omitted from the output
// archive. Names use forward slashes relative to the archive root.
func Excluded(name string) bool {
	if _, ok := excludedNames[name]; ok {
		return true
	}
	if strings.HasPrefix(name, "META-INF/") {
		ext := path.Ext(name)
		for _, sig := range signatureExts {
			if strings.EqualFold(ext, sig) {
				return true
			}
		}
		// Dependency manifests embedded by build tools.
		if strings.HasPrefix(name, "META-INF/maven/") && strings.EqualFold(ext, ".pom") {
			return true
		}
	}
	return false
}
