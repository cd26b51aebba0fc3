// Package version provides version information and build metadata for
// jarpack.
//
// Version information comes from two sources, in order of preference:
//   - Compile-time variables (Version, Commit, Date) set via -ldflags
//   - Runtime build info from debug.ReadBuildInfo()
//
// with development defaults when neither is available. The reported version
// also feeds the Created-By field of generated archive manifests, so release
// builds should always inject it:
//
//	-ldflags "-X github.com/dendrascience/jarpack/version.Version=v1.0.0"
package version
