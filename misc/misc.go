// Package misc provides program identity: name, version and git hash of the
// build. Version and hash are normally stamped by the build system via
// ldflags and fall back to module build information when left empty.
package misc

import (
	"runtime/debug"
)

const appName = "cssg"

// Set by the build system:
//
//	-ldflags="-X cssg/misc.version=... -X cssg/misc.gitHash=..."
var (
	version string
	gitHash string
)

// GetAppName returns the short program name used for logger naming, report
// entries and temporary paths.
func GetAppName() string {
	return appName
}

// GetVersion returns the program version.
func GetVersion() string {
	if len(version) > 0 {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && len(bi.Main.Version) > 0 && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "development"
}

// GetGitHash returns the git revision the program was built from.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
