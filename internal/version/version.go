// Package version provides version information for the ffbun CLI.
package version

import (
	"fmt"
	"runtime"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`
}

// GitBinaryInfo describes the git installation used by init.
type GitBinaryInfo struct {
	// Version is the git version, e.g. "2.43.0".
	Version string `json:"version,omitempty"`

	// Path is the path to the git binary.
	Path string `json:"path,omitempty"`

	// Found indicates if git was found.
	Found bool `json:"found"`

	// Message explains why detection failed.
	Message string `json:"message,omitempty"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("ffbun CLI:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion)
}

// String returns a human-readable git binary info string.
func (g GitBinaryInfo) String() string {
	if !g.Found {
		return "  Binary Version: not found\n  Binary Path:    -"
	}
	if g.Version == "" {
		return fmt.Sprintf("  Binary Version: unknown (%s)\n  Binary Path:    %s", g.Message, g.Path)
	}
	return fmt.Sprintf("  Binary Version: %s\n  Binary Path:    %s", g.Version, g.Path)
}

// FullVersionString returns complete version information including git.
func FullVersionString(info Info, git GitBinaryInfo) string {
	return fmt.Sprintf("%s\n\nGit:\n%s", info.String(), git.String())
}
