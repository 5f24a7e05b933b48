package version

import (
	"bytes"
	"os/exec"
	"regexp"
)

// gitVersionRegex matches git version output like "git version 2.43.0".
var gitVersionRegex = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// DetectGit finds the git binary used to fetch project templates.
func DetectGit() GitBinaryInfo {
	path, err := exec.LookPath("git")
	if err != nil {
		return GitBinaryInfo{Message: "git binary not found in PATH"}
	}

	cmd := exec.Command(path, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return GitBinaryInfo{
			Path:    path,
			Found:   true,
			Message: "failed to get git version: " + err.Error(),
		}
	}

	version, err := extractVersion(out.String())
	if err != nil {
		return GitBinaryInfo{Path: path, Found: true, Message: err.Error()}
	}

	return GitBinaryInfo{Version: version, Path: path, Found: true}
}

// extractVersion extracts the version number from git version output.
func extractVersion(output string) (string, error) {
	// git version 2.43.0
	// git version 2.39.3 (Apple Git-146)
	match := gitVersionRegex.FindString(output)
	if match == "" {
		return "", &versionParseError{output: output}
	}
	return match, nil
}

// versionParseError indicates failure to parse git version output.
type versionParseError struct {
	output string
}

func (e *versionParseError) Error() string {
	return "failed to parse git version from output: " + e.output
}
