package project

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ffbun/cli/internal/config"
	"github.com/ffbun/cli/internal/output"
)

// Choice is one selectable prompt option.
type Choice struct {
	// Key is returned by Select when the choice is picked.
	Key string

	// Label is shown to the user.
	Label string
}

// Prompt describes a single-choice question.
type Prompt struct {
	Title   string
	Choices []Choice

	// Default is the preselected key. Prompters that cannot ask return it.
	Default string
}

// Prompter asks the user to pick one of several choices.
type Prompter interface {
	Select(ctx context.Context, p Prompt) (string, error)
}

// Runner runs an external command.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// Fetcher downloads a template variant into dest. dest must not exist.
type Fetcher interface {
	Fetch(ctx context.Context, variant config.Variant, dest string) error
}

// ExecRunner runs commands with os/exec. Combined output is kept and
// attached to the returned error.
type ExecRunner struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// Run executes name with args and waits for it to finish.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	output.Debug("running command", "cmd", name, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(out.String())
		if msg == "" {
			return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
		}
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
	}
	return nil
}

// GitFetcher fetches template variants with git clone.
type GitFetcher struct {
	Runner     Runner
	Repository string
}

// Fetch clones the repository into dest. A variant without a branch clones
// the default branch.
func (f GitFetcher) Fetch(ctx context.Context, variant config.Variant, dest string) error {
	return f.Runner.Run(ctx, "git", CloneArgs(f.Repository, variant.Branch, dest)...)
}

// CloneArgs returns the git arguments that clone repo into dest.
func CloneArgs(repo, branch, dest string) []string {
	args := []string{"clone"}
	if branch != "" {
		args = append(args, "-b", branch)
	}
	return append(args, repo, dest)
}
