package output

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title       string
	interactive func() bool
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// withInteractive overrides terminal detection.
func withInteractive(fn func() bool) SpinnerOption {
	return func(c *spinnerConfig) {
		c.interactive = fn
	}
}

// RunWithSpinner runs action while a spinner is shown on the terminal.
// Without a TTY the action runs directly and the title is logged instead.
func RunWithSpinner(ctx context.Context, action func(context.Context) error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{
		title:       "Working...",
		interactive: IsTTY,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if !cfg.interactive() {
		Info(cfg.title)
		return action(ctx)
	}

	var actionErr error
	err := spinner.New().
		Title(cfg.title).
		Context(ctx).
		Action(func() {
			actionErr = action(ctx)
		}).
		Run()
	if err != nil {
		return fmt.Errorf("spinner error: %w", err)
	}

	return actionErr
}
