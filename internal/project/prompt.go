package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/ffbun/cli/internal/output"
)

// ErrNotInteractive is returned when a prompt is needed but there is no
// terminal to show it on.
var ErrNotInteractive = errors.New("no terminal available for prompt")

// HuhPrompter asks questions with a huh select form.
type HuhPrompter struct {
	interactive func() bool
}

// NewHuhPrompter creates a prompter bound to the process terminal.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{interactive: output.IsInteractive}
}

// Select shows p and returns the chosen key. Without a terminal the default
// is returned, or ErrNotInteractive if p has none.
func (h *HuhPrompter) Select(ctx context.Context, p Prompt) (string, error) {
	if !h.interactive() {
		if p.Default == "" {
			return "", ErrNotInteractive
		}
		output.Debug("no terminal, using default", "choice", p.Default)
		return p.Default, nil
	}

	opts := make([]huh.Option[string], 0, len(p.Choices))
	for _, c := range p.Choices {
		opts = append(opts, huh.NewOption(c.Label, c.Key).Selected(c.Key == p.Default))
	}

	choice := p.Default
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(p.Title).
			Options(opts...).
			Value(&choice),
	))
	if err := form.RunWithContext(ctx); err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	return choice, nil
}
