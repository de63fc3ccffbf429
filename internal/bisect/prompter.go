package bisect

import (
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/zkat/electron-collider/internal/messages"
	"github.com/zkat/electron-collider/internal/terminal"
)

// Prompter asks the human operator for a verdict on one candidate run.
type Prompter interface {
	Confirm(title string) (bool, error)
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// HuhPrompter implements Prompter using charmbracelet/huh.
type HuhPrompter struct {
	isTerminal func() bool
}

// NewHuhPrompter creates a prompter using the default terminal check.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{isTerminal: terminal.IsInteractive}
}

// Confirm shows a yes/no form for title.
func (p *HuhPrompter) Confirm(title string) (bool, error) {
	checker := p.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if !checker() {
		return false, errors.New(messages.BisectRequiresTerminal)
	}
	value := true
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Value(&value),
	))
	if err := runFormFunc(form); err != nil {
		return false, err
	}
	return value, nil
}
