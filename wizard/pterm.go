package wizard

import (
	"github.com/pterm/pterm"
	"github.com/quintans/faults"
)

// PtermPrompter implements Prompter with pterm's interactive components.
type PtermPrompter struct{}

func NewPtermPrompter() *PtermPrompter {
	return &PtermPrompter{}
}

func (p *PtermPrompter) Input(label, defaultValue string) (string, error) {
	v, err := pterm.DefaultInteractiveTextInput.
		WithDefaultValue(defaultValue).
		Show(label)
	if err != nil {
		return "", faults.Wrap(err)
	}
	return v, nil
}

func (p *PtermPrompter) Select(label string, options []string, defaultValue string) (string, error) {
	v, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultOption(defaultValue).
		Show(label)
	if err != nil {
		return "", faults.Wrap(err)
	}
	return v, nil
}

func (p *PtermPrompter) MultiSelect(label string, options, defaultValues []string) ([]string, error) {
	v, err := pterm.DefaultInteractiveMultiselect.
		WithOptions(options).
		WithDefaultOptions(defaultValues).
		Show(label)
	if err != nil {
		return nil, faults.Wrap(err)
	}
	return v, nil
}

func (p *PtermPrompter) Confirm(label string, defaultValue bool) (bool, error) {
	v, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(defaultValue).
		Show(label)
	if err != nil {
		return false, faults.Wrap(err)
	}
	return v, nil
}

func (p *PtermPrompter) Notify(message string) {
	pterm.Warning.Println(message)
}
