package wizard

// Prompter is the interactive surface steps gather input through. The
// engine never calls it; individual step Execute functions do, which
// keeps the state machine free of any terminal dependency and lets
// tests drive steps with a scripted implementation.
type Prompter interface {
	Input(label, defaultValue string) (string, error)
	Select(label string, options []string, defaultValue string) (string, error)
	MultiSelect(label string, options, defaultValues []string) ([]string, error)
	Confirm(label string, defaultValue bool) (bool, error)
	// Notify surfaces a validation rejection or informational line
	// before the next prompt.
	Notify(message string)
}
