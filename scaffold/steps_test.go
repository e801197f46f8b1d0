package scaffold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qazuor/claude-code-config/wizard"
)

// fakePrompter replays canned answers, one per prompt call.
type fakePrompter struct {
	inputs   []string
	selects  []string
	multis   [][]string
	confirms []bool
	notes    []string
}

func (f *fakePrompter) Input(_, _ string) (string, error) {
	v := f.inputs[0]
	f.inputs = f.inputs[1:]
	return v, nil
}

func (f *fakePrompter) Select(_ string, _ []string, _ string) (string, error) {
	v := f.selects[0]
	f.selects = f.selects[1:]
	return v, nil
}

func (f *fakePrompter) MultiSelect(_ string, _, _ []string) ([]string, error) {
	v := f.multis[0]
	f.multis = f.multis[1:]
	return v, nil
}

func (f *fakePrompter) Confirm(_ string, _ bool) (bool, error) {
	v := f.confirms[0]
	f.confirms = f.confirms[1:]
	return v, nil
}

func (f *fakePrompter) Notify(message string) {
	f.notes = append(f.notes, message)
}

func TestBuiltinStepsDetectedNodeProject(t *testing.T) {
	p := &fakePrompter{
		inputs:   []string{"My App", "2"},
		selects:  []string{"space"},
		multis:   [][]string{{"agents", "docs"}},
		confirms: []bool{true},
	}

	det := Detection{Name: "my-app", Type: "node", PackageManager: "pnpm"}
	engine := wizard.NewEngine(BuiltinSteps(p))
	res, err := engine.Run(wizard.Context(det.Context()))
	require.NoError(t, err)

	project, ok := res.Context["project"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "My App", project["name"])
	// unambiguous detection skips the type question
	assert.Equal(t, "node", project["type"])
	assert.Equal(t, "pnpm", project["packageManager"])
	assert.Equal(t, wizard.StatusSkipped, res.States[1].Status)

	assert.Equal(t, []string{"agents", "docs"}, res.Context["modules"])

	style, ok := res.Context["style"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "space", style["indentStyle"])
	assert.Equal(t, "2", style["indentSize"])

	require.NotEmpty(t, p.notes)
	assert.Contains(t, p.notes[0], "My App")
}

func TestBuiltinStepsUnknownTypeIsAsked(t *testing.T) {
	p := &fakePrompter{
		inputs:   []string{"tool", "4"},
		selects:  []string{"go", "tab"},
		multis:   [][]string{{"commands"}},
		confirms: []bool{true},
	}

	det := Detection{Name: "tool", Type: "unknown"}
	engine := wizard.NewEngine(BuiltinSteps(p))
	res, err := engine.Run(wizard.Context(det.Context()))
	require.NoError(t, err)

	project := res.Context["project"].(map[string]any)
	assert.Equal(t, "go", project["type"])
	assert.Equal(t, wizard.StatusCompleted, res.States[1].Status)
}

func TestBuiltinStepsRejectedConfirmationWalksBack(t *testing.T) {
	p := &fakePrompter{
		inputs:   []string{"app", "2", "4"},
		selects:  []string{"go", "space", "tab"},
		multis:   [][]string{{"agents"}},
		confirms: []bool{false, true},
	}

	det := Detection{Name: "app", Type: "unknown"}
	engine := wizard.NewEngine(BuiltinSteps(p))
	res, err := engine.Run(wizard.Context(det.Context()))
	require.NoError(t, err)

	// first confirmation was declined, walking back to code style, then
	// forward again through a second confirmation
	style := res.Context["style"].(map[string]any)
	assert.Equal(t, "tab", style["indentStyle"])
	require.Len(t, res.States[3].History, 2)

	confirm := res.States[4]
	require.Len(t, confirm.History, 2)
	assert.Equal(t, wizard.Back, confirm.History[0].ExitDirection)
}

func TestBuiltinStepsNameValidation(t *testing.T) {
	p := &fakePrompter{
		inputs:   []string{"   ", "real-name", "2"},
		selects:  []string{"go", "space"},
		multis:   [][]string{{"agents"}},
		confirms: []bool{true},
	}

	det := Detection{Name: "", Type: "unknown"}
	engine := wizard.NewEngine(BuiltinSteps(p))
	res, err := engine.Run(wizard.Context(det.Context()))
	require.NoError(t, err)

	project := res.Context["project"].(map[string]any)
	assert.Equal(t, "real-name", project["name"])
	// the rejection was surfaced through the prompter
	require.NotEmpty(t, p.notes)
	assert.Contains(t, p.notes[0], "must not be empty")
}
