package wizard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted builds a step whose Execute pops pre-baked outcomes and
// records what it was invoked with.
type scripted struct {
	outcomes []Outcome
	inputs   []Input
	contexts []Context
}

func (s *scripted) step(id string) Step {
	return Step{
		Meta: Meta{ID: id, Name: id},
		Execute: func(ctx Context, in Input) (Outcome, error) {
			s.inputs = append(s.inputs, in)
			s.contexts = append(s.contexts, ctx)
			out := s.outcomes[0]
			s.outcomes = s.outcomes[1:]
			return out, nil
		},
	}
}

func next(v any) Outcome {
	return Outcome{Value: v, Navigation: Next}
}

func TestRunStraightThrough(t *testing.T) {
	a := &scripted{outcomes: []Outcome{next("va")}}
	b := &scripted{outcomes: []Outcome{next("vb")}}

	engine := NewEngine([]Step{a.step("a"), b.step("b")})
	res, err := engine.Run(nil)
	require.NoError(t, err)

	assert.Equal(t, "va", res.Context["a"])
	assert.Equal(t, "vb", res.Context["b"])
	for _, st := range res.States {
		assert.Equal(t, StatusCompleted, st.Status)
		assert.Len(t, st.History, 1)
	}

	// b saw a's finalized value, a saw an empty context
	assert.Empty(t, a.contexts[0])
	assert.Equal(t, "va", b.contexts[0]["a"])
}

func TestRunBackNavigation(t *testing.T) {
	a := &scripted{outcomes: []Outcome{next("va")}}
	b := &scripted{outcomes: []Outcome{next("vb1"), next("vb2")}}
	c := &scripted{outcomes: []Outcome{
		{Value: "vc-draft", Navigation: Back},
		next("vc"),
	}}

	engine := NewEngine([]Step{a.step("a"), b.step("b"), c.step("c")})
	res, err := engine.Run(nil)
	require.NoError(t, err)

	// b was revisited with its own last-entered value as the default and
	// its history grew, it was not replaced
	require.Len(t, b.inputs, 2)
	assert.Equal(t, "vb1", b.inputs[1].Defaults)
	bState := res.States[1]
	require.Len(t, bState.History, 2)
	assert.Equal(t, "vb1", bState.History[0].Value)
	assert.Equal(t, "vb2", bState.History[1].Value)

	// c's back exit was recorded, and its retry got the just-entered
	// draft back as the default
	cState := res.States[2]
	require.Len(t, cState.History, 2)
	assert.Equal(t, Back, cState.History[0].ExitDirection)
	assert.Equal(t, "vc-draft", c.inputs[1].Defaults)

	assert.Equal(t, "vb2", res.Context["b"])
	assert.Equal(t, "vc", res.Context["c"])
}

func TestRunBackAtFirstStepRetries(t *testing.T) {
	a := &scripted{outcomes: []Outcome{
		{Value: "draft", Navigation: Back},
		next("final"),
	}}

	engine := NewEngine([]Step{a.step("a")})
	res, err := engine.Run(nil)
	require.NoError(t, err)

	require.Len(t, a.inputs, 2)
	assert.Equal(t, "draft", a.inputs[1].Defaults)
	assert.Equal(t, "final", res.Context["a"])
}

func TestRunValidationRetry(t *testing.T) {
	a := &scripted{outcomes: []Outcome{next(""), next("ok")}}
	step := a.step("a")
	step.Validate = func(value any, _ Context) error {
		if value == "" {
			return errors.New("value must not be empty")
		}
		return nil
	}

	engine := NewEngine([]Step{step})
	res, err := engine.Run(nil)
	require.NoError(t, err)

	// the retry carried the rejection message and the rejected value
	require.Len(t, a.inputs, 2)
	assert.Equal(t, "value must not be empty", a.inputs[1].Rejection)
	assert.Equal(t, "", a.inputs[1].Defaults)

	// only the accepted value made history
	require.Len(t, res.States[0].History, 1)
	assert.Equal(t, "ok", res.Context["a"])
}

func TestRunSkipCondition(t *testing.T) {
	a := &scripted{outcomes: []Outcome{next("va")}}
	b := &scripted{}
	c := &scripted{outcomes: []Outcome{next("vc")}}

	skipped := b.step("b")
	skipped.Skip = func(Context) bool { return true }

	engine := NewEngine([]Step{a.step("a"), skipped, c.step("c")})
	res, err := engine.Run(nil)
	require.NoError(t, err)

	bState := res.States[1]
	assert.Equal(t, StatusSkipped, bState.Status)
	assert.Empty(t, bState.History)
	assert.Empty(t, b.inputs)
	assert.NotContains(t, res.Context, "b")
}

func TestRunBackSkipsSkippedSteps(t *testing.T) {
	a := &scripted{outcomes: []Outcome{next("va1"), next("va2")}}
	b := &scripted{}
	c := &scripted{outcomes: []Outcome{
		{Value: nil, Navigation: Back},
		next("vc"),
	}}

	skipped := b.step("b")
	skipped.Skip = func(Context) bool { return true }

	engine := NewEngine([]Step{a.step("a"), skipped, c.step("c")})
	res, err := engine.Run(nil)
	require.NoError(t, err)

	// back from c lands on a, not on the skipped b
	require.Len(t, a.inputs, 2)
	assert.Equal(t, "va1", a.inputs[1].Defaults)
	assert.Equal(t, "va2", res.Context["a"])
}

func TestRunCancel(t *testing.T) {
	a := &scripted{outcomes: []Outcome{next("va")}}
	b := &scripted{outcomes: []Outcome{{Value: nil, Navigation: Cancel}}}

	engine := NewEngine([]Step{a.step("a"), b.step("b")})
	_, err := engine.Run(nil)
	assert.ErrorIs(t, err, ErrCanceled)
}

func TestRunDefaultsComputedOnFirstVisit(t *testing.T) {
	a := &scripted{outcomes: []Outcome{next("va")}}
	step := a.step("a")
	step.Defaults = func(Context) any { return "suggested" }

	engine := NewEngine([]Step{step})
	_, err := engine.Run(Context{"seed": true})
	require.NoError(t, err)

	require.Len(t, a.inputs, 1)
	assert.Equal(t, "suggested", a.inputs[0].Defaults)
}

func TestRunDeltaMerge(t *testing.T) {
	a := &scripted{outcomes: []Outcome{{
		Value:      "x",
		Delta:      map[string]any{"project": map[string]any{"name": "x"}},
		Navigation: Next,
	}}}

	engine := NewEngine([]Step{a.step("a")})
	res, err := engine.Run(nil)
	require.NoError(t, err)

	project, ok := res.Context["project"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "x", project["name"])
	assert.NotContains(t, res.Context, "a")
}

func TestRunExecuteErrorPropagates(t *testing.T) {
	boom := errors.New("terminal went away")
	step := Step{
		Meta: Meta{ID: "a"},
		Execute: func(Context, Input) (Outcome, error) {
			return Outcome{}, boom
		},
	}

	engine := NewEngine([]Step{step})
	_, err := engine.Run(nil)
	assert.ErrorIs(t, err, boom)
}

func TestInitialStatuses(t *testing.T) {
	engine := NewEngine([]Step{
		{Meta: Meta{ID: "a"}},
		{Meta: Meta{ID: "b"}},
	})

	states := engine.States()
	assert.Equal(t, StatusCurrent, states[0].Status)
	assert.Equal(t, StatusPending, states[1].Status)
	assert.Equal(t, 0, states[0].Meta.Index)
	assert.Equal(t, 1, states[1].Meta.Index)
}
