package wizard

import (
	"errors"
	"time"

	"github.com/quintans/faults"

	"github.com/qazuor/claude-code-config/logging"
)

// ErrCanceled reports that the user abandoned the wizard. The caller
// detects it with errors.Is and unwinds without persisting anything.
var ErrCanceled = errors.New("wizard canceled")

// RunResult is what a completed run hands back: the final accumulated
// context plus the per-step states. Callers persist values, not history.
type RunResult struct {
	Context Context
	States  []*State
}

// Engine drives a fixed sequence of steps. One engine serves one run.
type Engine struct {
	steps  []Step
	states []*State
}

func NewEngine(steps []Step) *Engine {
	states := make([]*State, len(steps))
	for i, s := range steps {
		meta := s.Meta
		meta.Index = i
		states[i] = &State{Meta: meta, Status: StatusPending}
	}
	if len(states) > 0 {
		states[0].Status = StatusCurrent
	}
	return &Engine{steps: steps, states: states}
}

// States exposes the engine's step states, mainly for progress display.
func (e *Engine) States() []*State {
	return e.states
}

// Run executes the steps in order, suspending at each interactive
// prompt. Navigation: next advances, back returns to the previous
// non-skipped step with that step's own last-entered value as the new
// default, cancel aborts the whole run with ErrCanceled. A validator
// rejection re-prompts the same step with the rejection message and the
// just-entered value; it is never surfaced as an error.
func (e *Engine) Run(ctx Context) (*RunResult, error) {
	logger := logging.GetLogger("wizard")
	if ctx == nil {
		ctx = Context{}
	}

	i := 0
	for i < len(e.steps) {
		step := e.steps[i]
		state := e.states[i]

		if step.Skip != nil && step.Skip(ctx) {
			state.Status = StatusSkipped
			logger.Debug().Str("step", state.Meta.ID).Msg("step skipped")
			i++
			continue
		}

		state.Status = StatusCurrent
		state.visits++

		in := Input{Visit: state.visits}
		if prev, ok := state.LastValue(); ok {
			in.Defaults = prev
		} else if step.Defaults != nil {
			in.Defaults = step.Defaults(ctx)
		}

		out, err := e.executeWithValidation(step, ctx, in)
		if err != nil {
			return nil, faults.Wrap(err)
		}

		state.History = append(state.History, HistoryEntry{
			Timestamp:     time.Now(),
			Value:         out.Value,
			ExitDirection: out.Navigation,
			VisitCount:    state.visits,
		})
		state.Value = out.Value
		state.IsModified = state.IsModified || out.WasModified

		switch out.Navigation {
		case Cancel:
			logger.Info().Str("step", state.Meta.ID).Msg("wizard canceled")
			return nil, ErrCanceled
		case Back:
			state.Status = StatusCompleted
			prev := e.previousVisited(i)
			if prev < 0 {
				// Nothing before the first step; retry it with the value
				// just entered as the default.
				continue
			}
			logger.Debug().Str("from", state.Meta.ID).Str("to", e.states[prev].Meta.ID).Msg("navigating back")
			i = prev
		default:
			state.Status = StatusCompleted
			delta := out.Delta
			if delta == nil {
				delta = map[string]any{state.Meta.ID: out.Value}
			}
			ctx = ctx.Merge(delta)
			logger.Debug().Str("step", state.Meta.ID).Int("visit", state.visits).Msg("step completed")
			i++
		}
	}

	return &RunResult{Context: ctx, States: e.states}, nil
}

// executeWithValidation loops the step's Execute until its value passes
// validation or the user navigates away. Back and cancel results bypass
// validation; only values meant to stick get checked.
func (e *Engine) executeWithValidation(step Step, ctx Context, in Input) (Outcome, error) {
	for {
		out, err := step.Execute(ctx, in)
		if err != nil {
			return Outcome{}, err
		}
		if out.Navigation != Next || step.Validate == nil {
			return out, nil
		}
		verr := step.Validate(out.Value, ctx)
		if verr == nil {
			return out, nil
		}
		in.Defaults = out.Value
		in.Rejection = verr.Error()
	}
}

// previousVisited finds the nearest earlier step that was not skipped.
func (e *Engine) previousVisited(i int) int {
	for j := i - 1; j >= 0; j-- {
		if e.states[j].Status != StatusSkipped {
			return j
		}
	}
	return -1
}
