// Package wizard sequences interactive configuration steps: forward and
// back navigation, per-step history, validation retries and skip
// predicates. The engine owns step state for the duration of one run and
// never talks to a terminal itself; steps gather input through whatever
// Prompter the caller injects.
package wizard

import "time"

// Direction is the outcome of one step execution.
type Direction string

const (
	Next   Direction = "next"
	Back   Direction = "back"
	Cancel Direction = "cancel"
)

// Status tracks a step through the run. A completed step re-entered via
// back navigation becomes current again with its value and history kept.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCurrent   Status = "current"
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
)

// Context is the accumulated answers a step may read. It is immutable
// from a step's point of view: each step sees only prior steps'
// finalized values and returns its own contribution as a delta for the
// engine to merge.
type Context map[string]any

// Merge returns a copy of the context with the delta layered on top.
func (c Context) Merge(delta map[string]any) Context {
	next := make(Context, len(c)+len(delta))
	for k, v := range c {
		next[k] = v
	}
	for k, v := range delta {
		next[k] = v
	}
	return next
}

// Meta describes a step independent of its behavior.
type Meta struct {
	ID          string
	Name        string
	Description string
	Required    bool
	Index       int
	DependsOn   []string
}

// Input carries what a step's Execute gets to work with: the suggested
// default (either computed or the step's own previously entered value)
// and, on a validation retry, the rejection message to show.
type Input struct {
	Defaults  any
	Rejection string
	Visit     int
}

// Outcome is what a step's Execute returns. Delta is merged into the
// context when the step completes forward; when nil the engine merges
// {Meta.ID: Value}.
type Outcome struct {
	Value       any
	Delta       map[string]any
	Navigation  Direction
	WasModified bool
}

// Step is one unit of user interaction.
//
// Defaults derives a suggestion purely from accumulated context, without
// prompting. Execute performs the interaction. Validate, when set,
// returns a human-readable rejection as an error; the engine re-prompts
// against it and never propagates it. Skip, when set and true, bypasses
// the step entirely: no Execute call, no history entry.
type Step struct {
	Meta     Meta
	Defaults func(ctx Context) any
	Execute  func(ctx Context, in Input) (Outcome, error)
	Validate func(value any, ctx Context) error
	Skip     func(ctx Context) bool
}

// HistoryEntry is one recorded visit of a step. The log is append-only;
// revisits add entries, they never replace.
type HistoryEntry struct {
	Timestamp     time.Time
	Value         any
	ExitDirection Direction
	VisitCount    int
}

// State is the engine-owned record of one step during a run.
type State struct {
	Meta       Meta
	Status     Status
	Value      any
	History    []HistoryEntry
	IsModified bool
	visits     int
}

// LastValue returns the most recently recorded value and whether one
// exists.
func (s *State) LastValue() (any, bool) {
	if len(s.History) == 0 {
		return nil, false
	}
	return s.History[len(s.History)-1].Value, true
}
