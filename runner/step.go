package runner

import (
	"context"
	"fmt"

	"github.com/c2fo/fixture"
)

// Action mutates remote state.
type Action func(ctx context.Context, sess *fixture.Session) error

// Observe reads remote state after the action.
type Observe func(ctx context.Context, sess *fixture.Session) (any, error)

// Expect checks an observation. Failures are *fixture.AssertionError.
type Expect func(observed any) error

// Step is one named unit of a run: an action, an observation of the resulting state, and a predicate over it.
// Any of the three may be nil, but a step needs an Action or an Observe.
type Step struct {
	Name string
	// Requires names earlier steps this one depends on. It is only consulted by the SkipDependents policy.
	Requires []string
	Action   Action
	Observe  Observe
	Expect   Expect
}

// Policy decides what happens to the remaining steps after one fails.
type Policy int

const (
	// ContinueOnFailure runs every step regardless of earlier failures.
	ContinueOnFailure Policy = iota
	// StopOnFailure skips every step after the first failure.
	StopOnFailure
	// SkipDependents skips steps whose Requires include a step that failed or was skipped.
	SkipDependents
)

func (p Policy) String() string {
	switch p {
	case ContinueOnFailure:
		return "continue-on-failure"
	case StopOnFailure:
		return "stop-on-failure"
	case SkipDependents:
		return "skip-dependents"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Validate checks a plan before any container is started. Names must be unique and non-empty, every step must do
// something, and Requires may only name steps declared earlier. Errors wrap fixture.ErrInvalidPlan.
func Validate(steps []Step) error {
	seen := make(map[string]struct{}, len(steps))
	for i, st := range steps {
		if st.Name == "" {
			return fmt.Errorf("step %d has no name: %w", i, fixture.ErrInvalidPlan)
		}
		if _, ok := seen[st.Name]; ok {
			return fmt.Errorf("step %q is declared twice: %w", st.Name, fixture.ErrInvalidPlan)
		}
		if st.Action == nil && st.Observe == nil {
			return fmt.Errorf("step %q has neither action nor observation: %w", st.Name, fixture.ErrInvalidPlan)
		}
		for _, req := range st.Requires {
			if _, ok := seen[req]; !ok {
				return fmt.Errorf("step %q requires %q which is not declared before it: %w",
					st.Name, req, fixture.ErrInvalidPlan)
			}
		}
		seen[st.Name] = struct{}{}
	}
	return nil
}
