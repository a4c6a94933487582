package runner

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/c2fo/fixture"
)

// RunState is the state of a run.
type RunState int

const (
	// NotStarted means Run has not begun provisioning.
	NotStarted RunState = iota
	// Provisioning means the container is being started and waited on.
	Provisioning
	// Ready means the store answered and no step has run yet.
	Ready
	// Running means steps are executing.
	Running
	// TornDown is the terminal state of a run that provisioned successfully.
	TornDown
	// Aborted is the terminal state of a run whose provisioning failed.
	Aborted
)

func (s RunState) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Provisioning:
		return "provisioning"
	case Ready:
		return "ready"
	case Running:
		return "running"
	case TornDown:
		return "torn down"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("RunState(%d)", int(s))
	}
}

// Status is the outcome of a single step.
type Status int

const (
	// Passed means the step's action succeeded and its expectation held.
	Passed Status = iota + 1
	// Failed means the step's action or observation errored, or its expectation did not hold.
	Failed
	// Skipped means a step it requires did not pass.
	Skipped
)

func (s Status) String() string {
	switch s {
	case Passed:
		return "PASS"
	case Failed:
		return "FAIL"
	case Skipped:
		return "SKIP"
	default:
		return "UNKNOWN"
	}
}

// FailureKind distinguishes a rejected remote call from an unmet expectation.
type FailureKind int

const (
	// NoFailure is the kind of a step that did not fail.
	NoFailure FailureKind = iota
	// OperationFailure means the backend rejected a call.
	OperationFailure
	// AssertionFailure means the observed value did not meet the expectation.
	AssertionFailure
)

func (k FailureKind) String() string {
	switch k {
	case OperationFailure:
		return "operation"
	case AssertionFailure:
		return "assertion"
	default:
		return "none"
	}
}

// StepResult is the recorded outcome of one step.
type StepResult struct {
	Name   string
	Status Status
	Kind   FailureKind
	// Err is the failure, or the reason a step was skipped.
	Err      error
	Expected any
	Actual   any
	Duration time.Duration
}

// Report is the outcome of a run.
type Report struct {
	Service  string
	Image    string
	Endpoint fixture.ServiceEndpoint
	Policy   Policy
	State    RunState
	Steps    []StepResult
	// Err is the fatal provisioning error of an aborted run.
	Err error
	// TeardownErr is set when the container could not be stopped. It never fails the run.
	TeardownErr error
	Duration    time.Duration
}

// Passed reports whether the run provisioned, tore down, and every step passed.
func (r *Report) Passed() bool {
	if r == nil || r.Err != nil || r.State == Aborted {
		return false
	}
	for _, st := range r.Steps {
		if st.Status != Passed {
			return false
		}
	}
	return true
}

// Failures returns the failed steps in declared order.
func (r *Report) Failures() []StepResult {
	var out []StepResult
	for _, st := range r.Steps {
		if st.Status == Failed {
			out = append(out, st)
		}
	}
	return out
}

// Counts returns how many steps passed, failed and were skipped.
func (r *Report) Counts() (passed, failed, skipped int) {
	for _, st := range r.Steps {
		switch st.Status {
		case Passed:
			passed++
		case Failed:
			failed++
		case Skipped:
			skipped++
		}
	}
	return passed, failed, skipped
}

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow)
	dimColor  = color.New(color.Faint)
)

// Print writes a human-readable report to w.
func (r *Report) Print(w io.Writer) {
	header := r.Service
	if r.Image != "" {
		header += " (" + r.Image + ")"
	}
	if r.Endpoint.Host != "" {
		header += " at " + r.Endpoint.URL()
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", header, r.State)

	if r.Err != nil {
		_, _ = failColor.Fprint(w, "  ABORT ")
		_, _ = fmt.Fprintf(w, " %v\n", r.Err)
	}

	for _, st := range r.Steps {
		_, _ = fmt.Fprint(w, "  ")
		_, _ = statusColor(st.Status).Fprintf(w, "%-4s", st.Status)
		_, _ = fmt.Fprintf(w, "  %s", st.Name)
		if st.Duration > 0 {
			_, _ = dimColor.Fprintf(w, " (%s)", st.Duration.Round(time.Millisecond))
		}
		if st.Err != nil {
			_, _ = fmt.Fprintf(w, ": %v", st.Err)
		}
		_, _ = fmt.Fprintln(w)
		if st.Kind == AssertionFailure {
			_, _ = fmt.Fprintf(w, "        expected: %v\n        actual:   %v\n", st.Expected, st.Actual)
		}
	}

	if r.TeardownErr != nil {
		_, _ = skipColor.Fprintf(w, "  teardown: %v\n", r.TeardownErr)
	}

	passed, failed, skipped := r.Counts()
	_, _ = fmt.Fprint(w, "RESULT: ")
	if r.Passed() {
		_, _ = passColor.Fprint(w, "PASS")
	} else {
		_, _ = failColor.Fprint(w, "FAIL")
	}
	_, _ = fmt.Fprintf(w, " (%d passed, %d failed, %d skipped)\n", passed, failed, skipped)
}

func statusColor(s Status) *color.Color {
	switch s {
	case Passed:
		return passColor
	case Failed:
		return failColor
	default:
		return skipColor
	}
}
