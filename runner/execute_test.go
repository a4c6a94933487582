package runner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/runner"
)

var errRejected = &fixture.OperationError{Op: "create container", Container: "b", StatusCode: 409, Code: "BucketAlreadyOwnedByYou", Err: errors.New("conflict")}

func session() *fixture.Session {
	return &fixture.Session{Logger: zerolog.Nop()}
}

func pass(name string, requires ...string) runner.Step {
	return runner.Step{Name: name, Requires: requires, Action: func(context.Context, *fixture.Session) error { return nil }}
}

func fail(name string, requires ...string) runner.Step {
	return runner.Step{Name: name, Requires: requires, Action: func(context.Context, *fixture.Session) error { return errRejected }}
}

func statuses(r *runner.Report) []runner.Status {
	out := make([]runner.Status, 0, len(r.Steps))
	for _, st := range r.Steps {
		out = append(out, st.Status)
	}
	return out
}

func TestExecute_Policies(t *testing.T) {
	steps := []runner.Step{pass("a"), fail("b", "a"), pass("c", "b"), pass("d", "a")}

	tests := []struct {
		policy runner.Policy
		want   []runner.Status
	}{
		{runner.ContinueOnFailure, []runner.Status{runner.Passed, runner.Failed, runner.Passed, runner.Passed}},
		{runner.StopOnFailure, []runner.Status{runner.Passed, runner.Failed, runner.Skipped, runner.Skipped}},
		{runner.SkipDependents, []runner.Status{runner.Passed, runner.Failed, runner.Skipped, runner.Passed}},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			report := runner.Execute(context.Background(), session(), steps, tt.policy)
			assert.Equal(t, tt.want, statuses(report))
			assert.Equal(t, runner.Running, report.State)
			assert.False(t, report.Passed())
		})
	}
}

func TestExecute_SkipDependentsIsTransitive(t *testing.T) {
	steps := []runner.Step{fail("a"), pass("b", "a"), pass("c", "b")}
	report := runner.Execute(context.Background(), session(), steps, runner.SkipDependents)
	assert.Equal(t, []runner.Status{runner.Failed, runner.Skipped, runner.Skipped}, statuses(report))
	assert.Contains(t, report.Steps[2].Err.Error(), `"b"`)
}

func TestExecute_FailureKinds(t *testing.T) {
	steps := []runner.Step{
		fail("rejected"),
		{
			Name:    "mismatch",
			Observe: func(context.Context, *fixture.Session) (any, error) { return []string{"x"}, nil },
			Expect:  runner.Empty(),
		},
		{
			Name:    "observe error",
			Observe: func(context.Context, *fixture.Session) (any, error) { return nil, errors.New("timeout") },
			Expect:  runner.Empty(),
		},
	}
	report := runner.Execute(context.Background(), session(), steps, runner.ContinueOnFailure)
	require.Len(t, report.Steps, 3)

	assert.Equal(t, runner.OperationFailure, report.Steps[0].Kind)
	assert.ErrorIs(t, report.Steps[0].Err, errRejected)

	assert.Equal(t, runner.AssertionFailure, report.Steps[1].Kind)
	assert.Equal(t, []string{}, report.Steps[1].Expected)
	assert.Equal(t, []string{"x"}, report.Steps[1].Actual)
	var ae *fixture.AssertionError
	require.ErrorAs(t, report.Steps[1].Err, &ae)
	assert.Equal(t, "mismatch", ae.Step)

	assert.Equal(t, runner.OperationFailure, report.Steps[2].Kind)
}

func TestExecute_ActionErrorSkipsObserve(t *testing.T) {
	observed := false
	steps := []runner.Step{{
		Name:   "put",
		Action: func(context.Context, *fixture.Session) error { return errRejected },
		Observe: func(context.Context, *fixture.Session) (any, error) {
			observed = true
			return nil, nil
		},
	}}
	runner.Execute(context.Background(), session(), steps, runner.ContinueOnFailure)
	assert.False(t, observed)
}

func TestExecute_CancelledContextSkips(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	steps := []runner.Step{
		{Name: "cancel", Action: func(context.Context, *fixture.Session) error { cancel(); return nil }},
		pass("after"),
	}
	report := runner.Execute(ctx, session(), steps, runner.ContinueOnFailure)
	assert.Equal(t, []runner.Status{runner.Passed, runner.Skipped}, statuses(report))
	assert.ErrorIs(t, report.Steps[1].Err, context.Canceled)
}

func TestExecute_NilSession(t *testing.T) {
	report := runner.Execute(context.Background(), nil, []runner.Step{pass("a")}, runner.ContinueOnFailure)
	assert.True(t, report.Passed())
}

func TestValidate(t *testing.T) {
	noop := func(context.Context, *fixture.Session) error { return nil }
	tests := []struct {
		name    string
		steps   []runner.Step
		wantErr bool
	}{
		{"empty plan", nil, false},
		{"valid", []runner.Step{pass("a"), pass("b", "a")}, false},
		{"unnamed", []runner.Step{{Action: noop}}, true},
		{"duplicate", []runner.Step{pass("a"), pass("a")}, true},
		{"no work", []runner.Step{{Name: "a"}}, true},
		{"unknown requirement", []runner.Step{pass("a", "z")}, true},
		{"forward requirement", []runner.Step{pass("a", "b"), pass("b")}, true},
		{"self requirement", []runner.Step{pass("a", "a")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runner.Validate(tt.steps)
			if tt.wantErr {
				assert.ErrorIs(t, err, fixture.ErrInvalidPlan)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPolicy_String(t *testing.T) {
	assert.Equal(t, "continue-on-failure", runner.ContinueOnFailure.String())
	assert.Equal(t, "Policy(9)", runner.Policy(9).String())
}
