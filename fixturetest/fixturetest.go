// Package fixturetest runs a storage service and a step plan from a Go test.
package fixturetest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/options"
	"github.com/c2fo/fixture/runner"
)

// TB is the subset of testing.TB that Run reports through.
type TB interface {
	Helper()
	Context() context.Context
	Skip(args ...any)
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Logf(format string, args ...any)
}

// Run provisions svc, runs steps against it and reports each failed step as a test error. A provisioning failure
// is fatal. Run skips under -short since it needs a docker daemon.
func Run(t TB, svc fixture.Service, steps []runner.Step, opts ...options.Option[runner.Runner]) *runner.Report {
	t.Helper()
	if testing.Short() {
		t.Skip("container fixture skipped in short mode")
		return nil
	}

	report, err := runner.Run(t.Context(), svc, steps, opts...)
	if report != nil {
		var b strings.Builder
		report.Print(&b)
		t.Logf("\n%s", b.String())
	}

	if err != nil {
		var pe *fixture.ProvisionError
		if errors.As(err, &pe) {
			t.Fatalf("%s: %v", svc.Name(), err)
		} else {
			t.Fatalf("%s: invalid plan: %v", svc.Name(), err)
		}
		return report
	}

	for _, st := range report.Failures() {
		if st.Kind == runner.AssertionFailure {
			t.Errorf("step %q failed: %v\n\texpected: %v\n\tactual:   %v", st.Name, st.Err, st.Expected, st.Actual)
			continue
		}
		t.Errorf("step %q failed: %v", st.Name, st.Err)
	}
	for _, st := range report.Steps {
		if st.Status == runner.Skipped {
			t.Errorf("step %q skipped: %v", st.Name, st.Err)
		}
	}
	return report
}
