package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/c2fo/fixture"
)

// Execute runs steps in declared order on the calling goroutine and records an outcome for each. Step errors never
// propagate past Execute. The returned report is in the Running state; Run moves it on after teardown.
func Execute(ctx context.Context, sess *fixture.Session, steps []Step, policy Policy) *Report {
	report := &Report{State: Running, Policy: policy}
	if sess != nil {
		report.Endpoint = sess.Endpoint
	}
	execute(ctx, sess, steps, policy, report)
	return report
}

func execute(ctx context.Context, sess *fixture.Session, steps []Step, policy Policy, report *Report) {
	status := make(map[string]Status, len(steps))
	failed := false

	for _, st := range steps {
		var res StepResult
		switch {
		case ctx.Err() != nil:
			res = skipped(st.Name, ctx.Err())
		case policy == StopOnFailure && failed:
			res = skipped(st.Name, errors.New("an earlier step failed"))
		case policy == SkipDependents && unmet(st, status) != "":
			res = skipped(st.Name, fmt.Errorf("required step %q did not pass", unmet(st, status)))
		default:
			res = runStep(ctx, sess, st)
		}

		status[st.Name] = res.Status
		if res.Status == Failed {
			failed = true
		}
		logResult(sess, res)
		report.Steps = append(report.Steps, res)
	}
}

func unmet(st Step, status map[string]Status) string {
	for _, req := range st.Requires {
		if status[req] != Passed {
			return req
		}
	}
	return ""
}

func skipped(name string, reason error) StepResult {
	return StepResult{Name: name, Status: Skipped, Err: reason}
}

func runStep(ctx context.Context, sess *fixture.Session, st Step) StepResult {
	start := time.Now()
	res := StepResult{Name: st.Name, Status: Passed}

	err := func() error {
		if st.Action != nil {
			if err := st.Action(ctx, sess); err != nil {
				return err
			}
		}
		var observed any
		if st.Observe != nil {
			var err error
			if observed, err = st.Observe(ctx, sess); err != nil {
				return err
			}
		}
		if st.Expect != nil {
			return st.Expect(observed)
		}
		return nil
	}()
	res.Duration = time.Since(start)
	if err == nil {
		return res
	}

	res.Status = Failed
	res.Err = err

	var ae *fixture.AssertionError
	if errors.As(err, &ae) {
		if ae.Step == "" {
			ae.Step = st.Name
		}
		res.Kind = AssertionFailure
		res.Expected = ae.Expected
		res.Actual = ae.Actual
		return res
	}
	res.Kind = OperationFailure
	return res
}

func logResult(sess *fixture.Session, res StepResult) {
	if sess == nil {
		return
	}
	switch res.Status {
	case Passed:
		sess.Logger.Info().Str("step", res.Name).Dur("elapsed", res.Duration).Msg("step passed")
	case Skipped:
		sess.Logger.Warn().Str("step", res.Name).Err(res.Err).Msg("step skipped")
	default:
		ev := sess.Logger.Error().Str("step", res.Name).Str("kind", res.Kind.String()).Err(res.Err)
		var oe *fixture.OperationError
		if errors.As(res.Err, &oe) {
			ev = ev.Str("op", oe.Op).Int("status", oe.StatusCode).Str("code", oe.Code)
		}
		ev.Msg("step failed")
	}
}
