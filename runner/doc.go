/*
Package runner executes an ordered list of steps against a provisioned storage service.

A run moves through NotStarted, Provisioning, Ready and Running to TornDown. If the container cannot be started, the
store cannot be built, or the store never answers within the request's ready timeout, the run is Aborted with a
*fixture.ProvisionError. The container is released on every exit path.

Steps run strictly in declared order on the calling goroutine. Each step performs an Action, an Observe and an
Expect over the observation. A failing step is recorded with its error, and with expected and actual values for
assertion failures; what happens to the remaining steps is decided by the Policy:

	report, err := runner.Run(ctx, minio.New(), steps, runner.WithPolicy(runner.SkipDependents))
	if err != nil {
		// invalid plan or provisioning failure
	}
	report.Print(os.Stdout)
*/
package runner
