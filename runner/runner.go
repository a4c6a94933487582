package runner

import (
	"context"
	"time"

	"github.com/eapache/go-resiliency/retrier"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/options"
	"github.com/c2fo/fixture/provision"
)

// Runner provisions a service, runs steps against it and tears it down.
type Runner struct {
	provisioner     fixture.Provisioner
	policy          Policy
	logger          zerolog.Logger
	teardownTimeout time.Duration
}

// New returns a Runner. Containers are started on the local docker daemon unless WithProvisioner is given.
func New(opts ...options.Option[Runner]) *Runner {
	r := &Runner{
		policy: ContinueOnFailure,
		logger: log.Logger,
	}
	options.ApplyOptions(r, opts...)
	if r.provisioner == nil {
		r.provisioner = provision.NewDocker(provision.WithLogger(r.logger))
	}
	return r
}

// Run is New(opts...).Run(ctx, svc, steps).
func Run(ctx context.Context, svc fixture.Service, steps []Step, opts ...options.Option[Runner]) (*Report, error) {
	return New(opts...).Run(ctx, svc, steps)
}

// Run validates the plan, acquires the service's container, connects a store, waits until the store answers, and
// executes steps in order. The container is released on every exit path, including a panicking step.
//
// The returned error is non-nil only for an invalid plan (fixture.ErrInvalidPlan, nothing is started) or a failed
// provisioning (*fixture.ProvisionError, the report is Aborted). Step failures are recorded in the report.
func (r *Runner) Run(ctx context.Context, svc fixture.Service, steps []Step) (report *Report, err error) {
	start := time.Now()
	report = &Report{Service: svc.Name(), Policy: r.policy, State: NotStarted}
	defer func() { report.Duration = time.Since(start) }()

	if err := Validate(steps); err != nil {
		return report, err
	}

	req := svc.Request()
	report.Image = req.Image
	logger := r.logger.With().Str("service", svc.Name()).Logger()

	fx := fixture.New(r.provisionerFor(svc),
		fixture.WithLogger(logger),
		fixture.WithTeardownTimeout(r.teardownTimeout),
	)

	report.State = Provisioning
	h, err := fx.Acquire(ctx, req)
	if err != nil {
		report.State = Aborted
		report.Err = err
		return report, err
	}
	defer func() {
		fx.Release(ctx, h)
		report.TeardownErr = h.TeardownErr()
		if report.State != Aborted {
			report.State = TornDown
		}
		logger.Info().Str("state", report.State.String()).Msg("run finished")
	}()

	ep := svc.Endpoint(h)
	report.Endpoint = ep

	store, err := svc.Connect(ctx, ep)
	if err != nil {
		return r.abort(report, req.Image, err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("closing store failed")
		}
	}()

	if err := waitReady(ctx, store, req); err != nil {
		return r.abort(report, req.Image, err)
	}
	report.State = Ready
	logger.Info().Str("endpoint", ep.URL()).Msg("service ready")

	sess := &fixture.Session{
		Handle:   h,
		Endpoint: ep,
		Store:    store,
		Logger:   logger,
	}
	report.State = Running
	execute(ctx, sess, steps, r.policy, report)
	return report, nil
}

func (r *Runner) provisionerFor(svc fixture.Service) fixture.Provisioner {
	if pp, ok := svc.(fixture.ProvisionerProvider); ok {
		if p := pp.Provisioner(); p != nil {
			return p
		}
	}
	return r.provisioner
}

func (r *Runner) abort(report *Report, image string, err error) (*Report, error) {
	report.State = Aborted
	report.Err = &fixture.ProvisionError{Image: image, Err: err}
	return report, report.Err
}

// waitReady waits until the store answers a listing. A container can accept connections before the service behind
// the port is usable, so the port wait alone is not enough.
func waitReady(ctx context.Context, store fixture.Store, req fixture.Request) error {
	timeout, interval := req.Timeout(), req.Interval()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	retries := int(timeout / interval)
	retry := retrier.New(retrier.ConstantBackoff(retries, interval), nil)
	return retry.RunCtx(ctx, func(ctx context.Context) error {
		_, err := store.ListContainers(ctx)
		return err
	})
}
