package fixture

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/c2fo/fixture/options"
)

// DefaultTeardownTimeout bounds a single container stop.
const DefaultTeardownTimeout = 30 * time.Second

// Fixture acquires and releases disposable containers through a Provisioner.
type Fixture struct {
	provisioner     Provisioner
	logger          zerolog.Logger
	teardownTimeout time.Duration
}

// New returns a Fixture that starts containers with p.
func New(p Provisioner, opts ...options.Option[Fixture]) *Fixture {
	f := &Fixture{
		provisioner:     p,
		logger:          log.Logger,
		teardownTimeout: DefaultTeardownTimeout,
	}
	options.ApplyOptions(f, opts...)
	return f
}

// Logger returns the fixture's logger.
func (f *Fixture) Logger() zerolog.Logger {
	return f.logger
}

// Acquire starts the container described by req and resolves its host and the mapped port of every exposed port.
// Every failure is returned as a *ProvisionError. A container that started but could not be resolved is
// terminated before Acquire returns.
func (f *Fixture) Acquire(ctx context.Context, req Request) (*ContainerHandle, error) {
	port, err := req.ServicePort()
	if err != nil {
		return nil, &ProvisionError{Image: req.Image, Err: err}
	}
	if f.provisioner == nil {
		return nil, &ProvisionError{Image: req.Image, Err: errors.New("no provisioner configured")}
	}

	logger := f.logger.With().Str("image", req.Image).Str("port", port).Logger()
	logger.Info().Dur("ready_timeout", req.Timeout()).Msg("starting container")

	start := time.Now()
	ctr, err := f.provisioner.Start(ctx, req)
	if err != nil {
		if ctr != nil {
			f.terminate(ctx, req.Image, ctr)
		}
		return nil, &ProvisionError{Image: req.Image, Err: err}
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		f.terminate(ctx, req.Image, ctr)
		return nil, &ProvisionError{Image: req.Image, Err: fmt.Errorf("resolve host: %w", err)}
	}

	ports := make(map[string]int, len(req.ExposedPorts))
	for _, p := range req.ExposedPorts {
		p = NormalizePort(p)
		if _, ok := ports[p]; ok {
			continue
		}
		mapped, err := ctr.MappedPort(ctx, p)
		if err != nil {
			f.terminate(ctx, req.Image, ctr)
			return nil, &ProvisionError{Image: req.Image, Err: fmt.Errorf("resolve mapped port %s: %w", p, err)}
		}
		ports[p] = mapped
	}
	mapped := ports[port]

	logger.Info().
		Str("container", ctr.ID()).
		Str("host", host).
		Int("mapped_port", mapped).
		Dur("elapsed", time.Since(start)).
		Msg("container ready")

	return &ContainerHandle{
		image:       req.Image,
		exposedPort: port,
		host:        host,
		mappedPort:  mapped,
		ports:       ports,
		id:          ctr.ID(),
		state:       HandleRunning,
		ctr:         ctr,
	}, nil
}

// Release stops the container behind h. It is safe to call more than once and with a nil handle; the container is
// terminated at most once. Failures are logged as a *TeardownError, kept on the handle, and never returned.
func (f *Fixture) Release(ctx context.Context, h *ContainerHandle) {
	if h == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != HandleRunning || h.ctr == nil {
		return
	}
	h.state = HandleStopped

	if err := f.stop(ctx, h.ctr); err != nil {
		h.teardownErr = &TeardownError{Image: h.image, ContainerID: h.id, Err: err}
		f.logger.Warn().Err(h.teardownErr).Msg("container teardown failed")
		return
	}
	f.logger.Info().Str("image", h.image).Str("container", h.id).Msg("container stopped")
}

func (f *Fixture) terminate(ctx context.Context, image string, ctr Container) {
	if err := f.stop(ctx, ctr); err != nil {
		f.logger.Warn().Err(&TeardownError{Image: image, ContainerID: ctr.ID(), Err: err}).
			Msg("terminating unready container failed")
	}
}

// stop detaches from ctx cancellation so a timed-out run still removes its container.
func (f *Fixture) stop(ctx context.Context, ctr Container) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.teardownTimeout)
	defer cancel()
	return ctr.Terminate(ctx)
}
