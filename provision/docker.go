package provision

import (
	"context"

	"github.com/docker/go-connections/nat"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/options"
)

// Docker starts containers on the local docker daemon through testcontainers-go.
type Docker struct {
	logger zerolog.Logger
}

var _ fixture.Provisioner = (*Docker)(nil)

// NewDocker initializer returns a pointer to Docker
func NewDocker(opts ...options.Option[Docker]) *Docker {
	d := &Docker{
		logger: log.Logger,
	}
	options.ApplyOptions(d, opts...)
	return d
}

// Start creates and starts the container and blocks until its wait strategy passes or the request's ready timeout
// elapses. When the container was created but never became ready it is returned alongside the error so the caller
// can remove it.
func (d *Docker) Start(ctx context.Context, req fixture.Request) (fixture.Container, error) {
	gcr, err := d.genericRequest(req)
	if err != nil {
		return nil, err
	}
	ctr, err := testcontainers.GenericContainer(ctx, gcr)
	return Wrap(ctr), err
}

func (d *Docker) genericRequest(req fixture.Request) (testcontainers.GenericContainerRequest, error) {
	port, err := req.ServicePort()
	if err != nil {
		return testcontainers.GenericContainerRequest{}, err
	}

	exposed := make([]string, 0, len(req.ExposedPorts))
	for _, p := range req.ExposedPorts {
		exposed = append(exposed, fixture.NormalizePort(p))
	}

	return testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Name:         req.Name,
			Image:        req.Image,
			ExposedPorts: exposed,
			Cmd:          req.Cmd,
			Entrypoint:   req.Entrypoint,
			Env:          req.Env,
			WaitingFor:   WaitStrategy(req, port),
		},
		Started: true,
		Logger:  Logger(d.logger),
	}, nil
}

// WaitStrategy bounds req.WaitingFor by the request's ready timeout. Without one it waits for port to accept
// connections, polling at the request's interval.
func WaitStrategy(req fixture.Request, port string) wait.Strategy {
	if req.WaitingFor == nil {
		return wait.ForListeningPort(nat.Port(port)).
			WithStartupTimeout(req.Timeout()).
			WithPollInterval(req.Interval())
	}
	return wait.ForAll(req.WaitingFor).WithStartupTimeout(req.Timeout())
}
