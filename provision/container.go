package provision

import (
	"context"
	"reflect"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"

	"github.com/c2fo/fixture"
)

// Container adapts a testcontainers.Container to fixture.Container.
type Container struct {
	ctr testcontainers.Container
}

var _ fixture.Container = (*Container)(nil)

// Wrap returns ctr as a fixture.Container. It returns nil when ctr is nil, including a typed nil pointer as
// returned by module Run functions that fail before creating a container.
func Wrap(ctr testcontainers.Container) fixture.Container {
	if isNil(ctr) {
		return nil
	}
	return &Container{ctr: ctr}
}

// ID returns the docker container id.
func (c *Container) ID() string {
	return c.ctr.GetContainerID()
}

// Host returns the host the container's ports are published on.
func (c *Container) Host(ctx context.Context) (string, error) {
	return c.ctr.Host(ctx)
}

// MappedPort returns the published host port for a container port such as "9000/tcp".
func (c *Container) MappedPort(ctx context.Context, port string) (int, error) {
	p, err := c.ctr.MappedPort(ctx, nat.Port(fixture.NormalizePort(port)))
	if err != nil {
		return 0, err
	}
	return p.Int(), nil
}

// Terminate stops and removes the container.
func (c *Container) Terminate(ctx context.Context) error {
	return testcontainers.TerminateContainer(c.ctr, testcontainers.StopContext(ctx))
}

// Unwrap returns the underlying testcontainers container.
func (c *Container) Unwrap() testcontainers.Container {
	return c.ctr
}

func isNil(ctr testcontainers.Container) bool {
	if ctr == nil {
		return true
	}
	v := reflect.ValueOf(ctr)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
