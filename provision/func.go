package provision

import (
	"context"

	"github.com/c2fo/fixture"
)

// Func adapts a function to fixture.Provisioner. Services built on testcontainers modules use it to start the
// module instead of a generic container.
type Func func(ctx context.Context, req fixture.Request) (fixture.Container, error)

var _ fixture.Provisioner = Func(nil)

// Start calls f(ctx, req).
func (f Func) Start(ctx context.Context, req fixture.Request) (fixture.Container, error) {
	return f(ctx, req)
}
