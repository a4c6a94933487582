package fixture

import (
	"context"

	"github.com/rs/zerolog"
)

// Provisioner starts containers.
type Provisioner interface {
	// Start launches the container described by req and blocks until its service port is ready or the request's
	// ready timeout elapses. An implementation may return a non-nil Container together with an error when the
	// container was created but never became ready; the caller terminates it.
	Start(ctx context.Context, req Request) (Container, error)
}

// Container is a started container as seen by a Fixture.
type Container interface {
	// ID returns the container runtime's identifier.
	ID() string

	// Host returns the host the container's mapped ports are reachable on.
	Host(ctx context.Context) (string, error)

	// MappedPort returns the ephemeral host port bound to the given container port, ie: "9000/tcp".
	MappedPort(ctx context.Context, port string) (int, error)

	// Terminate stops and removes the container.
	Terminate(ctx context.Context) error
}

// Store is a protocol-neutral client for a storage service. A container is whatever the service groups objects
// in: an S3 or GCS bucket, an Azure blob container, or a directory for SFTP and FTP.
//
// Listings are sorted, contain no duplicates, and are empty (not nil) when nothing exists.
type Store interface {
	ListContainers(ctx context.Context) ([]string, error)
	CreateContainer(ctx context.Context, name string) error
	DeleteContainer(ctx context.Context, name string) error
	ListObjects(ctx context.Context, container string) ([]string, error)
	PutObject(ctx context.Context, container, key string, data []byte) error
	GetObject(ctx context.Context, container, key string) ([]byte, error)
	DeleteObject(ctx context.Context, container, key string) error
	Close() error
}

// Service binds a container request, endpoint derivation, and client construction for one storage product.
type Service interface {
	// Name returns the registry name of the service, ie: "minio".
	Name() string

	// Request returns the container to start.
	Request() Request

	// Endpoint derives the client endpoint from a started handle. It must not fail.
	Endpoint(h *ContainerHandle) ServiceEndpoint

	// Connect builds a Store for the endpoint.
	Connect(ctx context.Context, ep ServiceEndpoint) (Store, error)
}

// ProvisionerProvider is implemented by services that start their container through a dedicated provisioner,
// such as a testcontainers module, instead of the generic container request.
type ProvisionerProvider interface {
	Provisioner() Provisioner
}

// Session is the fixture context threaded through every step of a run.
type Session struct {
	Handle   *ContainerHandle
	Endpoint ServiceEndpoint
	Store    Store
	Logger   zerolog.Logger
}
