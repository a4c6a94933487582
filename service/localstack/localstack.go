package localstack

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/testcontainers/testcontainers-go"
	tclocalstack "github.com/testcontainers/testcontainers-go/modules/localstack"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/options"
	"github.com/c2fo/fixture/provision"
	"github.com/c2fo/fixture/service"
	"github.com/c2fo/fixture/store/s3"
)

const (
	// Name is the registry name of the preset.
	Name = "localstack"

	// DefaultImage is used unless the preset is built WithImage.
	DefaultImage = "localstack/localstack:latest"
	// Port is the edge port serving every enabled service.
	Port = "4566/tcp"
	// Region is LocalStack's default region.
	Region = "us-east-1"
	// DefaultKey is accepted by LocalStack as both access key id and secret.
	DefaultKey = "test"
)

// Service is the LocalStack preset. The container is always started through the testcontainers localstack module,
// which knows the edge port and readiness check for each LocalStack release.
type Service struct {
	cfg service.Config
}

var (
	_ fixture.Service             = (*Service)(nil)
	_ fixture.ProvisionerProvider = (*Service)(nil)
)

// New returns the LocalStack preset.
func New(opts ...options.Option[service.Config]) *Service {
	cfg := service.Config{
		Image:       DefaultImage,
		Credentials: fixture.Credentials{AccessKeyID: DefaultKey, SecretAccessKey: DefaultKey},
		Logger:      log.Logger,
		UseModule:   true,
	}
	options.ApplyOptions(&cfg, opts...)
	return &Service{cfg: cfg}
}

// Name returns the registry name.
func (s *Service) Name() string { return Name }

// Request enables only the S3 service.
func (s *Service) Request() fixture.Request {
	req := s.cfg.Request()
	req.ExposedPorts = []string{Port}
	req.Env = map[string]string{"SERVICES": "s3"}
	return req
}

// Endpoint is the mapped edge port, path-style, signed for Region.
func (s *Service) Endpoint(h *fixture.ContainerHandle) fixture.ServiceEndpoint {
	return fixture.DeriveEndpoint(h, fixture.EndpointConfig{
		Scheme:      "http",
		PathStyle:   true,
		Region:      Region,
		Credentials: s.cfg.Credentials,
	})
}

// Connect returns an S3 store for the endpoint.
func (s *Service) Connect(_ context.Context, ep fixture.ServiceEndpoint) (fixture.Store, error) {
	return s3.NewStore(
		s3.WithOptions(s3.FromEndpoint(ep)),
		s3.WithLogger(s.cfg.Logger),
	), nil
}

// Provisioner starts the container with the testcontainers localstack module.
func (s *Service) Provisioner() fixture.Provisioner {
	return provision.Func(func(ctx context.Context, req fixture.Request) (fixture.Container, error) {
		opts := []testcontainers.ContainerCustomizer{
			testcontainers.WithEnv(req.Env),
			testcontainers.WithLogger(provision.Logger(s.cfg.Logger)),
		}
		if req.Name != "" {
			opts = append(opts, testcontainers.WithName(req.Name))
		}
		ctr, err := tclocalstack.Run(ctx, req.Image, opts...)
		return provision.Wrap(ctr), err
	})
}

func init() {
	service.Register(Name, New())
}
