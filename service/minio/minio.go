package minio

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/testcontainers/testcontainers-go"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/options"
	"github.com/c2fo/fixture/provision"
	"github.com/c2fo/fixture/service"
	"github.com/c2fo/fixture/store/s3"
)

const (
	// Name is the registry name of the preset.
	Name = "minio"

	// DefaultImage is used unless the preset is built WithImage.
	DefaultImage = "minio/minio"
	// Port is the S3 API port inside the container.
	Port = "9000/tcp"
	// DefaultUser is the root user, used as the access key id.
	DefaultUser = "minioadmin"
	// DefaultPassword is the root password, used as the secret access key.
	DefaultPassword = "minioadmin"
	// Region is the signing region; MinIO accepts any.
	Region = "us-east-1"

	healthPath = "/minio/health/live"
)

// Service is the MinIO preset: a single-node server on /data reached with a path-style S3 client.
type Service struct {
	cfg service.Config
}

var (
	_ fixture.Service             = (*Service)(nil)
	_ fixture.ProvisionerProvider = (*Service)(nil)
)

// New returns the MinIO preset.
func New(opts ...options.Option[service.Config]) *Service {
	cfg := service.Config{
		Image: DefaultImage,
		Credentials: fixture.Credentials{
			AccessKeyID:     DefaultUser,
			SecretAccessKey: DefaultPassword,
		},
		Logger: log.Logger,
	}
	options.ApplyOptions(&cfg, opts...)
	return &Service{cfg: cfg}
}

// Name returns the registry name.
func (s *Service) Name() string { return Name }

// Request starts `minio server /data` and waits for the liveness endpoint.
func (s *Service) Request() fixture.Request {
	req := s.cfg.Request()
	req.ExposedPorts = []string{Port}
	req.Cmd = []string{"server", "/data"}
	req.Env = map[string]string{
		"MINIO_ROOT_USER":     s.cfg.Credentials.AccessKeyID,
		"MINIO_ROOT_PASSWORD": s.cfg.Credentials.SecretAccessKey,
	}
	req.WaitingFor = wait.ForHTTP(healthPath).
		WithPort(Port).
		WithPollInterval(req.Interval())
	return req
}

// Endpoint is the mapped address, path-style, signed for Region with the root credentials.
func (s *Service) Endpoint(h *fixture.ContainerHandle) fixture.ServiceEndpoint {
	return fixture.DeriveEndpoint(h, fixture.EndpointConfig{
		Scheme:      "http",
		PathStyle:   true,
		Region:      Region,
		Credentials: s.cfg.Credentials,
	})
}

// Connect returns an S3 store for the endpoint. Nothing is dialed until the store is used.
func (s *Service) Connect(_ context.Context, ep fixture.ServiceEndpoint) (fixture.Store, error) {
	return s3.NewStore(
		s3.WithOptions(s3.FromEndpoint(ep)),
		s3.WithLogger(s.cfg.Logger),
	), nil
}

// Provisioner returns the testcontainers minio module when the preset was built WithModule, nil otherwise.
func (s *Service) Provisioner() fixture.Provisioner {
	if !s.cfg.UseModule {
		return nil
	}
	return provision.Func(func(ctx context.Context, req fixture.Request) (fixture.Container, error) {
		opts := []testcontainers.ContainerCustomizer{
			tcminio.WithUsername(s.cfg.Credentials.AccessKeyID),
			tcminio.WithPassword(s.cfg.Credentials.SecretAccessKey),
			testcontainers.WithLogger(provision.Logger(s.cfg.Logger)),
		}
		if req.Name != "" {
			opts = append(opts, testcontainers.WithName(req.Name))
		}
		ctr, err := tcminio.Run(ctx, req.Image, opts...)
		return provision.Wrap(ctr), err
	})
}

func init() {
	service.Register(Name, New())
}
