package azurite

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/testcontainers/testcontainers-go"
	tcazurite "github.com/testcontainers/testcontainers-go/modules/azure/azurite"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/options"
	"github.com/c2fo/fixture/provision"
	"github.com/c2fo/fixture/service"
	"github.com/c2fo/fixture/store/azure"
)

const (
	// Name is the registry name of the preset.
	Name = "azurite"

	// DefaultImage is used unless the preset is built WithImage.
	DefaultImage = "mcr.microsoft.com/azure-storage/azurite:latest"
	// Port is the blob service port.
	Port = "10000/tcp"
)

// Service is the Azurite blob service preset, started through the testcontainers azurite module with the
// well-known development account.
type Service struct {
	cfg service.Config
}

var (
	_ fixture.Service             = (*Service)(nil)
	_ fixture.ProvisionerProvider = (*Service)(nil)
)

// New returns the Azurite preset.
func New(opts ...options.Option[service.Config]) *Service {
	cfg := service.Config{
		Image: DefaultImage,
		Credentials: fixture.Credentials{
			AccessKeyID:     tcazurite.AccountName,
			SecretAccessKey: tcazurite.AccountKey,
		},
		Logger:    log.Logger,
		UseModule: true,
	}
	options.ApplyOptions(&cfg, opts...)
	return &Service{cfg: cfg}
}

// Name returns the registry name.
func (s *Service) Name() string { return Name }

// Request exposes the blob port only.
func (s *Service) Request() fixture.Request {
	req := s.cfg.Request()
	req.ExposedPorts = []string{Port}
	return req
}

// Endpoint is the mapped blob address with the development account as credentials.
func (s *Service) Endpoint(h *fixture.ContainerHandle) fixture.ServiceEndpoint {
	return fixture.DeriveEndpoint(h, fixture.EndpointConfig{
		Scheme:      "http",
		Credentials: s.cfg.Credentials,
	})
}

// Connect returns an Azure blob store for the endpoint.
func (s *Service) Connect(_ context.Context, ep fixture.ServiceEndpoint) (fixture.Store, error) {
	opts, err := azure.FromEndpoint(ep)
	if err != nil {
		return nil, err
	}
	return azure.NewStore(azure.WithOptions(opts)), nil
}

// Provisioner starts the container with the testcontainers azurite module, blob service only.
func (s *Service) Provisioner() fixture.Provisioner {
	return provision.Func(func(ctx context.Context, req fixture.Request) (fixture.Container, error) {
		opts := []testcontainers.ContainerCustomizer{
			tcazurite.WithEnabledServices(tcazurite.BlobService),
			testcontainers.WithLogger(provision.Logger(s.cfg.Logger)),
		}
		if req.Name != "" {
			opts = append(opts, testcontainers.WithName(req.Name))
		}
		ctr, err := tcazurite.Run(ctx, req.Image, opts...)
		return provision.Wrap(ctr), err
	})
}

func init() {
	service.Register(Name, New())
}
