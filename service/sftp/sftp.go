package sftp

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/options"
	"github.com/c2fo/fixture/service"
	"github.com/c2fo/fixture/store/sftp"
)

const (
	// Name is the registry name of the preset.
	Name = "sftp"

	// DefaultImage is used unless the preset is built WithImage.
	DefaultImage = "atmoz/sftp:alpine"
	// Port is the ssh port.
	Port = "22/tcp"
	// DefaultUser is the user created at startup.
	DefaultUser = "fixture"
	// DefaultPassword is DefaultUser's password.
	DefaultPassword = "fixture"
)

// Service is the atmoz/sftp preset. One user is created with an upload directory that holds the containers.
type Service struct {
	cfg service.Config
}

var _ fixture.Service = (*Service)(nil)

// New returns the SFTP preset.
func New(opts ...options.Option[service.Config]) *Service {
	cfg := service.Config{
		Image:       DefaultImage,
		Credentials: fixture.Credentials{AccessKeyID: DefaultUser, SecretAccessKey: DefaultPassword},
		Logger:      log.Logger,
	}
	options.ApplyOptions(&cfg, opts...)
	return &Service{cfg: cfg}
}

// Name returns the registry name.
func (s *Service) Name() string { return Name }

// Request declares the user as user:pass:uid:gid:dir with the upload directory relative to the user's chroot.
func (s *Service) Request() fixture.Request {
	req := s.cfg.Request()
	req.ExposedPorts = []string{Port}
	req.Env = map[string]string{
		"SFTP_USERS": fmt.Sprintf("%s:%s:::%s",
			s.cfg.Credentials.AccessKeyID, s.cfg.Credentials.SecretAccessKey, sftp.DefaultRoot[1:]),
	}
	return req
}

// Endpoint is the mapped ssh address with the user's password credentials.
func (s *Service) Endpoint(h *fixture.ContainerHandle) fixture.ServiceEndpoint {
	return fixture.DeriveEndpoint(h, fixture.EndpointConfig{
		Scheme:      "sftp",
		Credentials: s.cfg.Credentials,
	})
}

// Connect returns an SFTP store for the endpoint. The ssh session is opened on first use.
func (s *Service) Connect(_ context.Context, ep fixture.ServiceEndpoint) (fixture.Store, error) {
	return sftp.NewStore(sftp.WithOptions(sftp.FromEndpoint(ep))), nil
}

func init() {
	service.Register(Name, New())
}
