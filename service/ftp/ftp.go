package ftp

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/options"
	"github.com/c2fo/fixture/service"
	"github.com/c2fo/fixture/store/ftp"
)

const (
	// Name is the registry name of the preset.
	Name = "ftp"

	// DefaultImage is used unless the preset is built WithImage.
	DefaultImage = "fauria/vsftpd:latest"
	// Port is the control port.
	Port = "21/tcp"
	// DefaultUser is the user created at startup.
	DefaultUser = "fixture"
	// DefaultPassword is DefaultUser's password.
	DefaultPassword = "fixture"

	// passive data ports, each published on its own random host port
	pasvMinPort = 21100
	pasvMaxPort = 21103
)

// Service is the vsftpd preset.
type Service struct {
	cfg service.Config
}

var _ fixture.Service = (*Service)(nil)

// New returns the FTP preset.
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

// Request exposes the control port followed by the passive port range.
func (s *Service) Request() fixture.Request {
	req := s.cfg.Request()
	req.ExposedPorts = []string{Port}
	for p := pasvMinPort; p <= pasvMaxPort; p++ {
		req.ExposedPorts = append(req.ExposedPorts, strconv.Itoa(p)+"/tcp")
	}
	req.Env = map[string]string{
		"FTP_USER":      s.cfg.Credentials.AccessKeyID,
		"FTP_PASS":      s.cfg.Credentials.SecretAccessKey,
		"PASV_MIN_PORT": strconv.Itoa(pasvMinPort),
		"PASV_MAX_PORT": strconv.Itoa(pasvMaxPort),
	}
	return req
}

// Endpoint is the mapped control address. Its Ports carry the passive data port mappings.
func (s *Service) Endpoint(h *fixture.ContainerHandle) fixture.ServiceEndpoint {
	return fixture.DeriveEndpoint(h, fixture.EndpointConfig{
		Scheme:      "ftp",
		Credentials: s.cfg.Credentials,
	})
}

// Connect returns an FTP store for the endpoint. The control connection is opened on first use.
func (s *Service) Connect(_ context.Context, ep fixture.ServiceEndpoint) (fixture.Store, error) {
	return ftp.NewStore(ftp.WithOptions(ftp.FromEndpoint(ep))), nil
}

func init() {
	service.Register(Name, New())
}
