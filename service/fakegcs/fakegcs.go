package fakegcs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/options"
	"github.com/c2fo/fixture/service"
	"github.com/c2fo/fixture/store/gs"
)

const (
	// Name is the registry name of the preset.
	Name = "fakegcs"

	// DefaultImage is used unless the preset is built WithImage.
	DefaultImage = "fsouza/fake-gcs-server:latest"
	// Port is the https API port.
	Port = "4443/tcp"

	healthPath = "/_internal/healthcheck"
	configPath = "/_internal/config"
)

// Service is the fake-gcs-server preset: an in-memory GCS emulator served over https with a self-signed
// certificate.
type Service struct {
	cfg service.Config
}

var _ fixture.Service = (*Service)(nil)

// New returns the fake-gcs-server preset.
func New(opts ...options.Option[service.Config]) *Service {
	cfg := service.Config{
		Image:  DefaultImage,
		Logger: log.Logger,
	}
	options.ApplyOptions(&cfg, opts...)
	return &Service{cfg: cfg}
}

// Name returns the registry name.
func (s *Service) Name() string { return Name }

// Request runs the in-memory backend over https and waits for the health check.
func (s *Service) Request() fixture.Request {
	req := s.cfg.Request()
	req.ExposedPorts = []string{Port}
	req.Entrypoint = []string{"/bin/fake-gcs-server", "-backend", "memory", "-scheme", "https"}
	req.WaitingFor = wait.ForHTTP(healthPath).
		WithTLS(true).
		WithAllowInsecure(true).
		WithPort(Port).
		WithPollInterval(req.Interval())
	return req
}

// Endpoint is the mapped https address. The emulator needs no credentials.
func (s *Service) Endpoint(h *fixture.ContainerHandle) fixture.ServiceEndpoint {
	return fixture.DeriveEndpoint(h, fixture.EndpointConfig{Scheme: "https"})
}

// Connect points the emulator's public host at the mapped address, so the URLs it hands out are reachable, and
// returns a GCS store.
func (s *Service) Connect(ctx context.Context, ep fixture.ServiceEndpoint) (fixture.Store, error) {
	opts := gs.FromEndpoint(ep)
	if err := configurePublicHost(ctx, opts.HTTPClient(), ep); err != nil {
		return nil, err
	}
	return gs.NewStore(gs.WithOptions(opts)), nil
}

func configurePublicHost(ctx context.Context, hc *http.Client, ep fixture.ServiceEndpoint) error {
	body, err := json.Marshal(map[string]string{"publicHost": ep.Address()})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, ep.URL()+configPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("configure public host: %w", err)
	}
	_ = res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("configure public host: unexpected status %d", res.StatusCode)
	}
	return nil
}

func init() {
	service.Register(Name, New())
}
