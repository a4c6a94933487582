package fixture

import (
	"strings"
	"time"

	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultReadyTimeout bounds how long a container may take to become reachable.
	DefaultReadyTimeout = 60 * time.Second

	// DefaultPollInterval is how often readiness is re-checked while waiting.
	DefaultPollInterval = 500 * time.Millisecond
)

// Request describes a container to start. The first entry of ExposedPorts is the service port; its mapped host port
// is what endpoints are derived from.
type Request struct {
	Name         string
	Image        string
	ExposedPorts []string
	Cmd          []string
	Entrypoint   []string
	Env          map[string]string

	// ReadyTimeout and PollInterval bound the wait for the service port. Zero values use the defaults.
	ReadyTimeout time.Duration
	PollInterval time.Duration

	// WaitingFor overrides the default listening-port wait on the service port.
	WaitingFor wait.Strategy
}

// ServicePort returns the first exposed port in "<port>/<proto>" form, defaulting the protocol to tcp.
func (r Request) ServicePort() (string, error) {
	if len(r.ExposedPorts) == 0 || r.ExposedPorts[0] == "" {
		return "", ErrNoExposedPort
	}
	return NormalizePort(r.ExposedPorts[0]), nil
}

// Timeout returns ReadyTimeout or DefaultReadyTimeout when unset.
func (r Request) Timeout() time.Duration {
	if r.ReadyTimeout <= 0 {
		return DefaultReadyTimeout
	}
	return r.ReadyTimeout
}

// Interval returns PollInterval or DefaultPollInterval when unset.
func (r Request) Interval() time.Duration {
	if r.PollInterval <= 0 {
		return DefaultPollInterval
	}
	return r.PollInterval
}

// NormalizePort appends "/tcp" to a bare port number. Port ranges and ports with a protocol are returned unchanged.
func NormalizePort(port string) string {
	if strings.Contains(port, "/") {
		return port
	}
	return port + "/tcp"
}
