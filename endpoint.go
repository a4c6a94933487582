package fixture

import (
	"net"
	"strconv"
)

// Credentials are the static, non-secret identity of a disposable service.
type Credentials struct {
	AccessKeyID     string `json:"accessKeyId,omitempty"`
	SecretAccessKey string `json:"secretAccessKey,omitempty"`
}

// EndpointConfig holds the parts of a ServiceEndpoint that come from the service rather than the container.
type EndpointConfig struct {
	Scheme      string
	PathStyle   bool
	Region      string
	Credentials Credentials
}

// ServiceEndpoint is everything a client needs to reach a started service.
type ServiceEndpoint struct {
	Scheme      string
	Host        string
	Port        int
	PathStyle   bool
	Region      string
	Credentials Credentials
	// Ports maps every exposed container port, ie: "21100/tcp", to its host port.
	Ports map[string]int
}

// DeriveEndpoint builds a ServiceEndpoint from a started handle. The handle's mapped port is used, never the
// declared container port. Scheme defaults to http.
func DeriveEndpoint(h *ContainerHandle, c EndpointConfig) ServiceEndpoint {
	scheme := c.Scheme
	if scheme == "" {
		scheme = "http"
	}
	ep := ServiceEndpoint{
		Scheme:      scheme,
		PathStyle:   c.PathStyle,
		Region:      c.Region,
		Credentials: c.Credentials,
	}
	if h != nil {
		ep.Host = h.host
		ep.Port = h.mappedPort
	}
	ep.Ports = h.MappedPorts()
	return ep
}

// Address returns host:port.
func (e ServiceEndpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// URL returns scheme://host:port.
func (e ServiceEndpoint) URL() string {
	return e.Scheme + "://" + e.Address()
}

func (e ServiceEndpoint) String() string {
	return e.URL()
}
