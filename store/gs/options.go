package gs

import (
	"context"
	"crypto/tls"
	"net/http"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/c2fo/fixture"
)

// DefaultProjectID is the project buckets are listed and created under. Emulators accept any value.
const DefaultProjectID = "fixture"

// Options holds gs-specific options.
type Options struct {
	// Endpoint is the service root, ie: https://localhost:49160. The JSON API path is appended.
	Endpoint  string `json:"endpoint,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
	// InsecureSkipVerify accepts the emulator's self-signed certificate.
	InsecureSkipVerify bool `json:"insecureSkipVerify,omitempty"`
}

// FromEndpoint returns Options pointing at a derived service endpoint.
func FromEndpoint(ep fixture.ServiceEndpoint) Options {
	return Options{
		Endpoint:           ep.URL(),
		ProjectID:          DefaultProjectID,
		InsecureSkipVerify: ep.Scheme == "https",
	}
}

// HTTPClient returns the client used to reach the emulator.
func (o Options) HTTPClient() *http.Client {
	if !o.InsecureSkipVerify {
		return http.DefaultClient
	}
	return &http.Client{Transport: &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
	}}
}

func getClient(ctx context.Context, opts Options) (*storage.Client, error) {
	clientOpts := []option.ClientOption{
		option.WithHTTPClient(opts.HTTPClient()),
		option.WithoutAuthentication(),
	}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint+"/storage/v1/"))
	}
	return storage.NewClient(ctx, clientOpts...)
}
