package fixturetest

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/mocks"
)

// Handle acquires a handle for req from a mocked provisioner without touching docker. Exposed ports are mapped in
// declared order onto firstPort, firstPort+1, and so on, all on host. It lets service presets test endpoint
// derivation.
func Handle(t *testing.T, req fixture.Request, host string, firstPort int) *fixture.ContainerHandle {
	t.Helper()

	ctr := mocks.NewContainer(t)
	ctr.On("ID").Return("fixturetest").Maybe()
	ctr.On("Host", mock.Anything).Return(host, nil).Maybe()
	next := firstPort
	seen := map[string]bool{}
	for _, p := range req.ExposedPorts {
		p = fixture.NormalizePort(p)
		if seen[p] {
			continue
		}
		seen[p] = true
		ctr.On("MappedPort", mock.Anything, p).Return(next, nil).Maybe()
		next++
	}

	prov := mocks.NewProvisioner(t)
	prov.On("Start", mock.Anything, req).Return(ctr, nil).Once()

	h, err := fixture.New(prov, fixture.WithLogger(zerolog.Nop())).Acquire(context.Background(), req)
	require.NoError(t, err)
	return h
}
