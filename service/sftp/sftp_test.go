package sftp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/fixturetest"
	"github.com/c2fo/fixture/service"
	"github.com/c2fo/fixture/service/sftp"
)

func TestSFTP(t *testing.T) {
	svc := sftp.New(service.WithCredentials(fixture.Credentials{AccessKeyID: "alice", SecretAccessKey: "s3cret"}))

	req := svc.Request()
	assert.Equal(t, "atmoz/sftp:alpine", req.Image)
	assert.Equal(t, []string{"22/tcp"}, req.ExposedPorts)
	assert.Equal(t, "alice:s3cret:::upload", req.Env["SFTP_USERS"])
	assert.Nil(t, req.WaitingFor, "default listening-port wait")

	ep := svc.Endpoint(fixturetest.Handle(t, req, "localhost", 2222))
	assert.Equal(t, "sftp://localhost:2222", ep.URL())
	assert.Equal(t, "alice", ep.Credentials.AccessKeyID)
}
