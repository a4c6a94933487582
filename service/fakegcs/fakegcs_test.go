package fakegcs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/fixturetest"
	"github.com/c2fo/fixture/store/gs"
)

type fakegcsTestSuite struct {
	suite.Suite
	server     *httptest.Server
	status     int
	publicHost string
}

func (s *fakegcsTestSuite) SetupTest() {
	s.status = http.StatusOK
	s.publicHost = ""
	s.server = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != configPath {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.publicHost = body["publicHost"]
		w.WriteHeader(s.status)
	}))
}

func (s *fakegcsTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *fakegcsTestSuite) endpoint() fixture.ServiceEndpoint {
	u, err := url.Parse(s.server.URL)
	s.Require().NoError(err)
	port, err := strconv.Atoi(u.Port())
	s.Require().NoError(err)
	return fixture.ServiceEndpoint{Scheme: "https", Host: u.Hostname(), Port: port}
}

func (s *fakegcsTestSuite) TestRequest() {
	req := New().Request()
	s.Equal([]string{"4443/tcp"}, req.ExposedPorts)
	s.Equal([]string{"/bin/fake-gcs-server", "-backend", "memory", "-scheme", "https"}, req.Entrypoint)

	hs, ok := req.WaitingFor.(*wait.HTTPStrategy)
	s.Require().True(ok)
	s.Equal(healthPath, hs.Path)
	s.True(hs.UseTLS)
}

func (s *fakegcsTestSuite) TestEndpoint() {
	svc := New()
	ep := svc.Endpoint(fixturetest.Handle(s.T(), svc.Request(), "localhost", 49170))
	s.Equal("https://localhost:49170", ep.URL())
}

func (s *fakegcsTestSuite) TestConnect_ConfiguresPublicHost() {
	ep := s.endpoint()
	store, err := New().Connect(context.Background(), ep)
	s.Require().NoError(err)
	s.IsType(&gs.Store{}, store)
	s.Equal(ep.Address(), s.publicHost)
}

func (s *fakegcsTestSuite) TestConnect_ConfigRejected() {
	s.status = http.StatusInternalServerError
	_, err := New().Connect(context.Background(), s.endpoint())
	s.ErrorContains(err, "unexpected status 500")
}

func TestFakeGCS(t *testing.T) {
	suite.Run(t, new(fakegcsTestSuite))
}
