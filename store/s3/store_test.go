package s3

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"github.com/c2fo/fixture"
)

type storeTestSuite struct {
	suite.Suite
	server *httptest.Server
	store  *Store
	ctx    context.Context
}

func (s *storeTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.server = httptest.NewServer(gofakes3.New(s3mem.New()).Server())
	s.store = NewStore(
		WithOptions(Options{
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
			Region:          DefaultRegion,
			Endpoint:        s.server.URL,
			ForcePathStyle:  true,
		}),
		WithLogger(zerolog.Nop()),
	)
}

func (s *storeTestSuite) TearDownTest() {
	s.NoError(s.store.Close())
	s.server.Close()
}

func (s *storeTestSuite) TestLifecycle() {
	names, err := s.store.ListContainers(s.ctx)
	s.Require().NoError(err)
	s.NotNil(names)
	s.Empty(names, "fresh service has no buckets")

	s.Require().NoError(s.store.CreateContainer(s.ctx, "test-bucket"))

	names, err = s.store.ListContainers(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"test-bucket"}, names)

	payload := []byte("%PDF-1.4 fixture payload")
	s.Require().NoError(s.store.PutObject(s.ctx, "test-bucket", "test-file.pdf", payload))

	keys, err := s.store.ListObjects(s.ctx, "test-bucket")
	s.Require().NoError(err)
	s.Equal([]string{"test-file.pdf"}, keys)

	got, err := s.store.GetObject(s.ctx, "test-bucket", "test-file.pdf")
	s.Require().NoError(err)
	s.Equal(payload, got, "round trip")

	s.Require().NoError(s.store.DeleteObject(s.ctx, "test-bucket", "test-file.pdf"))

	keys, err = s.store.ListObjects(s.ctx, "test-bucket")
	s.Require().NoError(err)
	s.Empty(keys)

	s.Require().NoError(s.store.DeleteContainer(s.ctx, "test-bucket"))

	names, err = s.store.ListContainers(s.ctx)
	s.Require().NoError(err)
	s.Empty(names)
}

func (s *storeTestSuite) TestDeleteContainer_NotEmpty() {
	s.Require().NoError(s.store.CreateContainer(s.ctx, "full"))
	s.Require().NoError(s.store.PutObject(s.ctx, "full", "a.txt", []byte("a")))

	err := s.store.DeleteContainer(s.ctx, "full")

	var oe *fixture.OperationError
	s.Require().ErrorAs(err, &oe)
	s.Equal("delete container", oe.Op)
	s.Equal("full", oe.Container)
	s.Equal(409, oe.StatusCode)
	s.Equal("BucketNotEmpty", oe.Code)
}

func (s *storeTestSuite) TestGetObject_Missing() {
	s.Require().NoError(s.store.CreateContainer(s.ctx, "test-bucket"))

	_, err := s.store.GetObject(s.ctx, "test-bucket", "nope.txt")

	var oe *fixture.OperationError
	s.Require().ErrorAs(err, &oe)
	s.Equal("nope.txt", oe.Key)
	s.Equal(404, oe.StatusCode)
}

func (s *storeTestSuite) TestListObjects_MissingBucket() {
	_, err := s.store.ListObjects(s.ctx, "missing")

	var oe *fixture.OperationError
	s.Require().ErrorAs(err, &oe)
	s.Equal(404, oe.StatusCode)
	s.Equal("NoSuchBucket", oe.Code)
}

func (s *storeTestSuite) TestWithClient() {
	client, err := s.store.Client(s.ctx)
	s.Require().NoError(err)

	other := NewStore(WithClient(client))
	got, err := other.Client(s.ctx)
	s.Require().NoError(err)
	s.Same(client, got)
}

func (s *storeTestSuite) TestFromEndpoint() {
	opts := FromEndpoint(fixture.ServiceEndpoint{
		Scheme:      "http",
		Host:        "localhost",
		Port:        49153,
		PathStyle:   true,
		Region:      "us-east-1",
		Credentials: fixture.Credentials{AccessKeyID: "minioadmin", SecretAccessKey: "minioadmin"},
	})

	s.Equal(Options{
		AccessKeyID:     "minioadmin",
		SecretAccessKey: "minioadmin",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:49153",
		ForcePathStyle:  true,
	}, opts)
}

func (s *storeTestSuite) TestClassify() {
	status, code := classify(&smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"})
	s.Zero(status)
	s.Equal("AccessDenied", code)

	status, code = classify(errors.New("dial tcp: connection refused"))
	s.Zero(status)
	s.Empty(code)

	status, _ = classify(&smithyhttp.ResponseError{
		Response: &smithyhttp.Response{Response: &http.Response{StatusCode: 403}},
		Err:      errors.New("x"),
	})
	s.Equal(403, status)
}

func TestStore(t *testing.T) {
	suite.Run(t, new(storeTestSuite))
}
