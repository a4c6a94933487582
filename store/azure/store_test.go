package azure

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/service"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/c2fo/fixture"
)

type storeTestSuite struct {
	suite.Suite
	client *mockClient
	store  *Store
	ctx    context.Context
}

func (s *storeTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.client = newMockClient(s.T())
	s.store = NewStore(WithClient(s.client))
}

func containerPager(pages ...[]string) *runtime.Pager[azblob.ListContainersResponse] {
	i := 0
	return runtime.NewPager(runtime.PagingHandler[azblob.ListContainersResponse]{
		More: func(azblob.ListContainersResponse) bool { return i < len(pages) },
		Fetcher: func(context.Context, *azblob.ListContainersResponse) (azblob.ListContainersResponse, error) {
			var items []*service.ContainerItem
			for _, n := range pages[i] {
				items = append(items, &service.ContainerItem{Name: to.Ptr(n)})
			}
			i++
			return azblob.ListContainersResponse{
				ListContainersSegmentResponse: service.ListContainersSegmentResponse{ContainerItems: items},
			}, nil
		},
	})
}

func blobPager(fetchErr error, names ...string) *runtime.Pager[azblob.ListBlobsFlatResponse] {
	return runtime.NewPager(runtime.PagingHandler[azblob.ListBlobsFlatResponse]{
		More: func(azblob.ListBlobsFlatResponse) bool { return false },
		Fetcher: func(context.Context, *azblob.ListBlobsFlatResponse) (azblob.ListBlobsFlatResponse, error) {
			if fetchErr != nil {
				return azblob.ListBlobsFlatResponse{}, fetchErr
			}
			var items []*container.BlobItem
			for _, n := range names {
				items = append(items, &container.BlobItem{Name: to.Ptr(n)})
			}
			return azblob.ListBlobsFlatResponse{
				ListBlobsFlatSegmentResponse: container.ListBlobsFlatSegmentResponse{
					Segment: &container.BlobFlatListSegment{BlobItems: items},
				},
			}, nil
		},
	})
}

func (s *storeTestSuite) TestListContainers() {
	s.client.On("NewListContainersPager", (*azblob.ListContainersOptions)(nil)).
		Return(containerPager([]string{"zeta", "alpha"}, []string{"mid"}))

	names, err := s.store.ListContainers(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"alpha", "mid", "zeta"}, names)
}

func (s *storeTestSuite) TestListContainers_Empty() {
	s.client.On("NewListContainersPager", (*azblob.ListContainersOptions)(nil)).Return(containerPager())

	names, err := s.store.ListContainers(s.ctx)
	s.Require().NoError(err)
	s.NotNil(names)
	s.Empty(names)
}

func (s *storeTestSuite) TestCreateContainer_Conflict() {
	s.client.On("CreateContainer", s.ctx, "test-bucket", (*azblob.CreateContainerOptions)(nil)).
		Return(&azcore.ResponseError{StatusCode: 409, ErrorCode: "ContainerAlreadyExists"})

	err := s.store.CreateContainer(s.ctx, "test-bucket")

	var oe *fixture.OperationError
	s.Require().ErrorAs(err, &oe)
	s.Equal("create container", oe.Op)
	s.Equal(409, oe.StatusCode)
	s.Equal("ContainerAlreadyExists", oe.Code)
}

func (s *storeTestSuite) TestDeleteContainer() {
	s.client.On("DeleteContainer", s.ctx, "test-bucket", (*azblob.DeleteContainerOptions)(nil)).Return(nil)
	s.NoError(s.store.DeleteContainer(s.ctx, "test-bucket"))
}

func (s *storeTestSuite) TestListObjects() {
	s.client.On("NewListBlobsFlatPager", "test-bucket", (*azblob.ListBlobsFlatOptions)(nil)).
		Return(blobPager(nil, "b.txt", "a.pdf"))

	keys, err := s.store.ListObjects(s.ctx, "test-bucket")
	s.Require().NoError(err)
	s.Equal([]string{"a.pdf", "b.txt"}, keys)
}

func (s *storeTestSuite) TestListObjects_MissingContainer() {
	s.client.On("NewListBlobsFlatPager", "missing", (*azblob.ListBlobsFlatOptions)(nil)).
		Return(blobPager(&azcore.ResponseError{StatusCode: 404, ErrorCode: "ContainerNotFound"}))

	_, err := s.store.ListObjects(s.ctx, "missing")

	var oe *fixture.OperationError
	s.Require().ErrorAs(err, &oe)
	s.Equal(404, oe.StatusCode)
	s.Equal("missing", oe.Container)
}

func (s *storeTestSuite) TestPutGetDeleteObject() {
	payload := []byte("%PDF-1.4 fixture payload")
	s.client.On("UploadBuffer", s.ctx, "test-bucket", "test-file.pdf", payload, (*azblob.UploadBufferOptions)(nil)).Return(nil)
	s.client.On("DownloadStream", s.ctx, "test-bucket", "test-file.pdf", (*azblob.DownloadStreamOptions)(nil)).
		Return(azblob.DownloadStreamResponse{
			DownloadResponse: blob.DownloadResponse{Body: io.NopCloser(strings.NewReader(string(payload)))},
		}, nil)
	s.client.On("DeleteBlob", s.ctx, "test-bucket", "test-file.pdf", (*azblob.DeleteBlobOptions)(nil)).Return(nil)

	s.Require().NoError(s.store.PutObject(s.ctx, "test-bucket", "test-file.pdf", payload))
	got, err := s.store.GetObject(s.ctx, "test-bucket", "test-file.pdf")
	s.Require().NoError(err)
	s.Equal(payload, got)
	s.Require().NoError(s.store.DeleteObject(s.ctx, "test-bucket", "test-file.pdf"))
}

func (s *storeTestSuite) TestGetObject_Missing() {
	s.client.On("DownloadStream", s.ctx, "test-bucket", "nope", mock.Anything).
		Return(azblob.DownloadStreamResponse{}, &azcore.ResponseError{StatusCode: 404, ErrorCode: "BlobNotFound"})

	_, err := s.store.GetObject(s.ctx, "test-bucket", "nope")

	var oe *fixture.OperationError
	s.Require().ErrorAs(err, &oe)
	s.Equal("nope", oe.Key)
	s.Equal("BlobNotFound", oe.Code)
}

func (s *storeTestSuite) TestFromEndpoint() {
	opts, err := FromEndpoint(fixture.ServiceEndpoint{
		Scheme: "http",
		Host:   "localhost",
		Port:   49160,
		Credentials: fixture.Credentials{
			AccessKeyID:     "devstoreaccount1",
			SecretAccessKey: "a2V5",
		},
	})
	s.Require().NoError(err)
	s.Equal("http://localhost:49160/devstoreaccount1", opts.ServiceURL)
	s.Equal("devstoreaccount1", opts.AccountName)
	s.Equal("a2V5", opts.AccountKey)

	client, err := NewStore(WithOptions(opts)).Client()
	s.Require().NoError(err)
	s.NotNil(client)
}

func (s *storeTestSuite) TestClient_BadKey() {
	_, err := NewStore(WithOptions(Options{AccountName: "a", AccountKey: "not base64!"})).Client()

	var oe *fixture.OperationError
	s.Require().ErrorAs(err, &oe)
	s.Equal("connect", oe.Op)
}

func (s *storeTestSuite) TestClassify() {
	status, code := classify(errors.New("dial tcp: connection refused"))
	s.Zero(status)
	s.Empty(code)
}

func TestStore(t *testing.T) {
	suite.Run(t, new(storeTestSuite))
}
