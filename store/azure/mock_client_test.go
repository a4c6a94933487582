package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/stretchr/testify/mock"
)

type mockClient struct {
	mock.Mock
}

func newMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *mockClient {
	m := &mockClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockClient) NewListContainersPager(o *azblob.ListContainersOptions) *runtime.Pager[azblob.ListContainersResponse] {
	ret := m.Called(o)
	return ret.Get(0).(*runtime.Pager[azblob.ListContainersResponse])
}

func (m *mockClient) CreateContainer(ctx context.Context, name string, o *azblob.CreateContainerOptions) (azblob.CreateContainerResponse, error) {
	ret := m.Called(ctx, name, o)
	return azblob.CreateContainerResponse{}, ret.Error(0)
}

func (m *mockClient) DeleteContainer(ctx context.Context, name string, o *azblob.DeleteContainerOptions) (azblob.DeleteContainerResponse, error) {
	ret := m.Called(ctx, name, o)
	return azblob.DeleteContainerResponse{}, ret.Error(0)
}

func (m *mockClient) NewListBlobsFlatPager(name string, o *azblob.ListBlobsFlatOptions) *runtime.Pager[azblob.ListBlobsFlatResponse] {
	ret := m.Called(name, o)
	return ret.Get(0).(*runtime.Pager[azblob.ListBlobsFlatResponse])
}

func (m *mockClient) UploadBuffer(ctx context.Context, name, blob string, buffer []byte, o *azblob.UploadBufferOptions) (azblob.UploadBufferResponse, error) {
	ret := m.Called(ctx, name, blob, buffer, o)
	return azblob.UploadBufferResponse{}, ret.Error(0)
}

func (m *mockClient) DownloadStream(ctx context.Context, name, blob string, o *azblob.DownloadStreamOptions) (azblob.DownloadStreamResponse, error) {
	ret := m.Called(ctx, name, blob, o)
	return ret.Get(0).(azblob.DownloadStreamResponse), ret.Error(1)
}

func (m *mockClient) DeleteBlob(ctx context.Context, name, blob string, o *azblob.DeleteBlobOptions) (azblob.DeleteBlobResponse, error) {
	ret := m.Called(ctx, name, blob, o)
	return azblob.DeleteBlobResponse{}, ret.Error(0)
}
