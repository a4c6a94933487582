package ftp

import (
	"io"

	_ftp "github.com/jlaffaye/ftp"
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

func (m *mockClient) List(p string) ([]*_ftp.Entry, error) {
	ret := m.Called(p)
	var entries []*_ftp.Entry
	if v := ret.Get(0); v != nil {
		entries = v.([]*_ftp.Entry)
	}
	return entries, ret.Error(1)
}

func (m *mockClient) MakeDir(p string) error { return m.Called(p).Error(0) }

func (m *mockClient) RemoveDir(p string) error { return m.Called(p).Error(0) }

func (m *mockClient) Stor(p string, r io.Reader) error { return m.Called(p, r).Error(0) }

func (m *mockClient) Retrieve(p string) (io.ReadCloser, error) {
	ret := m.Called(p)
	var rc io.ReadCloser
	if v := ret.Get(0); v != nil {
		rc = v.(io.ReadCloser)
	}
	return rc, ret.Error(1)
}

func (m *mockClient) Delete(p string) error { return m.Called(p).Error(0) }

func (m *mockClient) Quit() error { return m.Called().Error(0) }
