package ftp

import (
	"context"
	"errors"
	"io"
	"net"
	"net/textproto"
	"strconv"
	"strings"
	"testing"
	"time"

	_ftp "github.com/jlaffaye/ftp"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/fixturetest"
	"github.com/c2fo/fixture/utils"
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
	s.store = NewStore(WithClient(s.client), WithOptions(Options{Root: "/srv"}))
}

func (s *storeTestSuite) TestListContainers() {
	s.client.On("List", "/srv").Return([]*_ftp.Entry{
		{Name: ".", Type: _ftp.EntryTypeFolder},
		{Name: "zeta", Type: _ftp.EntryTypeFolder},
		{Name: "notes.txt", Type: _ftp.EntryTypeFile},
		{Name: "alpha", Type: _ftp.EntryTypeFolder},
	}, nil).Once()

	names, err := s.store.ListContainers(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"alpha", "zeta"}, names)
}

func (s *storeTestSuite) TestListContainers_Empty() {
	s.client.On("List", "/srv").Return(nil, nil).Once()

	names, err := s.store.ListContainers(s.ctx)
	s.Require().NoError(err)
	s.NotNil(names)
	s.Empty(names)
}

func (s *storeTestSuite) TestCreateDeleteContainer() {
	s.client.On("MakeDir", "/srv/test-bucket").Return(nil).Once()
	s.client.On("RemoveDir", "/srv/test-bucket").Return(nil).Once()

	s.NoError(s.store.CreateContainer(s.ctx, "test-bucket"))
	s.NoError(s.store.DeleteContainer(s.ctx, "test-bucket"))
}

func (s *storeTestSuite) TestDeleteContainer_NotEmpty() {
	s.client.On("RemoveDir", "/srv/full").
		Return(&textproto.Error{Code: 550, Msg: "Remove directory operation failed."}).Once()

	err := s.store.DeleteContainer(s.ctx, "full")

	var oe *fixture.OperationError
	s.Require().ErrorAs(err, &oe)
	s.Equal("delete container", oe.Op)
	s.Equal(550, oe.StatusCode)
}

func (s *storeTestSuite) TestObjects() {
	payload := []byte("%PDF-1.4 fixture payload")
	s.client.On("Stor", "/srv/test-bucket/test-file.pdf", mock.AnythingOfType("*bytes.Reader")).Return(nil).Once()
	s.client.On("List", "/srv/test-bucket").Return([]*_ftp.Entry{
		{Name: "test-file.pdf", Type: _ftp.EntryTypeFile},
	}, nil).Once()
	s.client.On("Retrieve", "/srv/test-bucket/test-file.pdf").
		Return(io.NopCloser(strings.NewReader(string(payload))), nil).Once()
	s.client.On("Delete", "/srv/test-bucket/test-file.pdf").Return(nil).Once()

	s.Require().NoError(s.store.PutObject(s.ctx, "test-bucket", "test-file.pdf", payload))

	keys, err := s.store.ListObjects(s.ctx, "test-bucket")
	s.Require().NoError(err)
	s.Equal([]string{"test-file.pdf"}, keys)

	got, err := s.store.GetObject(s.ctx, "test-bucket", "test-file.pdf")
	s.Require().NoError(err)
	s.Equal(payload, got)

	s.Require().NoError(s.store.DeleteObject(s.ctx, "test-bucket", "test-file.pdf"))
}

func (s *storeTestSuite) TestGetObject_Missing() {
	s.client.On("Retrieve", "/srv/test-bucket/nope").
		Return(nil, &textproto.Error{Code: 550, Msg: "Failed to open file."}).Once()

	_, err := s.store.GetObject(s.ctx, "test-bucket", "nope")

	var oe *fixture.OperationError
	s.Require().ErrorAs(err, &oe)
	s.Equal("nope", oe.Key)
	s.Equal(550, oe.StatusCode)
}

func (s *storeTestSuite) TestBadName() {
	s.ErrorIs(s.store.PutObject(s.ctx, "test-bucket", "a/b", nil), utils.ErrBadName)
	s.ErrorIs(s.store.CreateContainer(s.ctx, ".."), utils.ErrBadName)
}

func (s *storeTestSuite) TestClose() {
	s.client.On("Quit").Return(nil).Once()
	s.NoError(s.store.Close())
	s.NoError(s.store.Close(), "second close is a no-op")
}

func (s *storeTestSuite) TestFromEndpoint() {
	opts := FromEndpoint(fixture.ServiceEndpoint{
		Host:        "localhost",
		Port:        49160,
		Credentials: fixture.Credentials{AccessKeyID: "fixture", SecretAccessKey: "pass"},
		Ports: map[string]int{
			"21/tcp":    49160,
			"21100/tcp": 49161,
			"21101/tcp": 49162,
		},
	})
	s.Equal("localhost:49160", opts.Address)
	s.Equal("fixture", opts.User)
	s.Equal("pass", opts.Password)
	s.Equal(map[int]int{21100: 49161, 21101: 49162}, opts.DataPorts)

	s.Equal("localhost:49161", opts.remap("localhost", "172.17.0.2:21100"))
	s.Equal("172.17.0.2:2000", opts.remap("localhost", "172.17.0.2:2000"))
	s.Equal("garbage", opts.remap("localhost", "garbage"))
}

func (s *storeTestSuite) TestDialFunc_ControlAddressNotRemapped() {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)
	defer func() { _ = ln.Close() }()

	closed, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)
	closedPort := closed.Addr().(*net.TCPAddr).Port
	_ = closed.Close()

	// the control host port collides with a passive container port
	controlPort := ln.Addr().(*net.TCPAddr).Port
	opts := Options{Address: ln.Addr().String(), DataPorts: map[int]int{controlPort: closedPort}}

	conn, err := opts.dialFunc(time.Second)("tcp", opts.Address)
	s.Require().NoError(err, "control dial reaches the control port")
	s.NoError(conn.Close())

	_, err = opts.dialFunc(time.Second)("tcp", net.JoinHostPort("172.17.0.2", strconv.Itoa(controlPort)))
	s.Error(err, "data dial is redirected to the mapped port")
}

func (s *storeTestSuite) TestListContainers_SilentServerBoundedByContext() {
	store := NewStore(WithOptions(Options{Address: fixturetest.SilentServer(s.T()), User: "fixture", Password: "pass"}))
	ctx, cancel := context.WithTimeout(s.ctx, 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := store.ListContainers(ctx)

	var oe *fixture.OperationError
	s.Require().ErrorAs(err, &oe)
	s.Equal("connect", oe.Op)
	s.Less(time.Since(start), 5*time.Second, "a server that never sends its greeting gives up at the ctx deadline")
	s.NoError(store.Close())
}

func (s *storeTestSuite) TestListContainers_SilentServerBoundedByDialTimeout() {
	store := NewStore(WithOptions(Options{
		Address:     fixturetest.SilentServer(s.T()),
		DialTimeout: 200 * time.Millisecond,
		DataPorts:   map[int]int{21100: 49161},
	}))

	start := time.Now()
	_, err := store.ListContainers(s.ctx)
	s.Error(err)
	s.Less(time.Since(start), 5*time.Second)
}

func (s *storeTestSuite) TestClassify() {
	status, _ := classify(errors.New("boom"))
	s.Zero(status)
}

func TestStore(t *testing.T) {
	suite.Run(t, new(storeTestSuite))
}
