package sftp

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"sync"

	_sftp "github.com/pkg/sftp"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/options"
	"github.com/c2fo/fixture/utils"
)

// Client is the subset of *sftp.Client used by Store.
type Client interface {
	ReadDir(p string) ([]os.FileInfo, error)
	Mkdir(p string) error
	RemoveDirectory(p string) error
	Create(p string) (*_sftp.File, error)
	Open(p string) (*_sftp.File, error)
	Remove(p string) error
	Close() error
}

var _ Client = (*_sftp.Client)(nil)

// Store implements fixture.Store over SFTP. Containers are directories under Options.Root and objects are regular
// files inside them.
type Store struct {
	mu      sync.Mutex
	client  Client
	conn    io.Closer
	options Options
}

var _ fixture.Store = (*Store)(nil)

// NewStore initializer returns a pointer to Store
func NewStore(opts ...options.Option[Store]) *Store {
	s := &Store{}
	options.ApplyOptions(s, opts...)
	return s
}

// Client returns the sftp client, dialing the server on first use. ctx bounds the dial and handshakes.
func (s *Store) Client(ctx context.Context) (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		c, conn, err := getClient(ctx, s.options)
		if err != nil {
			return nil, utils.WrapOperationError(utils.OpConnect, "", "", err, classify)
		}
		s.client = c
		s.conn = conn
	}
	return s.client, nil
}

// ListContainers lists directories under the root.
func (s *Store) ListContainers(ctx context.Context) ([]string, error) {
	client, err := s.Client(ctx)
	if err != nil {
		return nil, err
	}

	infos, err := client.ReadDir(s.options.root())
	if err != nil {
		return nil, utils.WrapOperationError(utils.OpListContainers, "", "", err, classify)
	}
	names := make([]string, 0, len(infos))
	for _, fi := range infos {
		if fi.IsDir() {
			names = append(names, fi.Name())
		}
	}
	return utils.SortedNames(names), nil
}

// CreateContainer creates a directory under the root.
func (s *Store) CreateContainer(ctx context.Context, name string) error {
	if err := utils.ValidateName(name); err != nil {
		return utils.WrapOperationError(utils.OpCreateContainer, name, "", err, classify)
	}
	client, err := s.Client(ctx)
	if err != nil {
		return err
	}
	err = client.Mkdir(s.containerPath(name))
	return utils.WrapOperationError(utils.OpCreateContainer, name, "", err, classify)
}

// DeleteContainer removes an empty directory. Servers refuse to remove a directory that still holds files.
func (s *Store) DeleteContainer(ctx context.Context, name string) error {
	if err := utils.ValidateName(name); err != nil {
		return utils.WrapOperationError(utils.OpDeleteContainer, name, "", err, classify)
	}
	client, err := s.Client(ctx)
	if err != nil {
		return err
	}
	err = client.RemoveDirectory(s.containerPath(name))
	return utils.WrapOperationError(utils.OpDeleteContainer, name, "", err, classify)
}

// ListObjects lists regular files in a container directory.
func (s *Store) ListObjects(ctx context.Context, container string) ([]string, error) {
	if err := utils.ValidateName(container); err != nil {
		return nil, utils.WrapOperationError(utils.OpListObjects, container, "", err, classify)
	}
	client, err := s.Client(ctx)
	if err != nil {
		return nil, err
	}

	infos, err := client.ReadDir(s.containerPath(container))
	if err != nil {
		return nil, utils.WrapOperationError(utils.OpListObjects, container, "", err, classify)
	}
	keys := make([]string, 0, len(infos))
	for _, fi := range infos {
		if fi.Mode().IsRegular() {
			keys = append(keys, fi.Name())
		}
	}
	return utils.SortedNames(keys), nil
}

// PutObject writes data to a file, truncating any existing content.
func (s *Store) PutObject(ctx context.Context, container, key string, data []byte) error {
	p, err := s.objectPath(container, key)
	if err != nil {
		return utils.WrapOperationError(utils.OpPutObject, container, key, err, classify)
	}
	client, err := s.Client(ctx)
	if err != nil {
		return err
	}

	f, err := client.Create(p)
	if err != nil {
		return utils.WrapOperationError(utils.OpPutObject, container, key, err, classify)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return utils.WrapOperationError(utils.OpPutObject, container, key, err, classify)
	}
	return utils.WrapOperationError(utils.OpPutObject, container, key, f.Close(), classify)
}

// GetObject reads a file.
func (s *Store) GetObject(ctx context.Context, container, key string) ([]byte, error) {
	p, err := s.objectPath(container, key)
	if err != nil {
		return nil, utils.WrapOperationError(utils.OpGetObject, container, key, err, classify)
	}
	client, err := s.Client(ctx)
	if err != nil {
		return nil, err
	}

	f, err := client.Open(p)
	if err != nil {
		return nil, utils.WrapOperationError(utils.OpGetObject, container, key, err, classify)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, utils.WrapOperationError(utils.OpGetObject, container, key, err, classify)
	}
	return data, nil
}

// DeleteObject removes a file.
func (s *Store) DeleteObject(ctx context.Context, container, key string) error {
	p, err := s.objectPath(container, key)
	if err != nil {
		return utils.WrapOperationError(utils.OpDeleteObject, container, key, err, classify)
	}
	client, err := s.Client(ctx)
	if err != nil {
		return err
	}
	err = client.Remove(p)
	return utils.WrapOperationError(utils.OpDeleteObject, container, key, err, classify)
}

// Close closes the sftp session and the underlying ssh connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	if s.conn != nil {
		if cerr := s.conn.Close(); err == nil {
			err = cerr
		}
	}
	s.client = nil
	s.conn = nil
	return err
}

func (s *Store) containerPath(name string) string {
	return path.Join(s.options.root(), name)
}

func (s *Store) objectPath(container, key string) (string, error) {
	if err := utils.ValidateName(container); err != nil {
		return "", err
	}
	if err := utils.ValidateName(key); err != nil {
		return "", err
	}
	return path.Join(s.options.root(), container, key), nil
}

var fxCodes = map[uint32]string{
	uint32(_sftp.ErrSSHFxEOF):              "SSH_FX_EOF",
	uint32(_sftp.ErrSSHFxNoSuchFile):       "SSH_FX_NO_SUCH_FILE",
	uint32(_sftp.ErrSSHFxPermissionDenied): "SSH_FX_PERMISSION_DENIED",
	uint32(_sftp.ErrSSHFxFailure):          "SSH_FX_FAILURE",
	uint32(_sftp.ErrSSHFxBadMessage):       "SSH_FX_BAD_MESSAGE",
	uint32(_sftp.ErrSSHFxNoConnection):     "SSH_FX_NO_CONNECTION",
	uint32(_sftp.ErrSSHFxConnectionLost):   "SSH_FX_CONNECTION_LOST",
	uint32(_sftp.ErrSSHFxOpUnsupported):    "SSH_FX_OP_UNSUPPORTED",
}

// classify reports the SFTP status code name. The sftp client turns some statuses into fs errors, so those are
// mapped back.
func classify(err error) (status int, code string) {
	var se *_sftp.StatusError
	if errors.As(err, &se) {
		return 0, fxCodes[uint32(se.FxCode())]
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return 0, "SSH_FX_NO_SUCH_FILE"
	case errors.Is(err, fs.ErrPermission):
		return 0, "SSH_FX_PERMISSION_DENIED"
	}
	return 0, ""
}
