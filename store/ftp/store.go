package ftp

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/textproto"
	"path"
	"sync"

	_ftp "github.com/jlaffaye/ftp"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/options"
	"github.com/c2fo/fixture/utils"
)

// Store implements fixture.Store over FTP. Containers are directories under Options.Root and objects are files.
type Store struct {
	mu      sync.Mutex
	client  Client
	options Options
}

var _ fixture.Store = (*Store)(nil)

// NewStore initializer returns a pointer to Store
func NewStore(opts ...options.Option[Store]) *Store {
	s := &Store{}
	options.ApplyOptions(s, opts...)
	return s
}

// Client returns the logged-in FTP client, connecting on first use.
func (s *Store) Client(ctx context.Context) (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		c, err := getClient(ctx, s.options)
		if err != nil {
			return nil, utils.WrapOperationError(utils.OpConnect, "", "", err, classify)
		}
		s.client = c
	}
	return s.client, nil
}

// ListContainers lists directories under the root.
func (s *Store) ListContainers(ctx context.Context) ([]string, error) {
	entries, err := s.list(ctx, s.options.root())
	if err != nil {
		return nil, utils.WrapOperationError(utils.OpListContainers, "", "", err, classify)
	}
	return filterEntries(entries, _ftp.EntryTypeFolder), nil
}

// CreateContainer creates a directory.
func (s *Store) CreateContainer(ctx context.Context, name string) error {
	err := s.do(ctx, name, func(c Client) error {
		return c.MakeDir(s.containerPath(name))
	})
	return utils.WrapOperationError(utils.OpCreateContainer, name, "", err, classify)
}

// DeleteContainer removes an empty directory.
func (s *Store) DeleteContainer(ctx context.Context, name string) error {
	err := s.do(ctx, name, func(c Client) error {
		return c.RemoveDir(s.containerPath(name))
	})
	return utils.WrapOperationError(utils.OpDeleteContainer, name, "", err, classify)
}

// ListObjects lists files in a container directory.
func (s *Store) ListObjects(ctx context.Context, container string) ([]string, error) {
	if err := utils.ValidateName(container); err != nil {
		return nil, utils.WrapOperationError(utils.OpListObjects, container, "", err, classify)
	}
	entries, err := s.list(ctx, s.containerPath(container))
	if err != nil {
		return nil, utils.WrapOperationError(utils.OpListObjects, container, "", err, classify)
	}
	return filterEntries(entries, _ftp.EntryTypeFile), nil
}

// PutObject stores data as a file.
func (s *Store) PutObject(ctx context.Context, container, key string, data []byte) error {
	err := s.doObject(ctx, container, key, func(c Client, p string) error {
		return c.Stor(p, bytes.NewReader(data))
	})
	return utils.WrapOperationError(utils.OpPutObject, container, key, err, classify)
}

// GetObject retrieves a file.
func (s *Store) GetObject(ctx context.Context, container, key string) ([]byte, error) {
	var data []byte
	err := s.doObject(ctx, container, key, func(c Client, p string) error {
		r, err := c.Retrieve(p)
		if err != nil {
			return err
		}
		data, err = io.ReadAll(r)
		// the transfer is only complete once the server acknowledges the close
		if cerr := r.Close(); err == nil {
			err = cerr
		}
		return err
	})
	if err != nil {
		return nil, utils.WrapOperationError(utils.OpGetObject, container, key, err, classify)
	}
	return data, nil
}

// DeleteObject deletes a file.
func (s *Store) DeleteObject(ctx context.Context, container, key string) error {
	err := s.doObject(ctx, container, key, func(c Client, p string) error {
		return c.Delete(p)
	})
	return utils.WrapOperationError(utils.OpDeleteObject, container, key, err, classify)
}

// Close ends the FTP session.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Quit()
	s.client = nil
	return err
}

func (s *Store) list(ctx context.Context, p string) ([]*_ftp.Entry, error) {
	client, err := s.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.List(p)
}

func (s *Store) do(ctx context.Context, container string, fn func(Client) error) error {
	if err := utils.ValidateName(container); err != nil {
		return err
	}
	client, err := s.Client(ctx)
	if err != nil {
		return err
	}
	return fn(client)
}

func (s *Store) doObject(ctx context.Context, container, key string, fn func(Client, string) error) error {
	if err := utils.ValidateName(key); err != nil {
		return err
	}
	return s.do(ctx, container, func(c Client) error {
		return fn(c, path.Join(s.containerPath(container), key))
	})
}

func (s *Store) containerPath(name string) string {
	return path.Join(s.options.root(), name)
}

func filterEntries(entries []*_ftp.Entry, t _ftp.EntryType) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e == nil || e.Type != t || e.Name == "." || e.Name == ".." {
			continue
		}
		names = append(names, path.Base(e.Name))
	}
	return utils.SortedNames(names)
}

// classify reports the FTP reply code as the status.
func classify(err error) (status int, code string) {
	var te *textproto.Error
	if errors.As(err, &te) {
		return te.Code, ""
	}
	return 0, ""
}
