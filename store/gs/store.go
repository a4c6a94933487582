package gs

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/options"
	"github.com/c2fo/fixture/utils"
)

// Store implements fixture.Store for Google Cloud Storage emulators.
type Store struct {
	mu      sync.Mutex
	client  *storage.Client
	options Options
}

var _ fixture.Store = (*Store)(nil)

// NewStore initializer returns a pointer to Store
func NewStore(opts ...options.Option[Store]) *Store {
	s := &Store{
		options: Options{ProjectID: DefaultProjectID},
	}
	options.ApplyOptions(s, opts...)
	if s.options.ProjectID == "" {
		s.options.ProjectID = DefaultProjectID
	}
	return s
}

// Client returns the underlying storage client, creating it lazily from Options if necessary.
func (s *Store) Client(ctx context.Context) (*storage.Client, error) {
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

// ListContainers lists bucket names in the configured project.
func (s *Store) ListContainers(ctx context.Context) ([]string, error) {
	client, err := s.Client(ctx)
	if err != nil {
		return nil, err
	}

	var names []string
	it := client.Buckets(ctx, s.options.ProjectID)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, utils.WrapOperationError(utils.OpListContainers, "", "", err, classify)
		}
		names = append(names, attrs.Name)
	}
	return utils.SortedNames(names), nil
}

// CreateContainer creates a bucket.
func (s *Store) CreateContainer(ctx context.Context, name string) error {
	client, err := s.Client(ctx)
	if err != nil {
		return err
	}
	err = client.Bucket(name).Create(ctx, s.options.ProjectID, nil)
	return utils.WrapOperationError(utils.OpCreateContainer, name, "", err, classify)
}

// DeleteContainer deletes a bucket.
func (s *Store) DeleteContainer(ctx context.Context, name string) error {
	client, err := s.Client(ctx)
	if err != nil {
		return err
	}
	err = client.Bucket(name).Delete(ctx)
	return utils.WrapOperationError(utils.OpDeleteContainer, name, "", err, classify)
}

// ListObjects lists every object name in a bucket.
func (s *Store) ListObjects(ctx context.Context, container string) ([]string, error) {
	client, err := s.Client(ctx)
	if err != nil {
		return nil, err
	}

	var keys []string
	it := client.Bucket(container).Objects(ctx, nil)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, utils.WrapOperationError(utils.OpListObjects, container, "", err, classify)
		}
		keys = append(keys, attrs.Name)
	}
	return utils.SortedNames(keys), nil
}

// PutObject writes data to an object.
func (s *Store) PutObject(ctx context.Context, container, key string, data []byte) error {
	client, err := s.Client(ctx)
	if err != nil {
		return err
	}

	w := client.Bucket(container).Object(key).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return utils.WrapOperationError(utils.OpPutObject, container, key, err, classify)
	}
	// the upload is only committed, and its errors only reported, on Close
	return utils.WrapOperationError(utils.OpPutObject, container, key, w.Close(), classify)
}

// GetObject reads an object.
func (s *Store) GetObject(ctx context.Context, container, key string) ([]byte, error) {
	client, err := s.Client(ctx)
	if err != nil {
		return nil, err
	}

	r, err := client.Bucket(container).Object(key).NewReader(ctx)
	if err != nil {
		return nil, utils.WrapOperationError(utils.OpGetObject, container, key, err, classify)
	}
	defer func() { _ = r.Close() }()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, utils.WrapOperationError(utils.OpGetObject, container, key, err, classify)
	}
	return data, nil
}

// DeleteObject deletes an object.
func (s *Store) DeleteObject(ctx context.Context, container, key string) error {
	client, err := s.Client(ctx)
	if err != nil {
		return err
	}
	err = client.Bucket(container).Object(key).Delete(ctx)
	return utils.WrapOperationError(utils.OpDeleteObject, container, key, err, classify)
}

// Close closes the storage client if one was created.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}

func classify(err error) (status int, code string) {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		status = gerr.Code
		if len(gerr.Errors) > 0 {
			code = gerr.Errors[0].Reason
		}
		return status, code
	}
	switch {
	case errors.Is(err, storage.ErrBucketNotExist):
		return http.StatusNotFound, "BucketNotExist"
	case errors.Is(err, storage.ErrObjectNotExist):
		return http.StatusNotFound, "ObjectNotExist"
	}
	return 0, ""
}
