package azure

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/options"
	"github.com/c2fo/fixture/utils"
)

// Store implements fixture.Store for Azure Blob Storage emulators such as Azurite.
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

// Client returns the underlying Client, creating it from Options if necessary.
func (s *Store) Client() (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		c, err := getClient(s.options)
		if err != nil {
			return nil, utils.WrapOperationError(utils.OpConnect, "", "", err, classify)
		}
		s.client = c
	}
	return s.client, nil
}

// ListContainers lists container names in the account.
func (s *Store) ListContainers(ctx context.Context) ([]string, error) {
	client, err := s.Client()
	if err != nil {
		return nil, err
	}

	var names []string
	pager := client.NewListContainersPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, utils.WrapOperationError(utils.OpListContainers, "", "", err, classify)
		}
		for _, item := range page.ContainerItems {
			if item != nil && item.Name != nil {
				names = append(names, *item.Name)
			}
		}
	}
	return utils.SortedNames(names), nil
}

// CreateContainer creates a container.
func (s *Store) CreateContainer(ctx context.Context, name string) error {
	client, err := s.Client()
	if err != nil {
		return err
	}
	_, err = client.CreateContainer(ctx, name, nil)
	return utils.WrapOperationError(utils.OpCreateContainer, name, "", err, classify)
}

// DeleteContainer deletes a container. Azure accepts deleting a container that still holds blobs.
func (s *Store) DeleteContainer(ctx context.Context, name string) error {
	client, err := s.Client()
	if err != nil {
		return err
	}
	_, err = client.DeleteContainer(ctx, name, nil)
	return utils.WrapOperationError(utils.OpDeleteContainer, name, "", err, classify)
}

// ListObjects lists every blob name in a container.
func (s *Store) ListObjects(ctx context.Context, container string) ([]string, error) {
	client, err := s.Client()
	if err != nil {
		return nil, err
	}

	var keys []string
	pager := client.NewListBlobsFlatPager(container, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, utils.WrapOperationError(utils.OpListObjects, container, "", err, classify)
		}
		if page.Segment == nil {
			continue
		}
		for _, item := range page.Segment.BlobItems {
			if item != nil && item.Name != nil {
				keys = append(keys, *item.Name)
			}
		}
	}
	return utils.SortedNames(keys), nil
}

// PutObject uploads data as a block blob.
func (s *Store) PutObject(ctx context.Context, container, key string, data []byte) error {
	client, err := s.Client()
	if err != nil {
		return err
	}
	_, err = client.UploadBuffer(ctx, container, key, data, nil)
	return utils.WrapOperationError(utils.OpPutObject, container, key, err, classify)
}

// GetObject downloads a blob.
func (s *Store) GetObject(ctx context.Context, container, key string) ([]byte, error) {
	client, err := s.Client()
	if err != nil {
		return nil, err
	}

	resp, err := client.DownloadStream(ctx, container, key, nil)
	if err != nil {
		return nil, utils.WrapOperationError(utils.OpGetObject, container, key, err, classify)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, utils.WrapOperationError(utils.OpGetObject, container, key, err, classify)
	}
	return data, nil
}

// DeleteObject deletes a blob.
func (s *Store) DeleteObject(ctx context.Context, container, key string) error {
	client, err := s.Client()
	if err != nil {
		return err
	}
	_, err = client.DeleteBlob(ctx, container, key, nil)
	return utils.WrapOperationError(utils.OpDeleteObject, container, key, err, classify)
}

// Close is a no-op; the azblob client holds no connections of its own.
func (s *Store) Close() error {
	return nil
}

func classify(err error) (status int, code string) {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode, respErr.ErrorCode
	}
	return 0, ""
}
