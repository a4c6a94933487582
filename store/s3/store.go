package s3

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/options"
	"github.com/c2fo/fixture/utils"
)

// Store implements fixture.Store for S3-compatible services.
type Store struct {
	mu      sync.Mutex
	client  Client
	options Options
	logger  zerolog.Logger
}

var _ fixture.Store = (*Store)(nil)

// NewStore initializer returns a pointer to Store
func NewStore(opts ...options.Option[Store]) *Store {
	s := &Store{
		options: Options{},
		logger:  log.Logger,
	}

	// apply options
	options.ApplyOptions(s, opts...)

	return s
}

// Client returns the underlying aws s3 client, creating it lazily from Options if necessary.
func (s *Store) Client(ctx context.Context) (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		c, err := getClient(ctx, s.options, s.logger)
		if err != nil {
			return nil, utils.WrapOperationError(utils.OpConnect, "", "", err, classify)
		}
		s.client = c
	}
	return s.client, nil
}

// ListContainers lists bucket names.
func (s *Store) ListContainers(ctx context.Context) ([]string, error) {
	client, err := s.Client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, utils.WrapOperationError(utils.OpListContainers, "", "", err, classify)
	}

	names := make([]string, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		names = append(names, aws.ToString(b.Name))
	}
	return utils.SortedNames(names), nil
}

// CreateContainer creates a bucket. Outside us-east-1 the bucket is constrained to the client's region.
func (s *Store) CreateContainer(ctx context.Context, name string) error {
	client, err := s.Client(ctx)
	if err != nil {
		return err
	}

	in := &s3.CreateBucketInput{Bucket: aws.String(name)}
	if r := s.options.Region; r != "" && r != DefaultRegion {
		in.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(r),
		}
	}
	_, err = client.CreateBucket(ctx, in)
	return utils.WrapOperationError(utils.OpCreateContainer, name, "", err, classify)
}

// DeleteContainer deletes a bucket. S3 refuses to delete a bucket that still holds objects.
func (s *Store) DeleteContainer(ctx context.Context, name string) error {
	client, err := s.Client(ctx)
	if err != nil {
		return err
	}

	_, err = client.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(name)})
	return utils.WrapOperationError(utils.OpDeleteContainer, name, "", err, classify)
}

// ListObjects lists every key in a bucket.
func (s *Store) ListObjects(ctx context.Context, container string) ([]string, error) {
	client, err := s.Client(ctx)
	if err != nil {
		return nil, err
	}

	var keys []string
	p := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{Bucket: aws.String(container)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, utils.WrapOperationError(utils.OpListObjects, container, "", err, classify)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return utils.SortedNames(keys), nil
}

// PutObject uploads data with the SDK upload manager.
func (s *Store) PutObject(ctx context.Context, container, key string, data []byte) error {
	client, err := s.Client(ctx)
	if err != nil {
		return err
	}

	uploader := manager.NewUploader(client)
	_, err = uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	return utils.WrapOperationError(utils.OpPutObject, container, key, err, classify)
}

// GetObject downloads an object with the SDK download manager.
func (s *Store) GetObject(ctx context.Context, container, key string) ([]byte, error) {
	client, err := s.Client(ctx)
	if err != nil {
		return nil, err
	}

	buf := manager.NewWriteAtBuffer([]byte{})
	downloader := manager.NewDownloader(client)
	_, err = downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, utils.WrapOperationError(utils.OpGetObject, container, key, err, classify)
	}
	return buf.Bytes(), nil
}

// DeleteObject deletes a key. Deleting a missing key is not an error in S3.
func (s *Store) DeleteObject(ctx context.Context, container, key string) error {
	client, err := s.Client(ctx)
	if err != nil {
		return err
	}

	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(key),
	})
	return utils.WrapOperationError(utils.OpDeleteObject, container, key, err, classify)
}

// Close is a no-op; the SDK client holds no connections that need closing.
func (s *Store) Close() error {
	return nil
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

func classify(err error) (status int, code string) {
	var sc httpStatusCoder
	if errors.As(err, &sc) {
		status = sc.HTTPStatusCode()
	}
	var ae smithy.APIError
	if errors.As(err, &ae) {
		code = ae.ErrorCode()
	}
	return status, code
}
