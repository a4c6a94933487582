// Package scenario holds ready-made step plans for storage services.
package scenario

import (
	"context"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/runner"
)

const (
	// DefaultContainer is the bucket or directory the lifecycle creates.
	DefaultContainer = "test-bucket"
	// DefaultKey is the object the lifecycle uploads.
	DefaultKey = "test-file.pdf"
)

// DefaultPayload is a small PDF-shaped document.
var DefaultPayload = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

// Step names of the lifecycle.
const (
	StepListContainers  = "list containers"
	StepCreateContainer = "create container"
	StepPutObject       = "put object"
	StepGetObject       = "get object"
	StepDeleteNonEmpty  = "delete non-empty container"
	StepDeleteObject    = "delete object"
	StepDeleteContainer = "delete container"
)

// Config parameterizes BucketLifecycle. Zero values take the defaults above.
type Config struct {
	Container string
	Key       string
	Payload   []byte
	// CheckNonEmptyDelete adds a step asserting that deleting a container that still holds an object is rejected.
	// Not every service refuses it, so it is off by default.
	CheckNonEmptyDelete bool
}

func (c Config) withDefaults() Config {
	if c.Container == "" {
		c.Container = DefaultContainer
	}
	if c.Key == "" {
		c.Key = DefaultKey
	}
	if c.Payload == nil {
		c.Payload = DefaultPayload
	}
	return c
}

// BucketLifecycle returns the create, upload, read back, delete sequence against a fresh service.
func BucketLifecycle(cfg Config) []runner.Step {
	cfg = cfg.withDefaults()
	bucket, key := cfg.Container, cfg.Key

	listContainers := func(ctx context.Context, sess *fixture.Session) (any, error) {
		return sess.Store.ListContainers(ctx)
	}
	listObjects := func(ctx context.Context, sess *fixture.Session) (any, error) {
		return sess.Store.ListObjects(ctx, bucket)
	}

	steps := []runner.Step{
		{
			Name:    StepListContainers,
			Observe: listContainers,
			Expect:  runner.Empty(),
		},
		{
			Name:     StepCreateContainer,
			Requires: []string{StepListContainers},
			Action: func(ctx context.Context, sess *fixture.Session) error {
				return sess.Store.CreateContainer(ctx, bucket)
			},
			Observe: listContainers,
			Expect:  runner.ContainsOnce(bucket),
		},
		{
			Name:     StepPutObject,
			Requires: []string{StepCreateContainer},
			Action: func(ctx context.Context, sess *fixture.Session) error {
				return sess.Store.PutObject(ctx, bucket, key, cfg.Payload)
			},
			Observe: listObjects,
			Expect:  runner.Contains(key),
		},
		{
			Name:     StepGetObject,
			Requires: []string{StepPutObject},
			Observe: func(ctx context.Context, sess *fixture.Session) (any, error) {
				return sess.Store.GetObject(ctx, bucket, key)
			},
			Expect: runner.BytesEqual(cfg.Payload),
		},
	}

	if cfg.CheckNonEmptyDelete {
		steps = append(steps, runner.Step{
			Name:     StepDeleteNonEmpty,
			Requires: []string{StepPutObject},
			Action: runner.Fails(func(ctx context.Context, sess *fixture.Session) error {
				return sess.Store.DeleteContainer(ctx, bucket)
			}),
			Observe: listContainers,
			Expect:  runner.Contains(bucket),
		})
	}

	return append(steps,
		runner.Step{
			Name:     StepDeleteObject,
			Requires: []string{StepPutObject},
			Action: func(ctx context.Context, sess *fixture.Session) error {
				return sess.Store.DeleteObject(ctx, bucket, key)
			},
			Observe: listObjects,
			Expect:  runner.Excludes(key),
		},
		runner.Step{
			Name:     StepDeleteContainer,
			Requires: []string{StepDeleteObject},
			Action: func(ctx context.Context, sess *fixture.Session) error {
				return sess.Store.DeleteContainer(ctx, bucket)
			},
			Observe: listContainers,
			Expect:  runner.Excludes(bucket),
		},
	)
}
