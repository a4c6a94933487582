/*
Package fixture provides disposable storage services for integration tests.

A test asks for a service by name (MinIO, LocalStack, Azurite, fake-gcs-server, SFTP or FTP), gets a freshly started
container on a random host port, talks to it through a small protocol-agnostic Store, and has the container stopped
afterwards no matter how the test ended.

Philosophy

Storage integration tests tend to hardcode a port, share one long-lived emulator between runs, and leave buckets
behind when an assertion fails halfway. The next run then starts from dirty state and fails for reasons unrelated to
the code under test.

What we needed/wanted was the following:
  * one container per run, never reused, with the host port picked by the docker daemon
  * a bounded wait for readiness instead of sleeping and hoping
  * teardown on every exit path, including a panicking step, that never masks the real failure
  * the same bucket/object scenario against every service, so S3, Azure blob, GCS, SFTP and FTP are checked alike
  * a report that says which step failed, what was expected and what was observed

Usage

The runner provisions a service, connects a store, waits until the store answers, and runs the steps in order:

  import (
      "github.com/c2fo/fixture/fixturetest"
      "github.com/c2fo/fixture/scenario"
      "github.com/c2fo/fixture/service/minio"
  )

  func TestMinio(t *testing.T) {
      fixturetest.Run(t, minio.New(), scenario.BucketLifecycle(scenario.Config{}))
  }

Steps are plain values. Each one performs an action, observes the resulting state and checks the observation:

  step := runner.Step{
      Name: "create container",
      Action: func(ctx context.Context, sess *fixture.Session) error {
          return sess.Store.CreateContainer(ctx, "test-bucket")
      },
      Observe: func(ctx context.Context, sess *fixture.Session) (any, error) {
          return sess.Store.ListContainers(ctx)
      },
      Expect: runner.ContainsOnce("test-bucket"),
  }

Without the runner, Fixture gives direct control over a container:

  fx := fixture.New(provision.NewDocker())
  h, err := fx.Acquire(ctx, minio.New().Request())
  if err != nil {
      return err
  }
  defer fx.Release(ctx, h)

Errors

Provisioning failures are *ProvisionError and abort a run. Rejected remote calls are *OperationError and assertion
mismatches are *AssertionError; both fail only their own step. A container that cannot be stopped yields a
*TeardownError which is logged and kept on the report but never fails the run.

Services

Presets live under service/ and register themselves by name. Import service/all to register every one of them.
*/
package fixture
