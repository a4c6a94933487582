/*
Package provision starts fixture containers on a docker daemon with testcontainers-go.

Docker turns a fixture.Request into a generic container request. Services that are better served by a
testcontainers module wrap the module's Run function in a Func:

	p := provision.Func(func(ctx context.Context, req fixture.Request) (fixture.Container, error) {
		ctr, err := minio.Run(ctx, req.Image)
		return provision.Wrap(ctr), err
	})

Container readiness is bounded by the request's ready timeout. Container output is logged through zerolog at debug
level.
*/
package provision
