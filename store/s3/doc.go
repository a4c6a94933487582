/*
Package s3 - fixture.Store for S3-compatible services (MinIO, LocalStack) using AWS SDK for Go v2.

# Usage

Point a store at a derived endpoint:

	import "github.com/c2fo/fixture/store/s3"

	func Connect(ep fixture.ServiceEndpoint) fixture.Store {
	    return s3.NewStore(s3.WithOptions(s3.FromEndpoint(ep)))
	}

Or pass explicit options:

	store := s3.NewStore(
	    s3.WithOptions(
	        s3.Options{
	            AccessKeyID:     "minioadmin",
	            SecretAccessKey: "minioadmin",
	            Region:          "us-east-1",
	            Endpoint:        "http://localhost:49153",
	            ForcePathStyle:  true,
	        },
	    ),
	)

To pass a specific client, for instance one already configured elsewhere:

	store := s3.NewStore(s3.WithClient(client))

# Addressing

ForcePathStyle must be set for container endpoints. A host:port endpoint is not a DNS domain, so virtual-hosted
style requests (bucket.host:port) cannot resolve.

# Retries

The SDK's default retryer is used unchanged.

# Errors

Every remote failure is returned as a *fixture.OperationError carrying the HTTP status and the S3 error code, ie:

	delete container test-bucket (status 409, BucketNotEmpty): ...
*/
package s3
