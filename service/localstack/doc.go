// Package localstack is the LocalStack S3 service preset, registered as "localstack".
package localstack
