/*
Package minio is the MinIO service preset.

It starts minio/minio with `server /data`, waits for /minio/health/live on 9000/tcp and connects an S3 store with
path-style addressing, region us-east-1 and the minioadmin/minioadmin root credentials.

The preset registers itself as "minio". WithModule switches provisioning to the testcontainers minio module:

	svc := minio.New(service.WithModule())
*/
package minio
