/*
Package azure - fixture.Store for Azure Blob Storage emulators.

Containers map to blob containers and objects to block blobs. Authentication uses a shared key:

	opts, err := azure.FromEndpoint(ep)
	store := azure.NewStore(azure.WithOptions(opts))

Unlike S3, deleting a container that still holds blobs succeeds.
*/
package azure
