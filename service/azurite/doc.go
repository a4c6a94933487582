/*
Package azurite is the Azurite blob storage service preset, registered as "azurite".

Azurite accepts deleting a container that still holds blobs, so scenarios that expect that to fail should not be
run against it.
*/
package azurite
