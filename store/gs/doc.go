/*
Package gs - fixture.Store for Google Cloud Storage emulators such as fake-gcs-server.

The client is built with option.WithEndpoint pointing at the emulator's JSON API and option.WithoutAuthentication.
Emulators serve a self-signed certificate, so https endpoints skip verification.

	store := gs.NewStore(gs.WithOptions(gs.FromEndpoint(ep)))

For an in-process emulator pass its client directly:

	server := fakestorage.NewServer(nil)
	store := gs.NewStore(gs.WithClient(server.Client()))
*/
package gs
