/*
Package ftp - fixture.Store over FTP.

Containers are directories under Options.Root and objects are files within them. Transfers use passive mode; since
a container publishes its passive port range on random host ports, Options.DataPorts redirects data connections to
the published ports.

	store := ftp.NewStore(ftp.WithOptions(ftp.FromEndpoint(ep)))

FTP reply codes, ie: 550, are reported as fixture.OperationError.StatusCode.
*/
package ftp
