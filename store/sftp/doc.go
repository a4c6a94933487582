/*
Package sftp - fixture.Store over SFTP.

Containers are directories under Options.Root and objects are the regular files within them. Names must be single
path segments.

Host keys are verified against KnownHostsCallback, KnownHostsString or KnownHostsFile, in that order. With none set
any host key is accepted, which suits throwaway emulator containers.

	store := sftp.NewStore(sftp.WithOptions(sftp.FromEndpoint(ep)))
*/
package sftp
