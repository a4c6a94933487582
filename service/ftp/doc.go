/*
Package ftp is the fauria/vsftpd service preset, registered as "ftp".

The passive port range is published on random host ports and the FTP store redirects data connections to them, so
several FTP fixtures can run side by side.
*/
package ftp
