// Package sftp is the atmoz/sftp service preset, registered as "sftp".
package sftp
