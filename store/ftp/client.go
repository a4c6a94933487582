package ftp

import (
	"io"

	_ftp "github.com/jlaffaye/ftp"
)

// Client is the set of FTP commands used by Store.
type Client interface {
	List(p string) ([]*_ftp.Entry, error)
	MakeDir(p string) error
	RemoveDir(p string) error
	Stor(p string, r io.Reader) error
	Retrieve(p string) (io.ReadCloser, error)
	Delete(p string) error
	Quit() error
}

// serverConn adapts *ftp.ServerConn to Client.
type serverConn struct {
	*_ftp.ServerConn
}

func (c serverConn) Retrieve(p string) (io.ReadCloser, error) {
	resp, err := c.Retr(p)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
