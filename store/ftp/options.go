package ftp

import (
	"context"
	"crypto/tls"
	"net"
	"strconv"
	"strings"
	"time"

	_ftp "github.com/jlaffaye/ftp"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/utils"
)

const (
	// DefaultRoot is the directory containers are created under.
	DefaultRoot = "/"
	// DefaultDialTimeout bounds connecting to the control port, the greeting and the login.
	DefaultDialTimeout = 10 * time.Second
)

// Options holds ftp-specific options.
type Options struct {
	// Address is host:port of the control connection.
	Address  string `json:"address,omitempty"`
	User     string `json:"user,omitempty"`
	Password string `json:"password,omitempty"`
	// Protocol is one of ftp (default), ftps or ftpes.
	Protocol    string        `json:"protocol,omitempty"`
	DisableEPSV bool          `json:"disableEPSV,omitempty"`
	DialTimeout time.Duration `json:"dialTimeout,omitempty"`
	Root        string        `json:"root,omitempty"`
	// DataPorts maps passive data ports announced by the server to the ports actually reachable from the client.
	// Containers publish their passive range on random host ports, so data connections are redirected through it.
	DataPorts map[int]int `json:"dataPorts,omitempty"`
}

// FromEndpoint returns Options for a derived service endpoint. The user and password are carried in the endpoint's
// access key id and secret, and every extra mapped port is used as a data port.
func FromEndpoint(ep fixture.ServiceEndpoint) Options {
	dataPorts := make(map[int]int, len(ep.Ports))
	for containerPort, hostPort := range ep.Ports {
		num, proto, _ := strings.Cut(containerPort, "/")
		if proto != "" && proto != "tcp" {
			continue
		}
		p, err := strconv.Atoi(num)
		if err != nil || hostPort == ep.Port {
			continue
		}
		dataPorts[p] = hostPort
	}
	return Options{
		Address:   ep.Address(),
		User:      ep.Credentials.AccessKeyID,
		Password:  ep.Credentials.SecretAccessKey,
		Root:      DefaultRoot,
		DataPorts: dataPorts,
	}
}

func getClient(ctx context.Context, opts Options) (Client, error) {
	timeout := opts.DialTimeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}

	// the greeting and login are read on this connection, so it carries the handshake bound
	conn, done, err := utils.DialHandshake(ctx, opts.Address, timeout)
	if err != nil {
		return nil, err
	}
	control := conn

	dialOptions := []_ftp.DialOption{
		_ftp.DialWithTimeout(timeout),
		_ftp.DialWithDisabledEPSV(opts.DisableEPSV),
	}
	if len(opts.DataPorts) > 0 {
		dialOptions = append(dialOptions, _ftp.DialWithDialFunc(opts.dialFunc(timeout)))
	}

	switch opts.Protocol {
	case "ftps":
		tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12, InsecureSkipVerify: true} //nolint:gosec
		control = tls.Client(conn, tlsConfig)
		dialOptions = append(dialOptions, _ftp.DialWithTLS(tlsConfig))
	case "ftpes":
		dialOptions = append(dialOptions, _ftp.DialWithExplicitTLS(&tls.Config{MinVersion: tls.VersionTLS12, InsecureSkipVerify: true})) //nolint:gosec
	}
	dialOptions = append(dialOptions, _ftp.DialWithNetConn(control))

	c, err := _ftp.Dial(opts.Address, dialOptions...)
	if err != nil {
		done()
		_ = control.Close()
		return nil, err
	}
	if err := c.Login(opts.User, opts.Password); err != nil {
		done()
		_ = c.Quit()
		return nil, err
	}
	done()

	return serverConn{c}, nil
}

// dialFunc rewrites data connections to the control host and the remapped data port. The control connection is
// dialed separately and never passes through here.
func (o Options) dialFunc(timeout time.Duration) func(network, address string) (net.Conn, error) {
	controlHost, _, _ := net.SplitHostPort(o.Address)
	dialer := &net.Dialer{Timeout: timeout}
	return func(network, address string) (net.Conn, error) {
		if address == o.Address {
			return dialer.Dial(network, address)
		}
		return dialer.Dial(network, o.remap(controlHost, address))
	}
}

func (o Options) remap(controlHost, address string) string {
	_, portStr, err := net.SplitHostPort(address)
	if err != nil {
		return address
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return address
	}
	if mapped, ok := o.DataPorts[port]; ok {
		return net.JoinHostPort(controlHost, strconv.Itoa(mapped))
	}
	return address
}

func (o Options) root() string {
	if o.Root == "" {
		return DefaultRoot
	}
	return utils.EnsureLeadingSlash(o.Root)
}
