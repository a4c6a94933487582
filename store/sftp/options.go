package sftp

import (
	"context"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/mitchellh/go-homedir"
	_sftp "github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/utils"
)

// DefaultRoot is the directory containers are created under. atmoz/sftp chroots users to their home, so this is
// the upload directory declared when the container starts.
const DefaultRoot = "/upload"

// DefaultDialTimeout bounds connecting and the ssh and sftp handshakes.
const DefaultDialTimeout = 10 * time.Second

// Options holds sftp-specific options.
type Options struct {
	// Address is host:port of the sftp server.
	Address        string `json:"address,omitempty"`
	User           string `json:"user,omitempty"`
	Password       string `json:"password,omitempty"`
	KeyFilePath    string `json:"keyFilePath,omitempty"`
	KeyPassphrase  string `json:"keyPassphrase,omitempty"`
	KnownHostsFile string `json:"knownHostsFile,omitempty"`
	// KnownHostsString is a single authorized_keys style host key line.
	KnownHostsString   string `json:"knownHostsString,omitempty"`
	KnownHostsCallback ssh.HostKeyCallback
	// Root is the directory holding containers.
	Root string `json:"root,omitempty"`
	// DialTimeout bounds connecting and the handshakes. The context passed to the store bounds them as well.
	DialTimeout time.Duration `json:"dialTimeout,omitempty"`
}

// FromEndpoint returns Options for a derived service endpoint. The user and password are carried in the endpoint's
// access key id and secret.
func FromEndpoint(ep fixture.ServiceEndpoint) Options {
	return Options{
		Address:  net.JoinHostPort(ep.Host, strconv.Itoa(ep.Port)),
		User:     ep.Credentials.AccessKeyID,
		Password: ep.Credentials.SecretAccessKey,
		Root:     DefaultRoot,
	}
}

func getClient(ctx context.Context, opts Options) (*_sftp.Client, *ssh.Client, error) {
	authMethods, err := getAuthMethods(opts)
	if err != nil {
		return nil, nil, err
	}

	hostKeyCallback, err := getHostKeyCallback(opts)
	if err != nil {
		return nil, nil, err
	}

	config := &ssh.ClientConfig{
		User:            opts.User,
		Auth:            authMethods,
		HostKeyCallback: hostKeyCallback,
	}

	timeout := opts.DialTimeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	config.Timeout = timeout

	conn, done, err := utils.DialHandshake(ctx, opts.Address, timeout)
	if err != nil {
		return nil, nil, err
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, opts.Address, config)
	if err != nil {
		done()
		_ = conn.Close()
		return nil, nil, err
	}
	sshClient := ssh.NewClient(c, chans, reqs)

	client, err := _sftp.NewClient(sshClient)
	done()
	if err != nil {
		_ = sshClient.Close()
		return nil, nil, err
	}

	return client, sshClient, nil
}

// getHostKeyCallback resolves host key verification. Emulator host keys are generated at container start, so with
// nothing configured any key is accepted.
func getHostKeyCallback(opts Options) (ssh.HostKeyCallback, error) {
	switch {
	case opts.KnownHostsCallback != nil:
		return opts.KnownHostsCallback, nil

	case opts.KnownHostsString != "":
		hostKey, _, _, _, err := ssh.ParseAuthorizedKey([]byte(opts.KnownHostsString))
		if err != nil {
			return nil, err
		}
		return ssh.FixedHostKey(hostKey), nil

	case opts.KnownHostsFile != "":
		file, err := homedir.Expand(opts.KnownHostsFile)
		if err != nil {
			return nil, err
		}
		// check first to prevent auto-vivification of file
		if _, err := os.Stat(file); err != nil {
			return nil, err
		}
		return knownhosts.New(file)

	default:
		return ssh.InsecureIgnoreHostKey(), nil //nolint:gosec
	}
}

func getAuthMethods(opts Options) ([]ssh.AuthMethod, error) {
	auth := make([]ssh.AuthMethod, 0)

	if opts.Password != "" {
		auth = append(auth, ssh.Password(opts.Password))
	}

	if opts.KeyFilePath != "" {
		secretKey, err := getKeyFile(opts.KeyFilePath, opts.KeyPassphrase)
		if err != nil {
			return []ssh.AuthMethod{}, err
		}
		auth = append(auth, ssh.PublicKeys(secretKey))
	}

	return auth, nil
}

func getKeyFile(file, passphrase string) (ssh.Signer, error) {
	file, err := homedir.Expand(file)
	if err != nil {
		return nil, err
	}
	buf, err := os.ReadFile(file) //nolint:gosec
	if err != nil {
		return nil, err
	}
	if passphrase != "" {
		return ssh.ParsePrivateKeyWithPassphrase(buf, []byte(passphrase))
	}
	return ssh.ParsePrivateKey(buf)
}

func (o Options) root() string {
	if o.Root == "" {
		return DefaultRoot
	}
	return utils.EnsureLeadingSlash(utils.RemoveTrailingSlash(o.Root))
}
