package transfer

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"

	"github.com/BrunoTulio/logr"
	"github.com/jlaffaye/ftp"

	"github.com/automationz/ftpsnap/internal/config"
)

type ftpClient struct {
	conn *ftp.ServerConn
}

// Dial connects and authenticates against the profile's server. TLS selects
// FTPS with an explicit AUTH TLS handshake; everything past this point is
// protocol-agnostic.
func Dial(ctx context.Context, profile *config.Profile, log logr.Logger) (Client, error) {
	password, err := profile.RevealPassword()
	if err != nil {
		return nil, err
	}

	if !profile.IsPassive() {
		log.Warnf("Profile %s: active mode is not supported, using passive transfers", profile.Name)
	}

	opts := []ftp.DialOption{
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(profile.Timeout()),
	}
	if profile.TLS {
		opts = append(opts, ftp.DialWithExplicitTLS(&tls.Config{
			ServerName: profile.Host,
			MinVersion: tls.VersionTLS12,
		}))
	}

	conn, err := ftp.Dial(profile.Addr(), opts...)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", profile.Addr(), err)
	}

	if err := conn.Login(profile.Username, password); err != nil {
		_ = conn.Quit()
		return nil, fmt.Errorf("login %s@%s: %w", profile.Username, profile.Addr(), err)
	}

	return &ftpClient{conn: conn}, nil
}

func (c *ftpClient) List(path string) ([]Entry, error) {
	raw, err := c.conn.List(path)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, e := range raw {
		if e.Name == "." || e.Name == ".." {
			continue
		}
		entries = append(entries, Entry{
			Name: e.Name,
			Size: int64(e.Size),
			Dir:  e.Type == ftp.EntryTypeFolder,
		})
	}
	return entries, nil
}

func (c *ftpClient) Download(path string) (io.ReadCloser, error) {
	resp, err := c.conn.Retr(path)
	if err != nil {
		return nil, fmt.Errorf("retr %s: %w", path, err)
	}
	return resp, nil
}

func (c *ftpClient) Close() error {
	return c.conn.Quit()
}
