// Package transfer mirrors a remote FTP/FTPS directory tree into a local
// snapshot directory, tracking a per-file outcome instead of failing the whole
// run on the first bad file.
package transfer

import "io"

// Entry is one item of a remote directory listing.
type Entry struct {
	Name string
	Size int64
	Dir  bool
}

// Client is the capability set the mirror engine needs from a server
// connection. The engine works identically over plaintext FTP and FTPS; the
// handshake differences live entirely in Dial.
type Client interface {
	// List enumerates a remote directory. Dot entries are already filtered.
	List(path string) ([]Entry, error)
	// Download opens a remote file for reading. The caller closes it.
	Download(path string) (io.ReadCloser, error)
	Close() error
}
