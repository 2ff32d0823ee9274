package sandbox

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Dialer establishes the collaborator connection. It is invoked at most once
// per Conn, on the first operation that needs the sandbox.
type Dialer func(ctx context.Context) (FileSystem, Git, error)

// Conn holds the lazily-established collaborator handles. Ensure is safe to
// call repeatedly and from concurrent goroutines; the dial happens exactly
// once and its outcome, success or failure, sticks for the Conn's lifetime.
type Conn struct {
	dial Dialer

	once sync.Once
	fs   FileSystem
	git  Git
	err  error
}

// NewConn returns a Conn that dials on first use.
func NewConn(dial Dialer) *Conn {
	return &Conn{dial: dial}
}

// Connected returns a Conn wrapping already-established collaborators.
// Used by the CLI and tests where the sandbox is local.
func Connected(fs FileSystem, git Git) *Conn {
	return NewConn(func(context.Context) (FileSystem, Git, error) {
		return fs, git, nil
	})
}

// Ensure establishes the connection if it has not been established yet.
func (c *Conn) Ensure(ctx context.Context) error {
	c.once.Do(func() {
		logrus.Debug("establishing sandbox connection")
		c.fs, c.git, c.err = c.dial(ctx)
		if c.err != nil {
			logrus.WithError(c.err).Debug("sandbox connection failed")
		}
	})
	return c.err
}

// FS returns the filesystem collaborator. Only valid after a successful Ensure.
func (c *Conn) FS() FileSystem {
	return c.fs
}

// Git returns the git collaborator. Only valid after a successful Ensure.
func (c *Conn) Git() Git {
	return c.git
}
