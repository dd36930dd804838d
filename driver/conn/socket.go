package conn

import (
	"fmt"
	"io"
	"net"
	"sync/atomic"
	"time"
)

// --------------------------------------------------------------------------
// net.Conn backed stream
// --------------------------------------------------------------------------

// socketStream adapts any net.Conn (plain TCP, TLS, pipes in tests) to the
// IStream interface. Transport-specific dialing and socket tuning live in
// the conn/tcp and conn/tls packages; this type only carries the shared
// read/write behavior.
type socketStream struct {
	conn        net.Conn
	address     ServerAddress
	readTimeout time.Duration
	closed      atomic.Bool
}

// NewStream wraps an established net.Conn as an IStream bound to the given
// address. readTimeout is applied as a deadline per blocking read; zero
// means no deadline.
func NewStream(netConn net.Conn, address ServerAddress, readTimeout time.Duration) IStream {
	return &socketStream{
		conn:        netConn,
		address:     address,
		readTimeout: readTimeout,
	}
}

func (s *socketStream) EnsureOpen() error {
	if s.conn == nil {
		return fmt.Errorf("stream to %s was never connected", s.address)
	}
	if s.closed.Load() {
		return fmt.Errorf("stream to %s is closed", s.address)
	}
	return nil
}

func (s *socketStream) Write(buffers net.Buffers) error {
	// writev-style: header and body go out in one syscall where possible
	_, err := buffers.WriteTo(s.conn)
	return err
}

func (s *socketStream) ReadFull(buf []byte) error {
	if s.readTimeout > 0 {
		if err := s.conn.SetReadDeadline(time.Now().Add(s.readTimeout)); err != nil {
			return err
		}
	}
	_, err := io.ReadFull(s.conn, buf)
	return err
}

func (s *socketStream) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.conn.Close()
}

func (s *socketStream) Address() ServerAddress {
	return s.address
}
