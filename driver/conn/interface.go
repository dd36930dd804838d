package conn

import (
	"net"
)

// --------------------------------------------------------------------------
// Interface Definitions for dependency injection
// --------------------------------------------------------------------------

// IStream defines the interface for transport-specific stream operations.
// The connection state machine depends only on this interface; concrete
// implementations exist for plain TCP, TLS, and in-memory test streams.
type IStream interface {
	// EnsureOpen fails fast if the underlying resource cannot be used,
	// e.g. because it was never connected or has been closed
	EnsureOpen() error

	// Write writes a sequence of buffers to the transport as one message
	Write(buffers net.Buffers) error

	// ReadFull reads until buf is completely full. A short read is an error.
	// Implementations apply their configured read timeout per call.
	ReadFull(buf []byte) error

	// Close releases the underlying resource. A goroutine blocked in Write
	// or ReadFull is unblocked and receives an error.
	Close() error

	// Address returns the server endpoint this stream is bound to
	Address() ServerAddress
}

// IConnection is the blocking connection surface exposed to higher layers
// (pooling, command execution). One connection carries one outstanding
// request/response exchange at a time.
type IConnection interface {
	// SendMessage writes a sequence of pre-encoded buffers as one message
	SendMessage(buffers net.Buffers) error

	// ReceiveMessage blocks until exactly one reply matching the settings
	// has been read. Ownership of the returned buffers transfers to the caller.
	ReceiveMessage(settings ResponseSettings) (*ResponseBuffers, error)

	// Close closes the connection. Closing is idempotent and terminal.
	Close()

	// IsClosed reports the lifecycle state. Safe to call from any goroutine,
	// including while another goroutine is blocked in ReceiveMessage.
	IsClosed() bool

	// Address returns the server endpoint of this connection
	Address() ServerAddress
}

// SingleResultCallback receives the outcome of one asynchronous receive.
// Exactly one of result and err is populated, never neither and never both.
type SingleResultCallback func(result *ResponseBuffers, err error)

// SendCallback receives the outcome of one asynchronous send: nil on
// success, the translated write error otherwise.
type SendCallback func(err error)

// IAsyncConnection is the callback-driven connection surface. Completion
// callbacks may be invoked from a different goroutine than the caller's.
type IAsyncConnection interface {
	// SendMessageAsync writes the buffers and reports the outcome to callback
	SendMessageAsync(buffers net.Buffers, callback SendCallback)

	// ReceiveMessageAsync registers a callback fired when the reply matching
	// the settings arrives or the read fails
	ReceiveMessageAsync(settings ResponseSettings, callback SingleResultCallback)

	// Close closes the connection and fails all pending callbacks
	Close()

	// IsClosed reports the lifecycle state
	IsClosed() bool
}
