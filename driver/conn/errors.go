package conn

import (
	"errors"
	"fmt"
	"io"
	"net"
)

// --------------------------------------------------------------------------
// Error taxonomy
// --------------------------------------------------------------------------

// WriteError reports a failed transport write. The connection has been
// closed by the time the caller sees it.
type WriteError struct {
	Address ServerAddress
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("error sending message to %s: %v", e.Address, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ReadError reports a failed transport read for any reason other than a
// timeout or an interruption. The connection has been closed.
type ReadError struct {
	Address ServerAddress
	Err     error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("error receiving message from %s: %v", e.Address, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ReadTimeoutError reports that a transport read exceeded the configured
// read timeout. It is distinguished from ReadError so that callers can apply
// timeout-specific retry policy. The connection has been closed.
type ReadTimeoutError struct {
	Address ServerAddress
	Err     error
}

func (e *ReadTimeoutError) Error() string {
	return fmt.Sprintf("timeout receiving message from %s: %v", e.Address, e.Err)
}

func (e *ReadTimeoutError) Unwrap() error { return e.Err }

// InterruptedError reports that a blocking read was interrupted, typically
// because another goroutine closed the connection while the read was in
// flight. Surfaced distinctly so callers can tell deliberate cancellation
// from a genuine I/O failure.
type InterruptedError struct {
	Err error
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("interrupted while receiving message: %v", e.Err)
}

func (e *InterruptedError) Unwrap() error { return e.Err }

// InternalError reports a protocol violation (correlation mismatch,
// oversized message length, duplicate callback invocation) or an unexpected
// runtime fault. Non-recoverable for the affected connection.
type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *InternalError) Unwrap() error { return e.Err }

// --------------------------------------------------------------------------
// Translation
// --------------------------------------------------------------------------

// translateReadError maps a raw transport read error into the taxonomy. The
// caller has already closed the connection.
func translateReadError(address ServerAddress, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		metricReadTimeouts.Inc()
		return &ReadTimeoutError{Address: address, Err: err}
	}

	if errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return &InterruptedError{Err: err}
	}

	return &ReadError{Address: address, Err: err}
}
