package conn

import (
	"sync/atomic"

	"github.com/docwire/docwire/driver/buffer"
)

// --------------------------------------------------------------------------
// Exactly-once response callback adapter
// --------------------------------------------------------------------------

// ResponseCallback wraps a caller-supplied SingleResultCallback so that no
// matter how many completion paths the async transport signals from, the
// wrapped callback fires exactly once, and the outbound buffer used to send
// the original request is released before that single firing.
//
// One ResponseCallback exists per outstanding async request and is discarded
// after firing.
type ResponseCallback struct {
	closed        atomic.Bool
	callback      SingleResultCallback
	writtenBuffer []byte
	source        buffer.ISource
	requestID     int32
}

// NewResponseCallback creates the adapter. writtenBuffer may be nil when the
// caller keeps ownership of the outbound buffers; otherwise it is released
// to source exactly once, before the callback observes completion.
func NewResponseCallback(callback SingleResultCallback, writtenBuffer []byte, source buffer.ISource, requestID int32) *ResponseCallback {
	return &ResponseCallback{
		callback:      callback,
		writtenBuffer: writtenBuffer,
		source:        source,
		requestID:     requestID,
	}
}

// RequestID returns the correlation id of the request this callback answers.
func (c *ResponseCallback) RequestID() int32 {
	return c.requestID
}

// OnResult is the sole entry point, invoked by the async transport when a
// read completes or fails. Exactly one of response and callbackErr must be
// populated; that pair is forwarded unchanged to the wrapped callback.
//
// A second invocation does not fire again: it returns an *InternalError,
// because a duplicate completion signal indicates a bug in the transport and
// must not be silently swallowed.
func (c *ResponseCallback) OnResult(response *ResponseBuffers, callbackErr error) error {
	if !c.closed.CompareAndSwap(false, true) {
		return &InternalError{Msg: "callback must not be invoked more than once"}
	}

	// The outbound buffer stays alive for the whole round trip; it is
	// released here, exactly once, before user code runs
	if c.writtenBuffer != nil {
		c.source.Release(c.writtenBuffer)
		c.writtenBuffer = nil
	}

	if response != nil {
		c.callback(response, nil)
	} else {
		c.callback(nil, callbackErr)
	}
	return nil
}
