package conn

import (
	"time"

	"github.com/docwire/docwire/driver/buffer"
	"github.com/docwire/docwire/driver/wire"
)

// --------------------------------------------------------------------------
// Per-call expectation and result types
// --------------------------------------------------------------------------

// ResponseSettings carries the caller's expectations for one receive: the
// correlation id the reply must answer and the largest message length the
// caller is willing to accept. One ResponseSettings exists per outstanding
// request.
type ResponseSettings struct {
	// ResponseTo is the request id the expected reply must correlate to
	ResponseTo int32

	// MaxMessageLength bounds the reply's declared message length. A reply
	// exceeding it poisons the connection.
	MaxMessageLength int32
}

// ResponseBuffers is one received reply: the parsed header, the body buffer
// when the reply carries documents (nil otherwise), and the wall time spent
// waiting for it. Ownership transfers to the caller of ReceiveMessage, who
// must pass it to Release when done.
type ResponseBuffers struct {
	Header  wire.ReplyHeader
	Body    []byte
	Elapsed time.Duration
}

// Release returns the body buffer, if any, to the given source. Safe to call
// on a reply without a body.
func (r *ResponseBuffers) Release(source buffer.ISource) {
	if r.Body != nil {
		source.Release(r.Body)
		r.Body = nil
	}
}
