package wire

import (
	"encoding/binary"
	"fmt"
	"net"
	"sync/atomic"
)

// --------------------------------------------------------------------------
// Request framing
// --------------------------------------------------------------------------

const (
	// RequestHeaderLength is the fixed size in bytes of the header that
	// starts every outbound message.
	RequestHeaderLength = 16
)

// Op codes carried in the request header. The connection core never
// interprets them; they travel with the frame for the server's benefit.
const (
	OpReply = 1
	OpQuery = 2004
)

// requestIDSequence generates process-wide unique correlation ids
var requestIDSequence atomic.Int32

// NextRequestID returns the next correlation id. Ids start at 1 and are
// unique per process, which is sufficient because correlation only has to
// hold per connection with one outstanding exchange at a time.
func NextRequestID() int32 {
	return requestIDSequence.Add(1)
}

// EncodeRequestHeader writes a request header into buf, which must hold at
// least RequestHeaderLength bytes. The total length must include the header
// itself.
func EncodeRequestHeader(buf []byte, totalLength, requestID, opCode int32) {
	binary.LittleEndian.PutUint32(buf[0:4], uint32(totalLength))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(requestID))
	binary.LittleEndian.PutUint32(buf[8:12], 0) // response-to, always 0 on requests
	binary.LittleEndian.PutUint32(buf[12:16], uint32(opCode))
}

// RequestHeader is the framing metadata that starts every outbound message.
type RequestHeader struct {
	MessageLength int32
	RequestID     int32
	ResponseTo    int32
	OpCode        int32
}

// ParseRequestHeader parses a request header from the given buffer, which
// must hold at least RequestHeaderLength bytes. Used by server-side tooling
// (the echo diagnostic server, simulated streams in tests).
func ParseRequestHeader(buf []byte) (RequestHeader, error) {
	if len(buf) < RequestHeaderLength {
		return RequestHeader{}, fmt.Errorf("request header requires %d bytes, got %d", RequestHeaderLength, len(buf))
	}

	header := RequestHeader{
		MessageLength: int32(binary.LittleEndian.Uint32(buf[0:4])),
		RequestID:     int32(binary.LittleEndian.Uint32(buf[4:8])),
		ResponseTo:    int32(binary.LittleEndian.Uint32(buf[8:12])),
		OpCode:        int32(binary.LittleEndian.Uint32(buf[12:16])),
	}

	if header.MessageLength < RequestHeaderLength {
		return RequestHeader{}, fmt.Errorf("message length %d is smaller than the header length %d", header.MessageLength, RequestHeaderLength)
	}

	return header, nil
}

// FrameRequest frames an already encoded body as one outbound message.
// The returned net.Buffers share the body slice; header and body are written
// with a single writev-style call by the stream.
func FrameRequest(requestID, opCode int32, body []byte) net.Buffers {
	header := make([]byte, RequestHeaderLength)
	EncodeRequestHeader(header, int32(RequestHeaderLength+len(body)), requestID, opCode)
	return net.Buffers{header, body}
}
