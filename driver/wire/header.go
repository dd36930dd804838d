package wire

import (
	"encoding/binary"
	"fmt"
)

// --------------------------------------------------------------------------
// Reply Header
// --------------------------------------------------------------------------

const (
	// ReplyHeaderLength is the fixed size in bytes of the header that starts
	// every reply message.
	ReplyHeaderLength = 16
)

// ReplyHeader is the framing metadata parsed from the first
// ReplyHeaderLength bytes of a reply. All fields are transmitted as 4-byte
// little-endian signed integers, in field order.
type ReplyHeader struct {
	// MessageLength is the total length of the reply in bytes, header included
	MessageLength int32
	// RequestID is the server's own id for this reply message
	RequestID int32
	// ResponseTo is the id of the request this reply answers (the correlation id)
	ResponseTo int32
	// NumberReturned is the count of documents contained in the reply body
	NumberReturned int32
}

// ParseReplyHeader parses a reply header from the given buffer. The buffer
// must hold at least ReplyHeaderLength bytes; extra bytes are ignored.
func ParseReplyHeader(buf []byte) (ReplyHeader, error) {
	if len(buf) < ReplyHeaderLength {
		return ReplyHeader{}, fmt.Errorf("reply header requires %d bytes, got %d", ReplyHeaderLength, len(buf))
	}

	header := ReplyHeader{
		MessageLength:  int32(binary.LittleEndian.Uint32(buf[0:4])),
		RequestID:      int32(binary.LittleEndian.Uint32(buf[4:8])),
		ResponseTo:     int32(binary.LittleEndian.Uint32(buf[8:12])),
		NumberReturned: int32(binary.LittleEndian.Uint32(buf[12:16])),
	}

	if header.MessageLength < ReplyHeaderLength {
		return ReplyHeader{}, fmt.Errorf("message length %d is smaller than the header length %d", header.MessageLength, ReplyHeaderLength)
	}

	if header.NumberReturned < 0 {
		return ReplyHeader{}, fmt.Errorf("negative returned document count %d", header.NumberReturned)
	}

	return header, nil
}

// BodyLength returns the number of body bytes that follow the header.
func (h ReplyHeader) BodyLength() int32 {
	return h.MessageLength - ReplyHeaderLength
}

// AppendReplyHeader appends the little-endian encoding of the header to dst
// and returns the extended slice. Used by simulated server streams in tests
// and tools.
func AppendReplyHeader(dst []byte, h ReplyHeader) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(h.MessageLength))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(h.RequestID))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(h.ResponseTo))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(h.NumberReturned))
	return dst
}
