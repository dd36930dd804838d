package conn

import (
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/lni/dragonboat/v4/logger"

	"github.com/docwire/docwire/driver/buffer"
	"github.com/docwire/docwire/driver/wire"
)

var Logger = logger.GetLogger("conn")

// --------------------------------------------------------------------------
// Blocking connection
// --------------------------------------------------------------------------

// Connection is a stateful channel to one server endpoint. It owns framing,
// correlation, timing and error translation; raw I/O is delegated to the
// IStream it was constructed with.
//
// A Connection is meant for one logical caller at a time for send/receive.
// Close and IsClosed are safe to call concurrently with an in-flight
// receive, e.g. from a timeout watchdog.
type Connection struct {
	stream IStream
	source buffer.ISource
	closed atomic.Bool
}

// New creates a connection over the given stream, drawing reply buffers from
// the given source.
func New(stream IStream, source buffer.ISource) *Connection {
	return &Connection{
		stream: stream,
		source: source,
	}
}

// Address returns the server endpoint this connection is bound to.
func (c *Connection) Address() ServerAddress {
	return c.stream.Address()
}

// Close closes the connection. Closed is terminal: a connection never
// reopens. Closing more than once is a no-op.
func (c *Connection) Close() {
	if c.closed.CompareAndSwap(false, true) {
		metricConnectionsClosed.Inc()
		if err := c.stream.Close(); err != nil {
			Logger.Debugf("closing stream to %s: %v", c.Address(), err)
		}
	}
}

// IsClosed reports whether the connection has been closed. Safe from any
// goroutine.
func (c *Connection) IsClosed() bool {
	return c.closed.Load()
}

// SendMessage writes a sequence of pre-encoded byte buffers as one logical
// message. Success means the bytes were handed to the transport. Any I/O
// failure closes the connection and surfaces as a *WriteError carrying the
// server address and the underlying cause.
func (c *Connection) SendMessage(buffers net.Buffers) error {
	if err := c.stream.EnsureOpen(); err != nil {
		return err
	}

	var size int
	for _, buf := range buffers {
		size += len(buf)
	}

	if err := c.stream.Write(buffers); err != nil {
		c.Close()
		return &WriteError{Address: c.Address(), Err: err}
	}

	metricMessagesSent.Inc()
	metricBytesWritten.Add(size)
	return nil
}

// ReceiveMessage blocks until exactly one reply has been read and validated
// against the given settings. On success the returned ResponseBuffers carry
// the parsed header, the body buffer when the reply contains documents, and
// the elapsed wait time; ownership transfers to the caller.
//
// Every failure path closes the connection before returning: the connection
// is never left in a "maybe still usable" state after an error escapes.
func (c *Connection) ReceiveMessage(settings ResponseSettings) (result *ResponseBuffers, err error) {
	if err := c.stream.EnsureOpen(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			c.Close()
			result = nil
			err = &InternalError{Msg: fmt.Sprintf("unexpected runtime fault while receiving message: %v", r)}
		}
	}()

	result, err = c.receiveMessage(settings, time.Now())
	if err != nil {
		c.Close()
		var internalErr *InternalError
		if errors.As(err, &internalErr) {
			return nil, err
		}
		return nil, translateReadError(c.Address(), err)
	}
	return result, nil
}

// receiveMessage reads one reply: fixed-size header first, then the body
// when the header announces returned documents. I/O errors are returned raw
// for the caller to translate; protocol violations come back as
// *InternalError.
func (c *Connection) receiveMessage(settings ResponseSettings, start time.Time) (*ResponseBuffers, error) {
	header, err := c.readHeader()
	if err != nil {
		return nil, err
	}

	if header.ResponseTo != settings.ResponseTo {
		metricProtocolErrors.Inc()
		return nil, &InternalError{Msg: fmt.Sprintf(
			"the response-to (%d) in the reply does not match the request id (%d) of the request",
			header.ResponseTo, settings.ResponseTo)}
	}

	if header.MessageLength > settings.MaxMessageLength {
		metricProtocolErrors.Inc()
		return nil, &InternalError{Msg: fmt.Sprintf(
			"unexpectedly large message length of %d exceeds maximum of %d",
			header.MessageLength, settings.MaxMessageLength)}
	}

	var body []byte
	if header.NumberReturned > 0 {
		body = c.source.Acquire(int(header.BodyLength()))
		if err := c.stream.ReadFull(body); err != nil {
			c.source.Release(body)
			return nil, err
		}
		metricBytesRead.Add(len(body))
	}

	metricMessagesReceived.Inc()
	return &ResponseBuffers{
		Header:  header,
		Body:    body,
		Elapsed: time.Since(start),
	}, nil
}

// readHeader fills and parses the fixed-size reply header. The scratch
// buffer is scoped to this function and returned to the source on every exit
// path.
func (c *Connection) readHeader() (wire.ReplyHeader, error) {
	buf := c.source.Acquire(wire.ReplyHeaderLength)
	defer c.source.Release(buf)

	if err := c.stream.ReadFull(buf); err != nil {
		return wire.ReplyHeader{}, err
	}
	metricBytesRead.Add(wire.ReplyHeaderLength)

	header, err := wire.ParseReplyHeader(buf)
	if err != nil {
		metricProtocolErrors.Inc()
		return wire.ReplyHeader{}, &InternalError{Msg: "malformed reply header", Err: err}
	}
	return header, nil
}
