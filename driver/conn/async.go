package conn

import (
	"net"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/docwire/docwire/driver/buffer"
)

// --------------------------------------------------------------------------
// Asynchronous connection
// --------------------------------------------------------------------------

// pendingReceive is one registered receive waiting for its reply
type pendingReceive struct {
	settings ResponseSettings
	adapter  *ResponseCallback
}

// AsyncConnection adapts a blocking Connection to the callback-driven
// surface. A single reader goroutine performs the blocking receives in
// registration order and delivers each outcome through a ResponseCallback,
// so every completion fires exactly once, possibly on a different goroutine
// than the one that issued the request.
//
// Ordering follows the transport contract: a send completes (or fails)
// before the receive for that request is ever initiated.
type AsyncConnection struct {
	conn   *Connection
	source buffer.ISource

	// pending tracks registered receives by correlation id, so duplicate
	// registrations are rejected and Close can fail what never reached the
	// reader goroutine
	pending *xsync.MapOf[int32, *pendingReceive]

	queue  chan *pendingReceive
	stopCh chan struct{}
	stop   sync.Once
}

// receiveQueueSize bounds how many receives may be registered ahead of the
// reader goroutine.
const receiveQueueSize = 16

// NewAsync wraps the given blocking connection. The source must be the same
// one outbound buffers handed to SendAndReceiveAsync were acquired from.
func NewAsync(c *Connection, source buffer.ISource) *AsyncConnection {
	a := &AsyncConnection{
		conn:    c,
		source:  source,
		pending: xsync.NewMapOf[int32, *pendingReceive](),
		queue:   make(chan *pendingReceive, receiveQueueSize),
		stopCh:  make(chan struct{}),
	}

	go a.readResponses()
	return a
}

// Address returns the server endpoint of the underlying connection.
func (a *AsyncConnection) Address() ServerAddress {
	return a.conn.Address()
}

// IsClosed reports the lifecycle state of the underlying connection.
func (a *AsyncConnection) IsClosed() bool {
	return a.conn.IsClosed()
}

// Close closes the underlying connection and fails every pending callback
// with an InterruptedError. Idempotent.
func (a *AsyncConnection) Close() {
	a.stop.Do(func() {
		a.conn.Close()
		close(a.stopCh)
	})
}

// SendMessageAsync writes the buffers and reports the outcome to callback on
// the caller's goroutine. A send has no response, so the callback receives
// only the error, nil on success.
func (a *AsyncConnection) SendMessageAsync(buffers net.Buffers, callback SendCallback) {
	callback(a.conn.SendMessage(buffers))
}

// ReceiveMessageAsync registers a callback fired when the reply matching the
// settings arrives or the read fails. The caller keeps ownership of its
// outbound buffers.
func (a *AsyncConnection) ReceiveMessageAsync(settings ResponseSettings, callback SingleResultCallback) {
	adapter := NewResponseCallback(callback, nil, a.source, settings.ResponseTo)
	a.enqueue(&pendingReceive{settings: settings, adapter: adapter})
}

// SendAndReceiveAsync performs a full async round trip: write the request,
// then register for its reply. writtenBuffer, when non-nil, is released to
// the source exactly once before the callback observes completion,
// regardless of outcome.
func (a *AsyncConnection) SendAndReceiveAsync(buffers net.Buffers, writtenBuffer []byte, settings ResponseSettings, callback SingleResultCallback) {
	adapter := NewResponseCallback(callback, writtenBuffer, a.source, settings.ResponseTo)

	if err := a.conn.SendMessage(buffers); err != nil {
		a.fire(adapter, nil, err)
		return
	}

	a.enqueue(&pendingReceive{settings: settings, adapter: adapter})
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// enqueue registers the receive and hands it to the reader goroutine
func (a *AsyncConnection) enqueue(pr *pendingReceive) {
	if _, loaded := a.pending.LoadOrStore(pr.settings.ResponseTo, pr); loaded {
		a.fire(pr.adapter, nil, &InternalError{Msg: "a receive for this request id is already registered"})
		return
	}

	select {
	case a.queue <- pr:
	case <-a.stopCh:
		a.abort(pr)
		return
	}

	// The send can win the select even when stopCh is already closed. If the
	// reader goroutine has exited, the registration would sit in the queue
	// forever, so re-check and fail it here. The pending map arbitrates: only
	// whoever deletes the entry fires the callback.
	select {
	case <-a.stopCh:
		a.abort(pr)
	default:
	}
}

// abort fails a registration with an InterruptedError unless another
// goroutine already completed it
func (a *AsyncConnection) abort(pr *pendingReceive) {
	if _, loaded := a.pending.LoadAndDelete(pr.settings.ResponseTo); loaded {
		a.fire(pr.adapter, nil, &InterruptedError{Err: net.ErrClosed})
	}
}

// fire delivers through the exactly-once adapter and surfaces duplicate
// completion bugs in the log
func (a *AsyncConnection) fire(adapter *ResponseCallback, response *ResponseBuffers, err error) {
	if cbErr := adapter.OnResult(response, err); cbErr != nil {
		Logger.Errorf("duplicate completion for request %d: %v", adapter.RequestID(), cbErr)
	}
}

// readResponses performs the blocking receives in registration order and
// delivers each outcome to its adapter
func (a *AsyncConnection) readResponses() {
	for {
		select {
		case <-a.stopCh:
			a.failPending()
			return
		case pr := <-a.queue:
			// Both cases can be ready at once; an item dequeued after close
			// is failed, not received
			select {
			case <-a.stopCh:
				a.abort(pr)
				continue
			default:
			}

			response, err := a.conn.ReceiveMessage(pr.settings)
			if _, loaded := a.pending.LoadAndDelete(pr.settings.ResponseTo); loaded {
				a.fire(pr.adapter, response, err)
			} else if response != nil {
				// The registration was aborted while the receive was in
				// flight; nobody will take ownership of the buffers
				response.Release(a.source)
			}
		}
	}
}

// failPending drains registrations that never reached a blocking receive
func (a *AsyncConnection) failPending() {
	for {
		select {
		case pr := <-a.queue:
			a.abort(pr)
		default:
			return
		}
	}
}
