package echo

import (
	"bytes"
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"

	"github.com/docwire/docwire/driver/wire"
)

// dialHandler wires a client pipe end to a handler goroutine
func dialHandler(t *testing.T) net.Conn {
	t.Helper()
	serverSide, clientSide := net.Pipe()
	go handleConnection(serverSide)
	t.Cleanup(func() { _ = clientSide.Close() })
	return clientSide
}

func TestHandleConnection(t *testing.T) {
	t.Run("EchoesBodyWithCorrelatedReply", func(t *testing.T) {
		client := dialHandler(t)

		body := bytes.Repeat([]byte{0xAB}, 20)
		requestID := int32(7)
		for _, buf := range wire.FrameRequest(requestID, wire.OpQuery, body) {
			if _, err := client.Write(buf); err != nil {
				t.Fatalf("writing request: %v", err)
			}
		}

		_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
		headerBuf := make([]byte, wire.ReplyHeaderLength)
		if _, err := io.ReadFull(client, headerBuf); err != nil {
			t.Fatalf("reading reply header: %v", err)
		}
		header, err := wire.ParseReplyHeader(headerBuf)
		if err != nil {
			t.Fatalf("parsing reply header: %v", err)
		}

		if header.ResponseTo != requestID {
			t.Errorf("reply correlates to %d, want %d", header.ResponseTo, requestID)
		}
		if header.NumberReturned != 1 {
			t.Errorf("reply announces %d documents, want 1", header.NumberReturned)
		}

		replyBody := make([]byte, header.BodyLength())
		if _, err := io.ReadFull(client, replyBody); err != nil {
			t.Fatalf("reading reply body: %v", err)
		}
		if !bytes.Equal(replyBody, body) {
			t.Errorf("reply body does not echo the request body")
		}
	})

	t.Run("EmptyBodyAnnouncesNoDocuments", func(t *testing.T) {
		client := dialHandler(t)

		for _, buf := range wire.FrameRequest(3, wire.OpQuery, nil) {
			if len(buf) == 0 {
				continue
			}
			if _, err := client.Write(buf); err != nil {
				t.Fatalf("writing request: %v", err)
			}
		}

		_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
		headerBuf := make([]byte, wire.ReplyHeaderLength)
		if _, err := io.ReadFull(client, headerBuf); err != nil {
			t.Fatalf("reading reply header: %v", err)
		}
		header, err := wire.ParseReplyHeader(headerBuf)
		if err != nil {
			t.Fatalf("parsing reply header: %v", err)
		}

		if header.NumberReturned != 0 {
			t.Errorf("reply announces %d documents, want 0", header.NumberReturned)
		}
		if header.BodyLength() != 0 {
			t.Errorf("reply carries %d body bytes, want 0", header.BodyLength())
		}
	})

	t.Run("OversizedDeclaredLengthDropsConnection", func(t *testing.T) {
		client := dialHandler(t)

		headerBuf := make([]byte, wire.RequestHeaderLength)
		binary.LittleEndian.PutUint32(headerBuf[0:4], uint32(1<<30)) // 1 GB declared
		binary.LittleEndian.PutUint32(headerBuf[4:8], 9)
		binary.LittleEndian.PutUint32(headerBuf[8:12], 0)
		binary.LittleEndian.PutUint32(headerBuf[12:16], uint32(wire.OpQuery))
		if _, err := client.Write(headerBuf); err != nil {
			t.Fatalf("writing header: %v", err)
		}

		// The handler must drop the connection instead of allocating the
		// declared body
		_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
		if _, err := client.Read(make([]byte, 1)); err == nil {
			t.Fatalf("expected the connection to be dropped")
		}
	})
}
