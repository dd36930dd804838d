package tcp

import (
	"errors"
	"io"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/docwire/docwire/driver/buffer"
	"github.com/docwire/docwire/driver/common"
	"github.com/docwire/docwire/driver/conn"
	"github.com/docwire/docwire/driver/wire"
)

// startReplyServer runs a minimal server that answers every request frame
// with a correlated header-only reply
func startReplyServer(t *testing.T) conn.ServerAddress {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	t.Cleanup(func() { _ = listener.Close() })

	go func() {
		for {
			netConn, err := listener.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				header := make([]byte, wire.RequestHeaderLength)
				for {
					if _, err := io.ReadFull(c, header); err != nil {
						return
					}
					request, err := wire.ParseRequestHeader(header)
					if err != nil {
						return
					}
					if _, err := io.CopyN(io.Discard, c, int64(request.MessageLength-wire.RequestHeaderLength)); err != nil {
						return
					}
					reply := wire.AppendReplyHeader(nil, wire.ReplyHeader{
						MessageLength: wire.ReplyHeaderLength,
						ResponseTo:    request.RequestID,
					})
					if _, err := c.Write(reply); err != nil {
						return
					}
				}
			}(netConn)
		}
	}()

	tcpAddr := listener.Addr().(*net.TCPAddr)
	return conn.ServerAddress{Host: "127.0.0.1", Port: tcpAddr.Port}
}

func testConfig() common.ConnectionConfig {
	config := common.DefaultConnectionConfig()
	config.ReadTimeout = time.Second
	config.ConnectTimeout = time.Second
	return config
}

func TestConnect(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		address := startReplyServer(t)

		stream, err := Connect(address, testConfig())
		if err != nil {
			t.Fatalf("connect failed: %v", err)
		}

		source := buffer.NewPooledSource()
		connection := conn.New(stream, source)
		defer connection.Close()

		requestID := wire.NextRequestID()
		if err := connection.SendMessage(wire.FrameRequest(requestID, wire.OpQuery, []byte("payload"))); err != nil {
			t.Fatalf("send failed: %v", err)
		}

		response, err := connection.ReceiveMessage(conn.ResponseSettings{
			ResponseTo:       requestID,
			MaxMessageLength: common.DefaultMaxMessageLength,
		})
		if err != nil {
			t.Fatalf("receive failed: %v", err)
		}
		if response.Header.ResponseTo != requestID {
			t.Errorf("expected response-to %d, got %d", requestID, response.Header.ResponseTo)
		}
		response.Release(source)
	})

	t.Run("ConnectTimeout", func(t *testing.T) {
		config := testConfig()
		config.ConnectTimeout = 50 * time.Millisecond

		// Reserved TEST-NET-1 address, nothing listens there
		address := conn.ServerAddress{Host: "192.0.2.1", Port: 27017}

		if _, err := Connect(address, config); err == nil {
			t.Fatalf("expected dial failure")
		}
	})

	t.Run("ReadTimeoutAgainstSilentServer", func(t *testing.T) {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("failed to listen: %v", err)
		}
		t.Cleanup(func() { _ = listener.Close() })
		go func() {
			for {
				if _, err := listener.Accept(); err != nil {
					return
				}
			}
		}()

		tcpAddr := listener.Addr().(*net.TCPAddr)
		config := testConfig()
		config.ReadTimeout = 50 * time.Millisecond

		stream, err := Connect(conn.ServerAddress{Host: "127.0.0.1", Port: tcpAddr.Port}, config)
		if err != nil {
			t.Fatalf("connect failed: %v", err)
		}

		connection := conn.New(stream, buffer.NewPooledSource())
		_, err = connection.ReceiveMessage(conn.ResponseSettings{ResponseTo: 1, MaxMessageLength: 1024})

		var timeoutErr *conn.ReadTimeoutError
		if !errors.As(err, &timeoutErr) {
			t.Fatalf("expected *conn.ReadTimeoutError, got %T: %v", err, err)
		}
		if !connection.IsClosed() {
			t.Errorf("connection must be closed after a read timeout")
		}
	})
}

func TestServerAddressString(t *testing.T) {
	address := conn.ServerAddress{Host: "db1.example.com", Port: 27017}
	want := net.JoinHostPort("db1.example.com", strconv.Itoa(27017))
	if address.String() != want {
		t.Errorf("String() = %q, want %q", address.String(), want)
	}
}
