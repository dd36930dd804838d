package tcp

import (
	"fmt"
	"net"
	"time"

	"github.com/lni/dragonboat/v4/logger"

	"github.com/docwire/docwire/driver/common"
	"github.com/docwire/docwire/driver/conn"
)

var Logger = logger.GetLogger("conn/tcp")

// --------------------------------------------------------------------------
// Dialing
// --------------------------------------------------------------------------

// Connect dials the endpoint and returns a tuned stream ready for use by a
// connection.
func Connect(address conn.ServerAddress, config common.ConnectionConfig) (conn.IStream, error) {
	tcpConn, err := Dial(address, config)
	if err != nil {
		return nil, err
	}

	Logger.Debugf("connected to %s", address)
	return conn.NewStream(tcpConn, address, config.ReadTimeout), nil
}

// Dial establishes and tunes the raw TCP connection without wrapping it in a
// stream. Used by Connect and by the tls package, which layers a handshake
// on top of the tuned socket.
func Dial(address conn.ServerAddress, config common.ConnectionConfig) (*net.TCPConn, error) {
	dialer := net.Dialer{Timeout: config.ConnectTimeout}

	raw, err := dialer.Dial("tcp", address.String())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", address, err)
	}

	tcpConn := raw.(*net.TCPConn)
	if err := upgradeConnection(tcpConn, config); err != nil {
		_ = tcpConn.Close()
		return nil, fmt.Errorf("failed to tune connection to %s: %w", address, err)
	}

	return tcpConn, nil
}

// upgradeConnection applies the socket initialization policy to an
// established TCP connection using values from TCPConf and SocketConf
func upgradeConnection(tcpConn *net.TCPConn, config common.ConnectionConfig) error {
	// Disable Nagle's algorithm (TCPNoDelay) if configured
	if err := tcpConn.SetNoDelay(config.TCPConf.TCPNoDelay); err != nil {
		return err
	}

	// Set socket write buffer size if configured
	if config.SocketConf.WriteBufferSize > 0 {
		if err := tcpConn.SetWriteBuffer(config.SocketConf.WriteBufferSize); err != nil {
			return err
		}
	}

	// Set socket read buffer size if configured
	if config.SocketConf.ReadBufferSize > 0 {
		if err := tcpConn.SetReadBuffer(config.SocketConf.ReadBufferSize); err != nil {
			return err
		}
	}

	// Enable TCP keep-alive if configured
	if config.TCPConf.TCPKeepAliveSec > 0 {
		if err := tcpConn.SetKeepAlive(true); err != nil {
			return err
		}

		// Set keep-alive period
		keepAlivePeriod := time.Duration(config.TCPConf.TCPKeepAliveSec) * time.Second
		if err := tcpConn.SetKeepAlivePeriod(keepAlivePeriod); err != nil {
			return err
		}
	}

	// Set TCP linger option if configured
	if config.TCPConf.TCPLingerSec >= 0 {
		if err := tcpConn.SetLinger(config.TCPConf.TCPLingerSec); err != nil {
			return err
		}
	}

	return nil
}
