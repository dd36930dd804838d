package tls

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/lni/dragonboat/v4/logger"

	"github.com/docwire/docwire/driver/common"
	"github.com/docwire/docwire/driver/conn"
	"github.com/docwire/docwire/driver/conn/tcp"
)

var Logger = logger.GetLogger("conn/tls")

// Connect dials the endpoint, applies the TCP socket policy, performs the
// TLS client handshake and returns a stream ready for use by a connection.
// When tlsConfig carries no ServerName, the endpoint host is used.
func Connect(address conn.ServerAddress, config common.ConnectionConfig, tlsConfig *tls.Config) (conn.IStream, error) {
	tcpConn, err := tcp.Dial(address, config)
	if err != nil {
		return nil, err
	}

	if tlsConfig == nil {
		tlsConfig = &tls.Config{}
	}
	if tlsConfig.ServerName == "" {
		cloned := tlsConfig.Clone()
		cloned.ServerName = address.Host
		tlsConfig = cloned
	}

	tlsConn := tls.Client(tcpConn, tlsConfig)

	// The handshake honors the connect timeout, not the read timeout
	if config.ConnectTimeout > 0 {
		if err := tlsConn.SetDeadline(time.Now().Add(config.ConnectTimeout)); err != nil {
			_ = tlsConn.Close()
			return nil, err
		}
	}
	if err := tlsConn.Handshake(); err != nil {
		_ = tlsConn.Close()
		return nil, fmt.Errorf("tls handshake with %s failed: %w", address, err)
	}
	if err := tlsConn.SetDeadline(time.Time{}); err != nil {
		_ = tlsConn.Close()
		return nil, err
	}

	Logger.Debugf("tls connection to %s established", address)
	return conn.NewStream(tlsConn, address, config.ReadTimeout), nil
}
