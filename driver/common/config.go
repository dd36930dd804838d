package common

import (
	"fmt"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Connection configuration structs
// --------------------------------------------------------------------------

const (
	// DefaultMaxMessageLength is the largest reply the driver accepts unless
	// the caller configures a different limit (48 MB).
	DefaultMaxMessageLength = 48 * 1024 * 1024
)

// SocketConf holds socket buffer sizes shared by all stream types.
// A value of zero or less means the operating system default is kept.
type SocketConf struct {
	ReadBufferSize  int
	WriteBufferSize int
}

// TCPConf holds TCP-specific tuning options.
type TCPConf struct {
	// TCPNoDelay disables Nagle's algorithm when true
	TCPNoDelay bool
	// TCPKeepAliveSec enables keep-alive probes with the given period (in seconds, 0 = off)
	TCPKeepAliveSec int
	// TCPLingerSec sets the linger time on close (in seconds, negative = system default)
	TCPLingerSec int
}

// ConnectionConfig holds all tuning parameters for a single connection.
// The struct is immutable after construction and shared by every operation
// performed on a connection.
type ConnectionConfig struct {
	// Timeouts
	ReadTimeout    time.Duration // Applied per blocking read, 0 = no deadline
	ConnectTimeout time.Duration // Applied when dialing

	// Socket tuning
	SocketConf SocketConf
	TCPConf    TCPConf
}

// DefaultConnectionConfig returns the configuration used when the caller
// does not supply one.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		ReadTimeout:    10 * time.Second,
		ConnectTimeout: 10 * time.Second,
		TCPConf: TCPConf{
			TCPNoDelay:   true,
			TCPLingerSec: -1,
		},
	}
}

// String returns a formatted string representation of the configuration
func (c *ConnectionConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Timeouts")
	addField("Read Timeout", c.ReadTimeout.String())
	addField("Connect Timeout", c.ConnectTimeout.String())

	addSection("Socket")
	addField("Read Buffer", fmt.Sprintf("%d bytes", c.SocketConf.ReadBufferSize))
	addField("Write Buffer", fmt.Sprintf("%d bytes", c.SocketConf.WriteBufferSize))

	addSection("TCP")
	addField("No Delay", fmt.Sprintf("%t", c.TCPConf.TCPNoDelay))
	addField("Keep Alive", fmt.Sprintf("%d sec", c.TCPConf.TCPKeepAliveSec))
	addField("Linger", fmt.Sprintf("%d sec", c.TCPConf.TCPLingerSec))

	return sb.String()
}
