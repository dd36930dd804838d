package util

import (
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docwire/docwire/driver/common"
	"github.com/docwire/docwire/driver/conn"
	conntcp "github.com/docwire/docwire/driver/conn/tcp"
	conntls "github.com/docwire/docwire/driver/conn/tls"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupConnectionFlags adds common connection flags to a command
func SetupConnectionFlags(cmd *cobra.Command) {
	key := "endpoint"
	cmd.PersistentFlags().String(key, "localhost:27017", WrapString("The server endpoint to connect to (host:port)"))

	key = "read-timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("Read timeout in seconds applied to every blocking read"))

	key = "connect-timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("Timeout in seconds for establishing the connection"))

	key = "max-message-length"
	cmd.PersistentFlags().Int(key, common.DefaultMaxMessageLength, WrapString("Largest reply message length accepted in bytes"))

	key = "write-buffer"
	cmd.PersistentFlags().Int(key, 0, WrapString("Socket write buffer size in KB (0 = system default)"))

	key = "read-buffer"
	cmd.PersistentFlags().Int(key, 0, WrapString("Socket read buffer size in KB (0 = system default)"))

	key = "tcp-nodelay"
	cmd.PersistentFlags().Bool(key, true, WrapString("Whether to disable Nagle's algorithm on the socket"))

	key = "tcp-keepalive"
	cmd.PersistentFlags().Int(key, 0, WrapString("TCP keep-alive period in seconds (0 = off)"))

	key = "tcp-linger"
	cmd.PersistentFlags().Int(key, -1, WrapString("TCP linger time in seconds (negative = system default)"))

	key = "tls"
	cmd.PersistentFlags().Bool(key, false, WrapString("Connect with TLS"))

	key = "tls-insecure"
	cmd.PersistentFlags().Bool(key, false, WrapString("Skip TLS certificate verification (testing only)"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "info", WrapString("Log level (debug, info, warn, error)"))
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("docwire")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetConnectionConfig reads the connection configuration from viper
func GetConnectionConfig() common.ConnectionConfig {
	return common.ConnectionConfig{
		ReadTimeout:    time.Duration(viper.GetInt("read-timeout")) * time.Second,
		ConnectTimeout: time.Duration(viper.GetInt("connect-timeout")) * time.Second,
		SocketConf: common.SocketConf{
			ReadBufferSize:  viper.GetInt("read-buffer") * 1024,
			WriteBufferSize: viper.GetInt("write-buffer") * 1024,
		},
		TCPConf: common.TCPConf{
			TCPNoDelay:      viper.GetBool("tcp-nodelay"),
			TCPKeepAliveSec: viper.GetInt("tcp-keepalive"),
			TCPLingerSec:    viper.GetInt("tcp-linger"),
		},
	}
}

// GetMaxMessageLength retrieves the configured reply size limit
func GetMaxMessageLength() int32 {
	return int32(viper.GetInt("max-message-length"))
}

// GetServerAddress parses the configured endpoint
func GetServerAddress() (conn.ServerAddress, error) {
	return conn.NewServerAddress(viper.GetString("endpoint"))
}

// GetStream dials the configured endpoint with the configured transport
func GetStream() (conn.IStream, error) {
	address, err := GetServerAddress()
	if err != nil {
		return nil, err
	}

	config := GetConnectionConfig()

	if viper.GetBool("tls") {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: viper.GetBool("tls-insecure"),
		}
		return conntls.Connect(address, config, tlsConfig)
	}
	return conntcp.Connect(address, config)
}

// GetLogLevel retrieves the configured log level
func GetLogLevel() string {
	return viper.GetString("log-level")
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	return nil
}
