package conn

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// DefaultPort is used when an endpoint string carries no port.
const DefaultPort = 27017

// ServerAddress identifies the single server endpoint a connection is bound
// to. It is immutable and outlives the connection.
type ServerAddress struct {
	Host string
	Port int
}

// NewServerAddress parses "host", "host:port" or "[ipv6]:port" into a
// ServerAddress, applying DefaultPort when no port is given.
func NewServerAddress(endpoint string) (ServerAddress, error) {
	if endpoint == "" {
		return ServerAddress{}, fmt.Errorf("empty endpoint")
	}

	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		// No port in the endpoint string
		if strings.Contains(endpoint, ":") && !strings.HasPrefix(endpoint, "[") {
			return ServerAddress{}, fmt.Errorf("invalid endpoint %q: %v", endpoint, err)
		}
		return ServerAddress{Host: strings.Trim(endpoint, "[]"), Port: DefaultPort}, nil
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return ServerAddress{}, fmt.Errorf("invalid port in endpoint %q", endpoint)
	}

	return ServerAddress{Host: host, Port: port}, nil
}

// String returns the endpoint in dialable "host:port" form.
func (a ServerAddress) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}
