package conn

import (
	"testing"
)

func TestNewServerAddress(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{"HostAndPort", "db1.example.com:27018", "db1.example.com", 27018, false},
		{"HostOnlyGetsDefaultPort", "db1.example.com", "db1.example.com", DefaultPort, false},
		{"IPv4", "10.0.0.5:1234", "10.0.0.5", 1234, false},
		{"IPv6WithPort", "[::1]:27017", "::1", 27017, false},
		{"Empty", "", "", 0, true},
		{"InvalidPort", "host:notaport", "", 0, true},
		{"PortOutOfRange", "host:70000", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			address, err := NewServerAddress(tt.endpoint)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.endpoint)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if address.Host != tt.wantHost || address.Port != tt.wantPort {
				t.Errorf("got %s:%d, want %s:%d", address.Host, address.Port, tt.wantHost, tt.wantPort)
			}
		})
	}
}
