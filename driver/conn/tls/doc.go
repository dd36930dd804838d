// Package tls implements the encrypted stream for the connection core. It
// reuses the TCP socket initialization policy from conn/tcp and layers a TLS
// client handshake on top of the tuned socket before handing the stream to
// the connection state machine.
package tls
