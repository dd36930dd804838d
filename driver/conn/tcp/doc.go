// Package tcp implements the plain TCP stream for the connection core. It
// dials the server endpoint with the configured connect timeout and applies
// the socket initialization policy (Nagle off, keep-alive, buffer sizes,
// linger) before the stream is handed to the connection state machine.
package tcp
