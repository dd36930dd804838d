// Package common provides the shared configuration and logging infrastructure
// for the connection core. It holds the immutable connection settings applied
// to every socket the driver opens, and the logger factory used by all driver
// packages.
//
// The package focuses on:
//   - Socket tuning parameters (timeouts, keep-alive, buffer sizes)
//   - Protocol limits (maximum accepted message length)
//   - A uniform logger format across all driver packages
package common
