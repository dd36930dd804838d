// Package cmd implements the command-line interface for the docwire client
// transport. It provides diagnostic commands for exercising a connection
// against a wire-compatible endpoint.
//
// The package is organized into several subpackages:
//
//   - ping: Measures round-trip latency over the configured transport
//   - echo: Runs a loopback reply server as a counterpart for ping
//   - util: Shared utilities for command-line processing and configuration (internal use)
package cmd
