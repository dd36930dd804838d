// Package driver groups the client-side transport for the binary
// document-database wire protocol. Subpackages provide the framing layer
// (wire), buffer management (buffer), the blocking and asynchronous
// connection core (conn) with its concrete TCP and TLS streams, and the
// shared configuration and logging infrastructure (common).
//
// Higher layers (pooling, server selection, command encoding) consume this
// tree through the conn package's interfaces only.
package driver
