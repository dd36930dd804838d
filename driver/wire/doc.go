// Package wire implements the framing layer of the binary wire protocol: the
// fixed-size reply header parsed from the front of every inbound message, the
// matching request header prepended to every outbound message, and the
// process-wide request id sequence used for request/response correlation.
//
// The package focuses on:
//   - Bit-exact little-endian encoding of the fixed header fields
//   - Length-based framing (the header declares the total message length)
//   - Correlation ids: every request carries a unique id which the server
//     echoes in the response-to field of the reply answering it
//
// Payload contents are opaque at this layer. Encoding and decoding of message
// bodies is the responsibility of higher layers.
package wire
