// Package conn implements the client-side connection core of the binary wire
// protocol: the blocking send/receive state machine shared by all concrete
// stream types, reply framing and correlation against the caller's
// expectations, the error taxonomy every failure is translated into, and the
// response callback adapter that guarantees exactly-once completion delivery
// for asynchronous use.
//
// The package focuses on:
//   - A stream capability interface (IStream) implemented by concrete
//     transports (TCP, TLS, in-memory for testing); the state machine depends
//     only on this interface
//   - Strict request/response correlation: a reply whose response-to id does
//     not match the outstanding request poisons the connection
//   - Lifecycle guarantees: every failure path closes the connection before
//     the error reaches the caller, and close is idempotent and observable
//     from any goroutine
//   - Buffer ownership: response buffers are handed to the caller, who
//     releases them; the async adapter releases the outbound buffer exactly
//     once before user code observes completion
//
// Out of scope here: connection pooling, server selection, retry policy, and
// any interpretation of reply payloads. Higher layers consume this package
// through SendMessage and ReceiveMessage (or their async equivalents) only.
package conn
