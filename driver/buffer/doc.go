// Package buffer provides the byte buffer source consumed by the connection
// core. A source hands out reusable byte slices of at least the requested
// size; callers own a buffer exclusively from Acquire until they pass it back
// to Release.
//
// The pooled implementation keeps one sync.Pool per power-of-two size class
// to reduce GC pressure on the per-reply header and body allocations. It is
// safe for concurrent use from any number of connections.
package buffer
