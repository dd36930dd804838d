// Package stats implements a latency histogram for tracking round-trip wait
// time distributions. The histogram uses exponential bucket sizing to cover
// microseconds through multiple seconds with minimal memory overhead.
//
// Key features include:
//   - Efficient memory usage through bucketing
//   - Thread-safe sample addition and querying
//   - Statistical estimators (median, percentiles)
//
// This utility is used by diagnostic tooling that needs to report latency
// characteristics without retaining every sample.
package stats
