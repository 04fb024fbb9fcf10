// Package fetcher executes a batch of image downloads under a bounded
// worker pool.
//
// Each target is fetched over HTTP and streamed into a blob bucket
// under its file name. A failure on one target never aborts the batch:
// the error is captured in the returned Summary and the workers move
// on. The failure count is the only result contract; retained causes
// exist for diagnostics.
//
// # Worker Pool
//
// Workers receive targets from a channel and report outcomes back over
// a results channel to a single collector, so no counter is shared
// between goroutines. Workers complete in arbitrary order; the summary
// is invariant to completion order.
package fetcher
