// Package dedup suppresses repeat alerts for the same underlying event.
//
// The cache maps fingerprints to expiry timestamps. A fingerprint whose
// entry has expired is treated as unseen. Expired entries are purged lazily
// on lookup; there is no background sweeper because the pipeline is
// single-threaded.
package dedup
