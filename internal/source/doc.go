// Package source adapts the two upstream event feeds into normalized events.
//
// Each adapter fetches raw items and normalizes them one at a time: a
// malformed item is skipped with a warning, never aborting the batch. A
// fetch failure is returned to the caller, which isolates it from the other
// adapter.
package source
