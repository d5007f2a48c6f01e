// Package runner implements the poll loop orchestrator.
//
// One goroutine drives the whole pipeline: fetch each enabled source in
// order (with a fixed pacing delay between them), then evaluate, dedup and
// deliver each event. A cycle always finishes before the inter-cycle sleep
// begins; cancellation is observed at cycle boundaries and between adapter
// calls. No error below the runner terminates the loop.
package runner
