// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Upstream fetch volume and failures per source
//   - Pipeline skip counts by reason (stale, below threshold, duplicate, malformed)
//   - Alerts emitted per source
//   - Sink delivery failures and fallback usage
//   - Poll cycle duration
package metrics
