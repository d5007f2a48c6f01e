// Package sink delivers qualified alerts to the notification channel and
// the durable log.
//
// Delivery is fan-out with per-sink isolation: a failed Telegram send never
// blocks the log append and vice versa. The durable log is two-tier, a
// Google Sheets append with an optional webhook fallback. An event counts
// as emitted once it reaches Deliver, whatever the sinks do with it.
package sink
