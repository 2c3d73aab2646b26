/*
Package observability turns engine lifecycle events into Prometheus metrics and
structured log lines.

Metrics.Hooks and LoggingHooks both return domain.LifecycleHooks; Combine fans a single
event out to several hook sets so callers can enable both.
*/
package observability
