// Package metrics exposes Prometheus counters and gauges for flow-link
// generation and mesh storage. Collectors are registered on the default
// registry and served by meshflow-server at /metrics.
package metrics
