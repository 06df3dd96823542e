// Package metrics collects Prometheus metrics for provider calls, prompt
// enhancements and HTTP traffic. Each Collector owns its registry, so tests
// can create as many as they need without colliding on the default one.
package metrics
