/*
Package observability exposes Prometheus metrics for the presentation service.

Metrics implements builder.Recorder and fetch.Recorder so that element and
fetch outcomes are counted where they happen. HTTP handlers report request
counts and build latency directly.
*/
package observability
