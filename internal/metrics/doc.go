// Package metrics records build observations.
//
// Components receive a Recorder; NoopRecorder is the default so callers never
// nil-check. PrometheusRecorder registers docsexport_* collectors on a
// registry, and WriteTextfile dumps that registry in the node-exporter
// textfile format, which suits one-shot CI builds that have no scrape endpoint.
package metrics
