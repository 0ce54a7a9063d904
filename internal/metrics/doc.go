// Package metrics records per-command outcomes for appshell runs.
//
// Commands receive a Recorder. NoopRecorder is the default; when the user passes
// --metrics-file a PrometheusRecorder backed by a private registry is used and the
// registry is written in node_exporter textfile-collector format after the run:
//
//	reg := prom.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	// ... run command with rec ...
//	err := metrics.WriteTextfile(path, reg)
package metrics
