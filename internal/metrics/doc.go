// Package metrics provides observability hooks for navigation sync runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection never needs nil checks:
//
//	report, err := pipeline.Run(ctx, pipeline.Options{
//		SiteDir:  dir,
//		Recorder: metrics.NewPrometheusRecorder(reg), // nil means NoopRecorder
//	})
//
// The CLI has no long-running HTTP surface, so collected metrics are written
// once per run in the Prometheus textfile format (see WriteTextfile), ready
// for the node exporter textfile collector.
package metrics
