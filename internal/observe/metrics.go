// Package observe provides application-wide observability primitives for
// Voxvault: OpenTelemetry metrics, distributed tracing, structured logging,
// and HTTP middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all Voxvault metrics.
const meterName = "github.com/birkelund/voxvault"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Latency histograms per pipeline stage ---

	// TranscriptionDuration tracks speech-to-text transcription latency.
	TranscriptionDuration metric.Float64Histogram

	// EnrichmentDuration tracks text enrichment latency (cleaning,
	// segmentation, and annotation combined).
	EnrichmentDuration metric.Float64Histogram

	// NoteWriteDuration tracks vault note assembly and write latency.
	NoteWriteDuration metric.Float64Histogram

	// ProcessingDuration tracks end-to-end latency from audio file to
	// written note.
	ProcessingDuration metric.Float64Histogram

	// --- Counters ---

	// Transcriptions counts transcription attempts. Use with attributes:
	//   attribute.String("provider", ...), attribute.String("status", ...)
	Transcriptions metric.Int64Counter

	// NotesWritten counts vault notes written. Use with attribute:
	//   attribute.String("mood", ...)
	NotesWritten metric.Int64Counter

	// VocabCorrections counts vocabulary corrections applied to
	// transcripts.
	VocabCorrections metric.Int64Counter

	// --- Error counters ---

	// StageFailures counts pipeline failures. Use with attribute:
	//   attribute.String("stage", ...)
	StageFailures metric.Int64Counter

	// --- Gauges ---

	// InFlightJobs tracks the number of files currently being processed.
	InFlightJobs metric.Int64UpDownCounter

	// QueueDepth tracks the number of files waiting in the watch queue.
	QueueDepth metric.Int64UpDownCounter

	// --- HTTP middleware ---

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds). Local
// transcription of a long voice memo can run for minutes, so the upper
// buckets reach well past typical request latencies.
var latencyBuckets = []float64{
	0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.TranscriptionDuration, err = m.Float64Histogram("voxvault.transcription.duration",
		metric.WithDescription("Latency of speech-to-text transcription."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.EnrichmentDuration, err = m.Float64Histogram("voxvault.enrichment.duration",
		metric.WithDescription("Latency of transcript enrichment."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.NoteWriteDuration, err = m.Float64Histogram("voxvault.note.write.duration",
		metric.WithDescription("Latency of vault note assembly and write."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ProcessingDuration, err = m.Float64Histogram("voxvault.processing.duration",
		metric.WithDescription("End-to-end latency from audio file to written note."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.Transcriptions, err = m.Int64Counter("voxvault.transcriptions",
		metric.WithDescription("Total transcription attempts by provider and status."),
	); err != nil {
		return nil, err
	}
	if met.NotesWritten, err = m.Int64Counter("voxvault.notes.written",
		metric.WithDescription("Total vault notes written by mood."),
	); err != nil {
		return nil, err
	}
	if met.VocabCorrections, err = m.Int64Counter("voxvault.vocab.corrections",
		metric.WithDescription("Total vocabulary corrections applied to transcripts."),
	); err != nil {
		return nil, err
	}

	// Error counters.
	if met.StageFailures, err = m.Int64Counter("voxvault.stage.failures",
		metric.WithDescription("Total pipeline failures by stage."),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.InFlightJobs, err = m.Int64UpDownCounter("voxvault.jobs.in_flight",
		metric.WithDescription("Number of files currently being processed."),
	); err != nil {
		return nil, err
	}
	if met.QueueDepth, err = m.Int64UpDownCounter("voxvault.watch.queue_depth",
		metric.WithDescription("Number of files waiting in the watch queue."),
	); err != nil {
		return nil, err
	}

	// HTTP middleware histogram.
	if met.HTTPRequestDuration, err = m.Float64Histogram("voxvault.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordTranscription is a convenience method that records one transcription
// attempt: a counter increment with the standard attribute set plus a latency
// observation.
func (m *Metrics) RecordTranscription(ctx context.Context, provider, status string, seconds float64) {
	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("status", status),
	)
	m.Transcriptions.Add(ctx, 1, attrs)
	m.TranscriptionDuration.Record(ctx, seconds, attrs)
}

// RecordNoteWritten is a convenience method that records a written note
// counter increment.
func (m *Metrics) RecordNoteWritten(ctx context.Context, mood string) {
	m.NotesWritten.Add(ctx, 1,
		metric.WithAttributes(attribute.String("mood", mood)),
	)
}

// RecordCorrections is a convenience method that records vocabulary
// corrections applied to a single transcript.
func (m *Metrics) RecordCorrections(ctx context.Context, n int64) {
	if n <= 0 {
		return
	}
	m.VocabCorrections.Add(ctx, n)
}

// RecordStageFailure is a convenience method that records a pipeline failure
// counter increment.
func (m *Metrics) RecordStageFailure(ctx context.Context, stage string) {
	m.StageFailures.Add(ctx, 1,
		metric.WithAttributes(attribute.String("stage", stage)),
	)
}
