package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the transcriber service
type Metrics struct {
	// Transcription metrics
	TranscriptionRequests  prometheus.Counter
	TranscriptionSuccesses prometheus.Counter
	TranscriptionFailures  *prometheus.CounterVec
	TranscriptionDuration  prometheus.Histogram
	UploadSize             prometheus.Histogram
	UploadsByMediaType     *prometheus.CounterVec
	InFlight               prometheus.Gauge

	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates all metrics on a dedicated registry, so several
// servers can coexist in one process (tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		TranscriptionRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "transcriber_transcription_requests_total",
			Help: "Total number of transcription requests that carried a file",
		}),
		TranscriptionSuccesses: factory.NewCounter(prometheus.CounterOpts{
			Name: "transcriber_transcription_successes_total",
			Help: "Total number of successful transcriptions",
		}),
		TranscriptionFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "transcriber_transcription_failures_total",
			Help: "Total number of failed transcriptions by stage and provider error code",
		}, []string{"stage", "code"}),
		TranscriptionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "transcriber_transcription_duration_seconds",
			Help:    "Time spent waiting for the provider",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}),
		UploadSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "transcriber_upload_size_bytes",
			Help:    "Size of uploaded audio files",
			Buckets: prometheus.ExponentialBuckets(16<<10, 4, 8),
		}),
		UploadsByMediaType: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "transcriber_uploads_total",
			Help: "Uploaded files by detected media type",
		}, []string{"media_type"}),
		InFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "transcriber_transcriptions_in_flight",
			Help: "Transcriptions currently waiting on the provider",
		}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "transcriber_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "transcriber_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		registry: reg,
	}
}

// Registry returns the registry backing these metrics, for exposition.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordUpload records the size and media type of an accepted upload.
func (m *Metrics) RecordUpload(size int64, mediaType string) {
	m.TranscriptionRequests.Inc()
	m.UploadSize.Observe(float64(size))
	if mediaType == "" {
		mediaType = "unknown"
	}
	m.UploadsByMediaType.WithLabelValues(mediaType).Inc()
}

// RecordTranscription records the outcome of one provider call.
func (m *Metrics) RecordTranscription(elapsed time.Duration, err error, code string) {
	m.TranscriptionDuration.Observe(elapsed.Seconds())
	if err != nil {
		m.TranscriptionFailures.WithLabelValues("provider", code).Inc()
		return
	}
	m.TranscriptionSuccesses.Inc()
}

// RecordFailure records a failure outside the provider call.
func (m *Metrics) RecordFailure(stage string) {
	m.TranscriptionFailures.WithLabelValues(stage, "none").Inc()
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// TrackInFlight marks one provider call as running and returns its release.
func (m *Metrics) TrackInFlight() func() {
	m.InFlight.Inc()
	return m.InFlight.Dec
}
