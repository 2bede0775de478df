package metrics

import (
	"svdata-hq/svast/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// CodecMetrics tracks document encoding and decoding.
//
// Metrics:
//   - svast_pipeline_documents_total: documents by operation (encode, decode)
//   - svast_pipeline_document_size_bytes: document sizes by operation
//   - svast_pipeline_decode_errors_total: decode errors by error kind
type CodecMetrics struct {
	documentsTotal *prometheus.CounterVec
	sizeBytes      *prometheus.HistogramVec
	decodeErrors   *prometheus.CounterVec
}

// NewCodecMetrics creates and registers codec metrics with the provided registry.
func NewCodecMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CodecMetrics {
	cm := &CodecMetrics{
		documentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "documents_total",
				Help:      "Total number of documents encoded or decoded",
			},
			[]string{"operation"},
		),

		sizeBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "document_size_bytes",
				Help:      "Size of encoded or decoded documents in bytes",
				Buckets:   cfg.SizeBuckets,
			},
			[]string{"operation"},
		),

		decodeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "decode_errors_total",
				Help:      "Total number of decode errors by kind",
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(
		cm.documentsTotal,
		cm.sizeBytes,
		cm.decodeErrors,
	)

	return cm
}

// RecordDocument records a document passing through operation.
func (cm *CodecMetrics) RecordDocument(operation string, size int) {
	cm.documentsTotal.WithLabelValues(operation).Inc()
	cm.sizeBytes.WithLabelValues(operation).Observe(float64(size))
}

// RecordDecodeError records one decode error of the given kind.
func (cm *CodecMetrics) RecordDecodeError(kind string) {
	cm.decodeErrors.WithLabelValues(kind).Inc()
}
