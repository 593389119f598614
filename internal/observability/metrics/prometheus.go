// Package metrics provides Prometheus metrics for the ingestion pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics
type Metrics struct {
	PrescriptionsParsed   prometheus.Counter
	PrescriptionsIngested prometheus.Counter
	PrescriptionsFailed   prometheus.Counter
	MedicationsExtracted  prometheus.Counter
	ParseConfidence       prometheus.Histogram
	ParseDuration         prometheus.Histogram
	IngestDuration        prometheus.Histogram
	InteractionFindings   *prometheus.CounterVec
	ImagesRejected        prometheus.Counter
	ProcessingErrors      prometheus.Counter
	StockWarnings         prometheus.Counter
	KafkaMessagesProduced prometheus.Counter
	KafkaMessagesConsumed prometheus.Counter
	OutboxPending         prometheus.Gauge
}

// New creates and registers all metrics
func New() *Metrics {
	m := &Metrics{
		PrescriptionsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prescriptions_parsed_total",
			Help: "Total prescription documents parsed",
		}),
		PrescriptionsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prescriptions_ingested_total",
			Help: "Total prescriptions ingested to storage",
		}),
		PrescriptionsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prescriptions_failed_total",
			Help: "Total prescriptions that failed processing",
		}),
		MedicationsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "medications_extracted_total",
			Help: "Total medications extracted from prescription text",
		}),
		ParseConfidence: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "prescription_parse_confidence",
			Help:    "Document confidence score distribution",
			Buckets: []float64{.1, .2, .3, .4, .5, .6, .7, .8, .9, 1},
		}),
		ParseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "prescription_parse_duration_seconds",
			Help:    "Prescription parse duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		IngestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "prescription_ingest_duration_seconds",
			Help:    "Bulk ingestion duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		InteractionFindings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interaction_findings_total",
			Help: "Safety findings by severity",
		}, []string{"severity"}),
		ImagesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "images_rejected_total",
			Help: "Images refused by the quality gate",
		}),
		ProcessingErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "processing_errors_total",
			Help: "Per-medication validation errors during ingestion",
		}),
		StockWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stock_warnings_total",
			Help: "Insufficient-stock warnings raised during ingestion",
		}),
		KafkaMessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kafka_messages_produced_total",
			Help: "Total Kafka messages produced",
		}),
		KafkaMessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Total Kafka messages consumed",
		}),
		OutboxPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "outbox_pending_entries",
			Help: "Pending outbox entries",
		}),
	}

	prometheus.MustRegister(
		m.PrescriptionsParsed,
		m.PrescriptionsIngested,
		m.PrescriptionsFailed,
		m.MedicationsExtracted,
		m.ParseConfidence,
		m.ParseDuration,
		m.IngestDuration,
		m.InteractionFindings,
		m.ImagesRejected,
		m.ProcessingErrors,
		m.StockWarnings,
		m.KafkaMessagesProduced,
		m.KafkaMessagesConsumed,
		m.OutboxPending,
	)

	return m
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
