// Package pipeline is the public face of the prescription pipeline: parse,
// safety-check, ingest, validate names and process images, with tracing and
// metrics around each stage.
package pipeline

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/meditrack/rxpipeline/internal/ingestion"
	"github.com/meditrack/rxpipeline/internal/interaction"
	"github.com/meditrack/rxpipeline/internal/observability/metrics"
	"github.com/meditrack/rxpipeline/internal/parser"
	"github.com/meditrack/rxpipeline/internal/quality"
)

// Pipeline bundles the processing stages behind one API. The parsing and
// interaction stages are pure and safe for concurrent use; the ingestion
// stage writes through the configured store.
type Pipeline struct {
	orchestrator *ingestion.Orchestrator
	gate         *quality.Gate
	metrics      *metrics.Metrics
	logger       *zap.Logger
	tracer       trace.Tracer
}

// Config wires the pipeline's collaborators. Gate may be nil when no image
// intake is configured; Metrics may be nil to disable instrumentation.
type Config struct {
	Store   ingestion.Store
	Gate    *quality.Gate
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// New builds a pipeline from cfg.
func New(cfg Config) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		orchestrator: ingestion.NewOrchestrator(cfg.Store, logger),
		gate:         cfg.Gate,
		metrics:      cfg.Metrics,
		logger:       logger,
		tracer:       otel.Tracer("rxpipeline"),
	}
}

// ParsePrescription parses raw prescription text into structured
// medications. It never fails; malformed input yields an empty result with
// warnings.
func (p *Pipeline) ParsePrescription(ctx context.Context, text string, opts parser.Options) parser.ParsedPrescription {
	_, span := p.tracer.Start(ctx, "pipeline.parse",
		trace.WithAttributes(attribute.Int("text_length", len(text))))
	defer span.End()

	start := time.Now()
	result := parser.Parse(text, opts)

	span.SetAttributes(
		attribute.Int("medications", len(result.Medications)),
		attribute.Float64("confidence", result.Confidence),
	)
	if p.metrics != nil {
		p.metrics.PrescriptionsParsed.Inc()
		p.metrics.MedicationsExtracted.Add(float64(len(result.Medications)))
		p.metrics.ParseConfidence.Observe(result.Confidence)
		p.metrics.ParseDuration.Observe(time.Since(start).Seconds())
	}
	return result
}

// IngestPrescription stores a parsed prescription. Per-medication failures
// are reported in the result; an error means storage itself failed and
// nothing was written.
func (p *Pipeline) IngestPrescription(ctx context.Context, req ingestion.Request, flags ingestion.Flags) (*ingestion.Result, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.ingest",
		trace.WithAttributes(attribute.Int("medications", len(req.Medications))))
	defer span.End()

	start := time.Now()
	result, err := p.orchestrator.Ingest(ctx, req, flags)
	if err != nil {
		span.RecordError(err)
		if p.metrics != nil {
			p.metrics.PrescriptionsFailed.Inc()
		}
		return result, err
	}

	span.SetAttributes(
		attribute.Int("created", len(result.CreatedMedications)),
		attribute.Int("errors", len(result.ProcessingErrors)),
	)
	if p.metrics != nil {
		p.metrics.PrescriptionsIngested.Inc()
		p.metrics.IngestDuration.Observe(time.Since(start).Seconds())
		p.metrics.ProcessingErrors.Add(float64(len(result.ProcessingErrors)))
		p.metrics.StockWarnings.Add(float64(len(result.StockWarnings)))
		for _, f := range result.InteractionWarnings {
			p.metrics.InteractionFindings.WithLabelValues(string(f.Severity)).Inc()
		}
	}
	return result, nil
}

// CheckInteractions runs the safety engine over medication names and
// patient conditions.
func (p *Pipeline) CheckInteractions(ctx context.Context, medicationNames, conditions []string) interaction.Result {
	_, span := p.tracer.Start(ctx, "pipeline.check_interactions",
		trace.WithAttributes(attribute.Int("medications", len(medicationNames))))
	defer span.End()

	result := interaction.Check(medicationNames, conditions)
	span.SetAttributes(
		attribute.Int("interactions", len(result.Interactions)),
		attribute.Int("contraindications", len(result.Contraindications)),
	)
	if p.metrics != nil {
		for _, f := range result.Interactions {
			p.metrics.InteractionFindings.WithLabelValues(string(f.Severity)).Inc()
		}
	}
	return result
}

// ValidateMedicationName checks a name against the knowledge base.
func (p *Pipeline) ValidateMedicationName(name string) parser.NameValidation {
	return parser.ValidateMedicationName(name)
}

// ProcessImage runs the full image path: quality gate, OCR, then parse. The
// quality assessment is always returned so callers can show the
// recommendations for a refused image.
func (p *Pipeline) ProcessImage(ctx context.Context, image []byte, opts parser.Options) (parser.ParsedPrescription, quality.Assessment, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.process_image",
		trace.WithAttributes(attribute.Int("image_bytes", len(image))))
	defer span.End()

	if p.gate == nil {
		return parser.ParsedPrescription{}, quality.Assessment{}, errors.New("image intake is not configured")
	}

	ocr, assessment, err := p.gate.Process(ctx, image)
	if err != nil {
		span.RecordError(err)
		var rejected *quality.NotProcessableError
		if p.metrics != nil && errors.As(err, &rejected) {
			p.metrics.ImagesRejected.Inc()
		}
		return parser.ParsedPrescription{}, assessment, err
	}

	p.logger.Debug("image recognised",
		zap.Float64("ocr_confidence", ocr.Confidence),
		zap.Int("text_length", len(ocr.Text)))

	result := p.ParsePrescription(ctx, ocr.Text, opts)
	return result, assessment, nil
}
