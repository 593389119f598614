// Package handlers provides HTTP handlers for the prescription pipeline API.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/meditrack/rxpipeline/internal/api/middleware"
	"github.com/meditrack/rxpipeline/internal/ingestion"
	"github.com/meditrack/rxpipeline/internal/parser"
	"github.com/meditrack/rxpipeline/internal/pipeline"
	"github.com/meditrack/rxpipeline/internal/quality"
)

// maxImageBytes caps prescription image uploads.
const maxImageBytes = 20 << 20

// PrescriptionHandler handles prescription pipeline endpoints
type PrescriptionHandler struct {
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
	tracer   trace.Tracer
}

// NewPrescriptionHandler creates a new handler
func NewPrescriptionHandler(p *pipeline.Pipeline, logger *zap.Logger) *PrescriptionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrescriptionHandler{
		pipeline: p,
		logger:   logger,
		tracer:   otel.Tracer("prescription-handler"),
	}
}

// Routes returns the handler routes
func (h *PrescriptionHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/parse", h.Parse)
	r.Post("/ingest", h.Ingest)
	r.Post("/interactions", h.Interactions)
	r.Post("/validate-name", h.ValidateName)
	r.Post("/process-image", h.ProcessImage)
	return r
}

// ParseRequest is the request body for parsing prescription text
type ParseRequest struct {
	Text    string          `json:"text"`
	Options *parser.Options `json:"options,omitempty"`
}

// Parse handles POST /prescriptions/parse
func (h *PrescriptionHandler) Parse(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "parse_prescription")
	defer span.End()

	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	opts := parser.DefaultOptions()
	if req.Options != nil {
		opts = *req.Options
	}

	result := h.pipeline.ParsePrescription(ctx, req.Text, opts)
	span.SetAttributes(
		attribute.Int("medications", len(result.Medications)),
		attribute.Float64("confidence", result.Confidence),
	)

	h.logger.Info("prescription parsed",
		zap.String("request_id", middleware.GetRequestID(ctx)),
		zap.Int("medications", len(result.Medications)),
		zap.Float64("confidence", result.Confidence),
	)

	h.writeJSON(w, http.StatusOK, result)
}

// IngestRequest is the request body for ingesting a prescription. Either
// raw text or an already-parsed medication list may be supplied.
type IngestRequest struct {
	Text        string                      `json:"text,omitempty"`
	Options     *parser.Options             `json:"options,omitempty"`
	Medications []ingestion.MedicationInput `json:"medications,omitempty"`
	Conditions  []string                    `json:"conditions,omitempty"`
	Flags       ingestion.Flags             `json:"flags"`
}

// IngestResponse pairs the parse result with the ingestion outcome.
type IngestResponse struct {
	Parsed *parser.ParsedPrescription `json:"parsed,omitempty"`
	Result *ingestion.Result          `json:"result"`
}

// Ingest handles POST /prescriptions/ingest
func (h *PrescriptionHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ingest_prescription")
	defer span.End()

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Text == "" && len(req.Medications) == 0 {
		h.jsonError(w, "text or medications is required", http.StatusBadRequest)
		return
	}

	var (
		ingestReq ingestion.Request
		resp      IngestResponse
	)
	if req.Text != "" {
		opts := parser.DefaultOptions()
		if req.Options != nil {
			opts = *req.Options
		}
		parsed := h.pipeline.ParsePrescription(ctx, req.Text, opts)
		ingestReq = ingestion.RequestFromParsed(parsed)
		resp.Parsed = &parsed
	} else {
		ingestReq = ingestion.Request{Medications: req.Medications}
	}
	ingestReq.Conditions = req.Conditions

	result, err := h.pipeline.IngestPrescription(ctx, ingestReq, req.Flags)
	if err != nil {
		h.logger.Error("ingestion failed",
			zap.String("request_id", middleware.GetRequestID(ctx)),
			zap.Error(err))
		span.RecordError(err)
		h.jsonError(w, "failed to store prescription", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(
		attribute.Int("created", len(result.CreatedMedications)),
		attribute.Int("errors", len(result.ProcessingErrors)),
	)

	h.logger.Info("prescription ingested",
		zap.String("request_id", middleware.GetRequestID(ctx)),
		zap.Int("created", len(result.CreatedMedications)),
		zap.Int("errors", len(result.ProcessingErrors)),
	)

	resp.Result = result
	status := http.StatusCreated
	if len(result.ProcessingErrors) > 0 {
		// Partial success still creates the valid medications.
		status = http.StatusMultiStatus
	}
	h.writeJSON(w, status, resp)
}

// InteractionsRequest is the request body for the safety check
type InteractionsRequest struct {
	Medications []string `json:"medications"`
	Conditions  []string `json:"conditions,omitempty"`
}

// Interactions handles POST /prescriptions/interactions
func (h *PrescriptionHandler) Interactions(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "check_interactions")
	defer span.End()

	var req InteractionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Medications) == 0 {
		h.jsonError(w, "medications is required", http.StatusBadRequest)
		return
	}

	result := h.pipeline.CheckInteractions(ctx, req.Medications, req.Conditions)
	span.SetAttributes(
		attribute.Int("interactions", len(result.Interactions)),
		attribute.Int("contraindications", len(result.Contraindications)),
	)

	h.writeJSON(w, http.StatusOK, result)
}

// ValidateNameRequest is the request body for name validation
type ValidateNameRequest struct {
	Name string `json:"name"`
}

// ValidateName handles POST /prescriptions/validate-name
func (h *PrescriptionHandler) ValidateName(w http.ResponseWriter, r *http.Request) {
	var req ValidateNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		h.jsonError(w, "name is required", http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, h.pipeline.ValidateMedicationName(req.Name))
}

// ProcessImageResponse reports the image path outcome. Assessment is
// populated even when the image was refused.
type ProcessImageResponse struct {
	Parsed     *parser.ParsedPrescription `json:"parsed,omitempty"`
	Assessment quality.Assessment         `json:"assessment"`
	Error      string                     `json:"error,omitempty"`
}

// ProcessImage handles POST /prescriptions/process-image. The request body
// is the raw image bytes.
func (h *PrescriptionHandler) ProcessImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "process_image")
	defer span.End()

	image, err := io.ReadAll(io.LimitReader(r.Body, maxImageBytes+1))
	if err != nil {
		h.jsonError(w, "failed to read image", http.StatusBadRequest)
		return
	}
	if len(image) == 0 {
		h.jsonError(w, "image body is required", http.StatusBadRequest)
		return
	}
	if len(image) > maxImageBytes {
		h.jsonError(w, "image too large", http.StatusRequestEntityTooLarge)
		return
	}

	parsed, assessment, err := h.pipeline.ProcessImage(ctx, image, parser.DefaultOptions())
	if err != nil {
		span.RecordError(err)
		var rejected *quality.NotProcessableError
		if errors.As(err, &rejected) {
			h.writeJSON(w, http.StatusUnprocessableEntity, ProcessImageResponse{
				Assessment: assessment,
				Error:      "image quality too low for recognition",
			})
			return
		}
		h.logger.Error("image processing failed",
			zap.String("request_id", middleware.GetRequestID(ctx)),
			zap.Error(err))
		h.jsonError(w, "failed to process image", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, ProcessImageResponse{
		Parsed:     &parsed,
		Assessment: assessment,
	})
}

func (h *PrescriptionHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *PrescriptionHandler) jsonError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
