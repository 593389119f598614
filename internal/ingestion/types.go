// Package ingestion turns a parsed prescription into stored medication,
// schedule and stock records. Per-item validation failures are collected in
// the result and never abort the batch; only storage failures propagate.
package ingestion

import (
	"context"
	"fmt"
	"time"

	"github.com/meditrack/rxpipeline/internal/interaction"
	"github.com/meditrack/rxpipeline/internal/parser"
)

// Store is the persistence boundary. All writes for one Ingest call happen
// inside a single WithinTransaction scope; implementations decide what a
// transaction means for their backend.
type Store interface {
	CreateMedication(ctx context.Context, rec MedicationRecord) (string, error)
	CreateSchedule(ctx context.Context, rec ScheduleRecord) (string, error)
	CheckStock(ctx context.Context, medicationID string) (int, error)
	DeductStock(ctx context.Context, medicationID string, quantity int) error
	RecordSafetyFindings(ctx context.Context, findings []interaction.Finding) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MedicationRecord is the storage shape of one medication.
type MedicationRecord struct {
	Name           string     `json:"name"`
	GenericName    string     `json:"genericName,omitempty"`
	Strength       string     `json:"strength,omitempty"`
	DosageAmount   float64    `json:"dosageAmount,omitempty"`
	DosageUnit     string     `json:"dosageUnit,omitempty"`
	Frequency      string     `json:"frequency,omitempty"`
	Timing         string     `json:"timing,omitempty"`
	Quantity       int        `json:"quantity,omitempty"`
	Repeats        int        `json:"repeats,omitempty"`
	Instructions   string     `json:"instructions,omitempty"`
	MedicationType string     `json:"medicationType,omitempty"`
	Manufacturer   string     `json:"manufacturer,omitempty"`
	ICD10Codes     []string   `json:"icd10Codes,omitempty"`
	RenewalDate    *time.Time `json:"renewalDate,omitempty"`
}

// ScheduleRecord is one dosing slot for a stored medication.
type ScheduleRecord struct {
	MedicationID string `json:"medicationId"`
	Slot         string `json:"slot"`
	Time         string `json:"time"`
}

// MedicationInput is one medication to ingest, the parsed fields plus
// dispensing metadata the parser does not carry.
type MedicationInput struct {
	parser.ParsedMedication
	Manufacturer string `json:"manufacturer,omitempty"`
}

// Request is the input to one Ingest call: one prescription's medications
// with its document context.
type Request struct {
	Medications    []MedicationInput  `json:"medications"`
	ICD10Codes     []parser.ICD10Code `json:"icd10Codes,omitempty"`
	PrescribedDate *time.Time         `json:"prescribedDate,omitempty"`
	Conditions     []string           `json:"conditions,omitempty"`
}

// RequestFromParsed builds a Request from a parse result.
func RequestFromParsed(rx parser.ParsedPrescription) Request {
	req := Request{
		ICD10Codes:     rx.ICD10Codes,
		PrescribedDate: rx.PrescribedDate,
	}
	for _, med := range rx.Medications {
		req.Medications = append(req.Medications, MedicationInput{ParsedMedication: med})
	}
	return req
}

// Flags switches the optional ingestion stages.
type Flags struct {
	AutoCreateSchedules bool `json:"autoCreateSchedules"`
	AutoDeductStock     bool `json:"autoDeductStock"`
}

// ProcessingError is a structured per-medication validation failure.
type ProcessingError struct {
	Index      int    `json:"index"`
	Medication string `json:"medication"`
	Field      string `json:"field"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("%s[%d].%s: %s", e.Medication, e.Index, e.Field, e.Message)
}

// Validation error codes.
const (
	CodeInvalidStrength       = "INVALID_STRENGTH_FORMAT"
	CodeInvalidICD10          = "INVALID_ICD10_FORMAT"
	CodeUnknownManufacturer   = "UNRECOGNIZED_MANUFACTURER"
	CodeMissingMedicationName = "MISSING_MEDICATION_NAME"
)

// CreatedMedication records one stored medication.
type CreatedMedication struct {
	ID          string     `json:"id"`
	Index       int        `json:"index"`
	Name        string     `json:"name"`
	RenewalDate *time.Time `json:"renewalDate,omitempty"`
}

// CreatedSchedule records one stored dosing slot.
type CreatedSchedule struct {
	ID           string `json:"id"`
	MedicationID string `json:"medicationId"`
	Slot         string `json:"slot"`
	Time         string `json:"time"`
}

// Result aggregates the per-medication outcomes of one Ingest call. The
// call returns normally even when some medications fail validation; callers
// inspect ProcessingErrors to know whether fix-up is needed. Each list
// implies its own remediation: ProcessingErrors mean bad data,
// InteractionWarnings and ContraindicationWarnings mean clinical review,
// StockWarnings mean reordering.
type Result struct {
	CreatedMedications       []CreatedMedication   `json:"createdMedications"`
	CreatedSchedules         []CreatedSchedule     `json:"createdSchedules"`
	InteractionWarnings      []interaction.Finding `json:"interactionWarnings"`
	ContraindicationWarnings []interaction.Finding `json:"contraindicationWarnings"`
	StockWarnings            []string              `json:"stockWarnings"`
	ProcessingErrors         []ProcessingError     `json:"processingErrors"`
	Warnings                 []string              `json:"warnings,omitempty"`
}

func newResult() *Result {
	return &Result{
		CreatedMedications:       []CreatedMedication{},
		CreatedSchedules:         []CreatedSchedule{},
		InteractionWarnings:      []interaction.Finding{},
		ContraindicationWarnings: []interaction.Finding{},
		StockWarnings:            []string{},
		ProcessingErrors:         []ProcessingError{},
	}
}
