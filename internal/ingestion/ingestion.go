package ingestion

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/meditrack/rxpipeline/internal/interaction"
	"github.com/meditrack/rxpipeline/internal/knowledge"
)

// Orchestrator runs the bulk ingestion flow: validate, safety-check, then
// write medication, schedule and stock records through the Store.
type Orchestrator struct {
	store  Store
	logger *zap.Logger
}

// NewOrchestrator creates an orchestrator writing through store.
func NewOrchestrator(store Store, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{store: store, logger: logger}
}

// plannedMedication is a validated medication awaiting storage.
type plannedMedication struct {
	index     int
	record    MedicationRecord
	schedules []ScheduleRecord
	quantity  int
}

// Ingest processes one prescription's medications independently. A
// medication failing validation is reported in ProcessingErrors and the
// batch continues; the call returns an error only when storage itself
// fails, in which case every write of this call is rolled back together.
func (o *Orchestrator) Ingest(ctx context.Context, req Request, flags Flags) (*Result, error) {
	result := newResult()

	o.checkSafety(req, result)
	o.resolveICD10(req, result)

	var planned []plannedMedication
	for i, med := range req.Medications {
		if errs := validate(i, med); len(errs) > 0 {
			result.ProcessingErrors = append(result.ProcessingErrors, errs...)
			o.logger.Warn("medication failed validation",
				zap.Int("index", i),
				zap.String("name", med.Name),
				zap.Int("errors", len(errs)))
			continue
		}

		plan := plannedMedication{
			index:    i,
			record:   buildRecord(med, req),
			quantity: med.Quantity,
		}
		if flags.AutoCreateSchedules {
			plan.schedules = deriveSchedule(med)
		}
		planned = append(planned, plan)
	}

	if len(planned) == 0 {
		return result, nil
	}

	err := o.store.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, plan := range planned {
			if err := o.persist(ctx, plan, flags, result); err != nil {
				return err
			}
		}
		if n := len(result.InteractionWarnings) + len(result.ContraindicationWarnings); n > 0 {
			findings := make([]interaction.Finding, 0, n)
			findings = append(findings, result.InteractionWarnings...)
			findings = append(findings, result.ContraindicationWarnings...)
			if err := o.store.RecordSafetyFindings(ctx, findings); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("ingest prescription: %w", err)
	}

	o.logger.Info("prescription ingested",
		zap.Int("created", len(result.CreatedMedications)),
		zap.Int("failed", len(result.ProcessingErrors)),
		zap.Int("interactions", len(result.InteractionWarnings)))
	return result, nil
}

func (o *Orchestrator) persist(ctx context.Context, plan plannedMedication, flags Flags, result *Result) error {
	id, err := o.store.CreateMedication(ctx, plan.record)
	if err != nil {
		return fmt.Errorf("create medication %q: %w", plan.record.Name, err)
	}
	result.CreatedMedications = append(result.CreatedMedications, CreatedMedication{
		ID:          id,
		Index:       plan.index,
		Name:        plan.record.Name,
		RenewalDate: plan.record.RenewalDate,
	})

	for _, rec := range plan.schedules {
		rec.MedicationID = id
		scheduleID, err := o.store.CreateSchedule(ctx, rec)
		if err != nil {
			return fmt.Errorf("create schedule for %q: %w", plan.record.Name, err)
		}
		result.CreatedSchedules = append(result.CreatedSchedules, CreatedSchedule{
			ID:           scheduleID,
			MedicationID: id,
			Slot:         rec.Slot,
			Time:         rec.Time,
		})
	}

	if flags.AutoDeductStock && plan.quantity > 0 {
		available, err := o.store.CheckStock(ctx, id)
		if err != nil {
			return fmt.Errorf("check stock for %q: %w", plan.record.Name, err)
		}
		if available < plan.quantity {
			result.StockWarnings = append(result.StockWarnings, fmt.Sprintf(
				"insufficient stock for %s: have %d, need %d", plan.record.Name, available, plan.quantity))
		} else if err := o.store.DeductStock(ctx, id, plan.quantity); err != nil {
			return fmt.Errorf("deduct stock for %q: %w", plan.record.Name, err)
		}
	}
	return nil
}

// checkSafety runs the interaction engine over the effective generic names.
func (o *Orchestrator) checkSafety(req Request, result *Result) {
	names := make([]string, 0, len(req.Medications))
	for _, med := range req.Medications {
		name := med.Name
		if med.GenericName != "" {
			name = med.GenericName
		}
		if name != "" {
			names = append(names, name)
		}
	}
	findings := interaction.Check(names, req.Conditions)
	result.InteractionWarnings = findings.Interactions
	result.ContraindicationWarnings = findings.Contraindications
}

// resolveICD10 checks the attached codes. Malformed codes are structured
// errors; well-formed codes missing from the reference table only warn.
func (o *Orchestrator) resolveICD10(req Request, result *Result) {
	for _, code := range req.ICD10Codes {
		if !validateICD10(code.Code) {
			result.ProcessingErrors = append(result.ProcessingErrors, ProcessingError{
				Index:   -1,
				Field:   "icd10",
				Code:    CodeInvalidICD10,
				Message: fmt.Sprintf("code %q does not match the ICD-10 format", code.Code),
			})
			continue
		}
		if _, ok := knowledge.ICD10Lookup(code.Code); !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Unknown ICD-10 code: %s", code.Code))
		}
	}
}

func buildRecord(med MedicationInput, req Request) MedicationRecord {
	codes := make([]string, 0, len(req.ICD10Codes))
	for _, c := range req.ICD10Codes {
		codes = append(codes, c.Code)
	}
	return MedicationRecord{
		Name:           med.Name,
		GenericName:    med.GenericName,
		Strength:       med.Strength,
		DosageAmount:   med.DosageAmount,
		DosageUnit:     med.DosageUnit,
		Frequency:      med.Frequency,
		Timing:         med.Timing,
		Quantity:       med.Quantity,
		Repeats:        med.Repeats,
		Instructions:   med.Instructions,
		MedicationType: med.MedicationType,
		Manufacturer:   med.Manufacturer,
		ICD10Codes:     codes,
		RenewalDate:    renewalDate(med, req.PrescribedDate),
	}
}
