package ingestion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/meditrack/rxpipeline/internal/interaction"
	"github.com/meditrack/rxpipeline/internal/parser"
)

// memStore is an in-memory Store for tests. Stock defaults to 100 units per
// medication unless set explicitly by name.
type memStore struct {
	medications map[string]MedicationRecord
	schedules   []ScheduleRecord
	stock       map[string]int
	stockByName map[string]int
	findings    []interaction.Finding
	nextID      int
	failCreate  bool
}

func newMemStore() *memStore {
	return &memStore{
		medications: map[string]MedicationRecord{},
		stock:       map[string]int{},
		stockByName: map[string]int{},
	}
}

func (s *memStore) CreateMedication(_ context.Context, rec MedicationRecord) (string, error) {
	if s.failCreate {
		return "", errors.New("storage unreachable")
	}
	s.nextID++
	id := fmt.Sprintf("med-%d", s.nextID)
	s.medications[id] = rec
	if q, ok := s.stockByName[rec.Name]; ok {
		s.stock[id] = q
	} else {
		s.stock[id] = 100
	}
	return id, nil
}

func (s *memStore) CreateSchedule(_ context.Context, rec ScheduleRecord) (string, error) {
	s.schedules = append(s.schedules, rec)
	return fmt.Sprintf("sched-%d", len(s.schedules)), nil
}

func (s *memStore) CheckStock(_ context.Context, medicationID string) (int, error) {
	return s.stock[medicationID], nil
}

func (s *memStore) DeductStock(_ context.Context, medicationID string, quantity int) error {
	s.stock[medicationID] -= quantity
	return nil
}

func (s *memStore) RecordSafetyFindings(_ context.Context, findings []interaction.Finding) error {
	s.findings = append(s.findings, findings...)
	return nil
}

func (s *memStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func med(name, strength, frequency string, quantity int) MedicationInput {
	return MedicationInput{ParsedMedication: parser.ParsedMedication{
		Name:       name,
		Strength:   strength,
		Frequency:  frequency,
		Quantity:   quantity,
		Confidence: 1.0,
	}}
}

func TestIngestPartialFailure(t *testing.T) {
	store := newMemStore()
	o := NewOrchestrator(store, nil)

	req := Request{Medications: []MedicationInput{
		med("Metformin", "500mg", "twice daily", 60),
		med("Paracetamol", "500mg", "three times daily", 30),
		med("Atorvastatin", "notanumber", "once daily", 30),
		med("Amlodipine", "5mg", "once daily", 30),
		med("Losartan", "50mg", "once daily", 30),
	}}

	result, err := o.Ingest(context.Background(), req, Flags{})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if len(result.CreatedMedications) != 4 {
		t.Errorf("created %d medications, want 4", len(result.CreatedMedications))
	}
	if len(result.ProcessingErrors) != 1 {
		t.Fatalf("got %d processing errors, want 1: %+v", len(result.ProcessingErrors), result.ProcessingErrors)
	}

	pe := result.ProcessingErrors[0]
	if pe.Index != 2 {
		t.Errorf("error index = %d, want 2", pe.Index)
	}
	if pe.Field != "strength" || pe.Code != CodeInvalidStrength {
		t.Errorf("error = %+v, want strength/%s", pe, CodeInvalidStrength)
	}
	if pe.Medication != "Atorvastatin" {
		t.Errorf("error medication = %q", pe.Medication)
	}
}

func TestIngestValidStrengthForms(t *testing.T) {
	store := newMemStore()
	o := NewOrchestrator(store, nil)

	req := Request{Medications: []MedicationInput{
		med("Metformin", "500mg", "twice daily", 0),
		med("Insulin glargine", "100units/ml", "once daily", 0),
		med("Hydrocortisone", "0.5%", "twice daily", 0),
	}}
	result, err := o.Ingest(context.Background(), req, Flags{})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if len(result.ProcessingErrors) != 0 {
		t.Errorf("unexpected errors: %+v", result.ProcessingErrors)
	}
	if len(result.CreatedMedications) != 3 {
		t.Errorf("created %d, want 3", len(result.CreatedMedications))
	}
}

func TestIngestUnknownManufacturer(t *testing.T) {
	store := newMemStore()
	o := NewOrchestrator(store, nil)

	input := med("Metformin", "500mg", "twice daily", 0)
	input.Manufacturer = "Acme Pharma"
	result, err := o.Ingest(context.Background(), Request{Medications: []MedicationInput{input}}, Flags{})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if len(result.ProcessingErrors) != 1 || result.ProcessingErrors[0].Code != CodeUnknownManufacturer {
		t.Fatalf("errors = %+v, want one %s", result.ProcessingErrors, CodeUnknownManufacturer)
	}
	if len(result.CreatedMedications) != 0 {
		t.Errorf("invalid medication must not be created")
	}
}

func TestIngestCreatesSchedules(t *testing.T) {
	store := newMemStore()
	o := NewOrchestrator(store, nil)

	req := Request{Medications: []MedicationInput{
		med("Metformin", "500mg", "three times daily", 0),
	}}
	result, err := o.Ingest(context.Background(), req, Flags{AutoCreateSchedules: true})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if len(result.CreatedSchedules) != 3 {
		t.Fatalf("got %d schedules, want 3", len(result.CreatedSchedules))
	}
	want := []string{SlotMorning, SlotNoon, SlotNight}
	for i, slot := range want {
		if result.CreatedSchedules[i].Slot != slot {
			t.Errorf("schedule %d slot = %q, want %q", i, result.CreatedSchedules[i].Slot, slot)
		}
	}
}

func TestIngestCustomTimesOverrideFrequency(t *testing.T) {
	store := newMemStore()
	o := NewOrchestrator(store, nil)

	input := med("Metformin", "500mg", "twice daily", 0)
	input.CustomTimes = []string{"07:30", "18:00"}
	result, err := o.Ingest(context.Background(), Request{Medications: []MedicationInput{input}},
		Flags{AutoCreateSchedules: true})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if len(result.CreatedSchedules) != 2 {
		t.Fatalf("got %d schedules, want 2", len(result.CreatedSchedules))
	}
	if result.CreatedSchedules[0].Time != "07:30" || result.CreatedSchedules[1].Time != "18:00" {
		t.Errorf("schedules = %+v", result.CreatedSchedules)
	}
	if result.CreatedSchedules[0].Slot != SlotCustom {
		t.Errorf("slot = %q, want custom", result.CreatedSchedules[0].Slot)
	}
}

func TestIngestAsNeededNoScheduleNoRenewal(t *testing.T) {
	store := newMemStore()
	o := NewOrchestrator(store, nil)

	prescribed := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	input := med("Paracetamol", "500mg", "", 20)
	input.Timing = "as needed"

	result, err := o.Ingest(context.Background(),
		Request{Medications: []MedicationInput{input}, PrescribedDate: &prescribed},
		Flags{AutoCreateSchedules: true})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if len(result.CreatedSchedules) != 0 {
		t.Errorf("as-needed medication must not get a schedule: %+v", result.CreatedSchedules)
	}
	if result.CreatedMedications[0].RenewalDate != nil {
		t.Errorf("as-needed medication must not get a renewal date")
	}
}

func TestIngestRenewalDate(t *testing.T) {
	store := newMemStore()
	o := NewOrchestrator(store, nil)

	prescribed := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	req := Request{
		Medications:    []MedicationInput{med("Metformin", "500mg", "twice daily", 60)},
		PrescribedDate: &prescribed,
	}
	result, err := o.Ingest(context.Background(), req, Flags{})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}

	// 60 tablets at 2 per day lasts 30 days.
	want := prescribed.AddDate(0, 0, 30)
	got := result.CreatedMedications[0].RenewalDate
	if got == nil || !got.Equal(want) {
		t.Errorf("renewal = %v, want %v", got, want)
	}
}

func TestIngestStockWarning(t *testing.T) {
	store := newMemStore()
	store.stockByName["Metformin"] = 10
	o := NewOrchestrator(store, nil)

	req := Request{Medications: []MedicationInput{med("Metformin", "500mg", "twice daily", 60)}}
	result, err := o.Ingest(context.Background(), req, Flags{AutoDeductStock: true})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if len(result.StockWarnings) != 1 {
		t.Fatalf("got %d stock warnings, want 1", len(result.StockWarnings))
	}
	if !strings.Contains(result.StockWarnings[0], "Metformin") {
		t.Errorf("warning = %q", result.StockWarnings[0])
	}
	// Ingestion still proceeds.
	if len(result.CreatedMedications) != 1 {
		t.Errorf("created %d medications, want 1", len(result.CreatedMedications))
	}
}

func TestIngestDeductsStock(t *testing.T) {
	store := newMemStore()
	o := NewOrchestrator(store, nil)

	req := Request{Medications: []MedicationInput{med("Metformin", "500mg", "twice daily", 60)}}
	result, err := o.Ingest(context.Background(), req, Flags{AutoDeductStock: true})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	id := result.CreatedMedications[0].ID
	if store.stock[id] != 40 {
		t.Errorf("stock = %d, want 40", store.stock[id])
	}
	if len(result.StockWarnings) != 0 {
		t.Errorf("unexpected stock warnings: %v", result.StockWarnings)
	}
}

func TestIngestSafetyFindings(t *testing.T) {
	store := newMemStore()
	o := NewOrchestrator(store, nil)

	req := Request{
		Medications: []MedicationInput{
			med("Warfarin", "5mg", "once daily", 30),
			med("Aspirin", "100mg", "once daily", 30),
		},
		Conditions: []string{"peptic ulcer"},
	}
	result, err := o.Ingest(context.Background(), req, Flags{})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if len(result.InteractionWarnings) != 1 {
		t.Errorf("got %d interaction warnings, want 1", len(result.InteractionWarnings))
	}
	if len(result.ContraindicationWarnings) != 1 {
		t.Errorf("got %d contraindication warnings, want 1", len(result.ContraindicationWarnings))
	}
	// Safety findings never block ingestion.
	if len(result.CreatedMedications) != 2 {
		t.Errorf("created %d medications, want 2", len(result.CreatedMedications))
	}
}

func TestIngestICD10Resolution(t *testing.T) {
	store := newMemStore()
	o := NewOrchestrator(store, nil)

	req := Request{
		Medications: []MedicationInput{med("Metformin", "500mg", "twice daily", 0)},
		ICD10Codes: []parser.ICD10Code{
			{Code: "E11"},
			{Code: "Q99"},
			{Code: "bogus"},
		},
	}
	result, err := o.Ingest(context.Background(), req, Flags{})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}

	var formatErrs int
	for _, pe := range result.ProcessingErrors {
		if pe.Code == CodeInvalidICD10 {
			formatErrs++
		}
	}
	if formatErrs != 1 {
		t.Errorf("got %d format errors, want 1: %+v", formatErrs, result.ProcessingErrors)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Q99") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want unknown-code warning for Q99", result.Warnings)
	}
}

func TestIngestStorageFailurePropagates(t *testing.T) {
	store := newMemStore()
	store.failCreate = true
	o := NewOrchestrator(store, nil)

	req := Request{Medications: []MedicationInput{med("Metformin", "500mg", "twice daily", 0)}}
	if _, err := o.Ingest(context.Background(), req, Flags{}); err == nil {
		t.Fatal("storage failure must propagate")
	}
}

func TestDailyRate(t *testing.T) {
	tests := []struct {
		frequency string
		want      float64
		ok        bool
	}{
		{"once daily", 1, true},
		{"twice daily", 2, true},
		{"three times daily", 3, true},
		{"four times daily", 4, true},
		{"every other day", 0.5, true},
		{"weekly", 1.0 / 7, true},
		{"every 8 hours", 3, true},
		{"", 0, false},
		{"whenever", 0, false},
	}
	for _, tt := range tests {
		got, ok := dailyRate(tt.frequency)
		if ok != tt.ok || got != tt.want {
			t.Errorf("dailyRate(%q) = %v/%v, want %v/%v", tt.frequency, got, ok, tt.want, tt.ok)
		}
	}
}
