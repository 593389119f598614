// Package integration provides end-to-end tests for the prescription
// pipeline API over an in-memory store.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meditrack/rxpipeline/internal/api/handlers"
	"github.com/meditrack/rxpipeline/internal/ingestion"
	"github.com/meditrack/rxpipeline/internal/interaction"
	"github.com/meditrack/rxpipeline/internal/parser"
	"github.com/meditrack/rxpipeline/internal/pipeline"
	"github.com/meditrack/rxpipeline/internal/quality"
	"github.com/meditrack/rxpipeline/pkg/idempotency"
)

// memStore is an in-memory ingestion.Store for end-to-end tests.
type memStore struct {
	mu          sync.Mutex
	medications map[string]ingestion.MedicationRecord
	schedules   map[string]ingestion.ScheduleRecord
	stock       map[string]int
	findings    []interaction.Finding
	nextID      int
}

func newMemStore() *memStore {
	return &memStore{
		medications: make(map[string]ingestion.MedicationRecord),
		schedules:   make(map[string]ingestion.ScheduleRecord),
		stock:       make(map[string]int),
	}
}

func (s *memStore) CreateMedication(ctx context.Context, rec ingestion.MedicationRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := fmt.Sprintf("med-%d", s.nextID)
	s.medications[id] = rec
	s.stock[id] = 500
	return id, nil
}

func (s *memStore) CreateSchedule(ctx context.Context, rec ingestion.ScheduleRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := fmt.Sprintf("sched-%d", s.nextID)
	s.schedules[id] = rec
	return id, nil
}

func (s *memStore) CheckStock(ctx context.Context, medicationID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stock[medicationID], nil
}

func (s *memStore) DeductStock(ctx context.Context, medicationID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[medicationID] -= quantity
	return nil
}

func (s *memStore) RecordSafetyFindings(ctx context.Context, findings []interaction.Finding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findings = append(s.findings, findings...)
	return nil
}

func (s *memStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// stubImageService implements quality.Assessor and quality.Recognizer.
type stubImageService struct {
	processable bool
	text        string
}

func (s *stubImageService) AssessQuality(ctx context.Context, image []byte) (quality.Assessment, error) {
	return quality.Assessment{
		Overall:         0.9,
		IsProcessable:   s.processable,
		Recommendations: []string{"Retake the photo in better light"},
	}, nil
}

func (s *stubImageService) Recognize(ctx context.Context, image []byte) (quality.OCRResult, error) {
	return quality.OCRResult{Text: s.text, Confidence: 0.95}, nil
}

func newTestServer(t *testing.T, store ingestion.Store, gate *quality.Gate) *httptest.Server {
	t.Helper()

	pipe := pipeline.New(pipeline.Config{Store: store, Gate: gate})
	handler := handlers.NewPrescriptionHandler(pipe, nil)

	r := chi.NewRouter()
	r.Mount("/api/v1/prescriptions", handler.Routes())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestParseEndpoint(t *testing.T) {
	srv := newTestServer(t, newMemStore(), nil)

	text := "METFORMIN 500mg\nTake 1 tablet twice daily with meals\nQty: 60\nRepeats: 5"
	resp := postJSON(t, srv.URL+"/api/v1/prescriptions/parse", handlers.ParseRequest{Text: text})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result parser.ParsedPrescription
	decodeJSON(t, resp, &result)

	if len(result.Medications) != 1 {
		t.Fatalf("medications = %d, want 1", len(result.Medications))
	}
	med := result.Medications[0]
	if med.Name != "Metformin" {
		t.Errorf("name = %q, want Metformin", med.Name)
	}
	if med.Quantity != 60 || med.Repeats != 5 {
		t.Errorf("quantity/repeats = %d/%d, want 60/5", med.Quantity, med.Repeats)
	}
	if med.Confidence <= 0.8 {
		t.Errorf("confidence = %v, want > 0.8", med.Confidence)
	}
}

func TestIngestEndpointFromText(t *testing.T) {
	store := newMemStore()
	srv := newTestServer(t, store, nil)

	text := "GLUCOPHAGE 500mg\nTake 1 tablet twice daily with meals\nQty: 60"
	resp := postJSON(t, srv.URL+"/api/v1/prescriptions/ingest", handlers.IngestRequest{
		Text:  text,
		Flags: ingestion.Flags{AutoCreateSchedules: true},
	})

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var result handlers.IngestResponse
	decodeJSON(t, resp, &result)

	if result.Parsed == nil {
		t.Fatal("parsed result missing from response")
	}
	if len(result.Result.CreatedMedications) != 1 {
		t.Fatalf("created = %d, want 1", len(result.Result.CreatedMedications))
	}
	if got := result.Result.CreatedMedications[0].Name; got != "Metformin" {
		t.Errorf("created name = %q, want Metformin", got)
	}
	if len(result.Result.CreatedSchedules) != 2 {
		t.Errorf("schedules = %d, want 2 for twice daily", len(result.Result.CreatedSchedules))
	}
	if len(store.medications) != 1 {
		t.Errorf("store has %d medications, want 1", len(store.medications))
	}
}

func TestIngestEndpointPartialFailure(t *testing.T) {
	store := newMemStore()
	srv := newTestServer(t, store, nil)

	meds := []ingestion.MedicationInput{
		{ParsedMedication: parser.ParsedMedication{Name: "Metformin", Strength: "500mg", Frequency: "twice daily", Confidence: 1.0}},
		{ParsedMedication: parser.ParsedMedication{Name: "Atorvastatin", Strength: "notanumber", Frequency: "once daily", Confidence: 1.0}},
	}
	resp := postJSON(t, srv.URL+"/api/v1/prescriptions/ingest", handlers.IngestRequest{Medications: meds})

	if resp.StatusCode != http.StatusMultiStatus {
		t.Fatalf("status = %d, want 207", resp.StatusCode)
	}

	var result handlers.IngestResponse
	decodeJSON(t, resp, &result)

	if len(result.Result.CreatedMedications) != 1 {
		t.Fatalf("created = %d, want 1", len(result.Result.CreatedMedications))
	}
	if len(result.Result.ProcessingErrors) != 1 {
		t.Fatalf("errors = %d, want 1", len(result.Result.ProcessingErrors))
	}
	perr := result.Result.ProcessingErrors[0]
	if perr.Code != ingestion.CodeInvalidStrength {
		t.Errorf("error code = %q, want %q", perr.Code, ingestion.CodeInvalidStrength)
	}
	if perr.Medication != "Atorvastatin" {
		t.Errorf("error medication = %q, want Atorvastatin", perr.Medication)
	}
}

func TestInteractionsEndpoint(t *testing.T) {
	srv := newTestServer(t, newMemStore(), nil)

	resp := postJSON(t, srv.URL+"/api/v1/prescriptions/interactions", handlers.InteractionsRequest{
		Medications: []string{"Coumadin", "Ecotrin"},
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result interaction.Result
	decodeJSON(t, resp, &result)

	if len(result.Interactions) != 1 {
		t.Fatalf("interactions = %d, want 1", len(result.Interactions))
	}
	finding := result.Interactions[0]
	if finding.Severity != interaction.SeverityHigh {
		t.Errorf("severity = %q, want high", finding.Severity)
	}
	if !strings.Contains(strings.ToLower(finding.Description), "bleeding") {
		t.Errorf("description %q does not mention bleeding", finding.Description)
	}
}

func TestValidateNameEndpoint(t *testing.T) {
	srv := newTestServer(t, newMemStore(), nil)

	resp := postJSON(t, srv.URL+"/api/v1/prescriptions/validate-name", handlers.ValidateNameRequest{Name: "GLUCOPHAGE"})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result parser.NameValidation
	decodeJSON(t, resp, &result)

	if !result.IsValid {
		t.Error("GLUCOPHAGE should be valid")
	}
	if result.ExpandedName != "Metformin" {
		t.Errorf("expanded = %q, want Metformin", result.ExpandedName)
	}
}

func TestProcessImageEndpoint(t *testing.T) {
	stub := &stubImageService{
		processable: true,
		text:        "VENTOLIN inhaler\nUse 2 puffs as needed",
	}
	gate, err := quality.NewGate(stub, stub, nil)
	if err != nil {
		t.Fatalf("gate: %v", err)
	}
	srv := newTestServer(t, newMemStore(), gate)

	resp, err := http.Post(srv.URL+"/api/v1/prescriptions/process-image", "application/octet-stream",
		bytes.NewReader([]byte{0xFF, 0xD8, 0xFF}))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result handlers.ProcessImageResponse
	decodeJSON(t, resp, &result)

	if result.Parsed == nil || len(result.Parsed.Medications) != 1 {
		t.Fatal("expected one parsed medication from recognised text")
	}
	if got := result.Parsed.Medications[0].Name; got != "Salbutamol" {
		t.Errorf("name = %q, want Salbutamol", got)
	}
}

func TestProcessImageEndpointRejection(t *testing.T) {
	stub := &stubImageService{processable: false}
	gate, err := quality.NewGate(stub, stub, nil)
	if err != nil {
		t.Fatalf("gate: %v", err)
	}
	srv := newTestServer(t, newMemStore(), gate)

	resp, err := http.Post(srv.URL+"/api/v1/prescriptions/process-image", "application/octet-stream",
		bytes.NewReader([]byte{0x00}))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}

	var result handlers.ProcessImageResponse
	decodeJSON(t, resp, &result)

	if result.Parsed != nil {
		t.Error("rejected image should not carry a parse result")
	}
	if len(result.Assessment.Recommendations) == 0 {
		t.Error("assessment recommendations missing from rejection response")
	}
}

func TestIdempotencyKeyDeterminism(t *testing.T) {
	receivedAt := time.Date(2024, 3, 15, 10, 30, 12, 0, time.UTC)

	a := idempotency.GenerateKey("patient-1", "METFORMIN 500mg twice daily", receivedAt)
	b := idempotency.GenerateKey("patient-1", "METFORMIN 500mg twice daily", receivedAt.Add(20*time.Second))
	if a != b {
		t.Error("keys within the same minute should match")
	}

	c := idempotency.GenerateKey("patient-2", "METFORMIN 500mg twice daily", receivedAt)
	if a == c {
		t.Error("different patients should produce different keys")
	}

	d := idempotency.GenerateKey("patient-1", "LANTUS 100units/ml at night", receivedAt)
	if a == d {
		t.Error("different texts should produce different keys")
	}
}
