// Package postgres persists medication, schedule and stock records. All
// writes for one prescription run in a single transaction, and every write
// also appends an event to the transactional outbox so downstream consumers
// see exactly the state that committed.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/meditrack/rxpipeline/internal/infrastructure/outbox"
	"github.com/meditrack/rxpipeline/internal/infrastructure/redpanda"
	"github.com/meditrack/rxpipeline/internal/ingestion"
	"github.com/meditrack/rxpipeline/internal/interaction"
)

// Event types written to the outbox alongside storage writes.
const (
	EventMedicationCreated   = "medication.created"
	EventScheduleCreated     = "schedule.created"
	EventStockDeducted       = "stock.deducted"
	EventSafetyFindingRaised = "safety.finding_raised"
)

// ErrNoTransaction is returned when a write runs outside WithinTransaction.
var ErrNoTransaction = errors.New("postgres: write outside a transaction scope")

type txKey struct{}

// Store implements the ingestion storage boundary on PostgreSQL.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	tracer trace.Tracer
}

// NewStore creates a store over pool.
func NewStore(pool *pgxpool.Pool, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		pool:   pool,
		logger: logger,
		tracer: otel.Tracer("postgres-store"),
	}
}

// WithinTransaction runs fn in one transaction. Every store write fn makes
// through the returned context joins that transaction; the whole scope
// commits or rolls back together.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "store_transaction")
	defer span.End()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		span.RecordError(err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func txFrom(ctx context.Context) (pgx.Tx, error) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	if !ok {
		return nil, ErrNoTransaction
	}
	return tx, nil
}

// CreateMedication inserts a medication record and its outbox event.
func (s *Store) CreateMedication(ctx context.Context, rec ingestion.MedicationRecord) (string, error) {
	tx, err := txFrom(ctx)
	if err != nil {
		return "", err
	}

	ctx, span := s.tracer.Start(ctx, "create_medication",
		trace.WithAttributes(attribute.String("name", rec.Name)))
	defer span.End()

	id := uuid.New().String()
	query := `
		INSERT INTO medications
		(id, name, generic_name, strength, dosage_amount, dosage_unit, frequency,
		 timing, quantity, repeats, instructions, medication_type, manufacturer,
		 icd10_codes, renewal_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = tx.Exec(ctx, query,
		id, rec.Name, rec.GenericName, rec.Strength, rec.DosageAmount,
		rec.DosageUnit, rec.Frequency, rec.Timing, rec.Quantity, rec.Repeats,
		rec.Instructions, rec.MedicationType, rec.Manufacturer, rec.ICD10Codes,
		rec.RenewalDate,
	)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("insert medication: %w", err)
	}

	if err := s.writeEvent(ctx, tx, id, EventMedicationCreated, redpanda.TopicPrescriptionIngested, rec); err != nil {
		return "", err
	}

	s.logger.Debug("medication stored", zap.String("id", id), zap.String("name", rec.Name))
	return id, nil
}

// CreateSchedule inserts a dosing slot for a stored medication.
func (s *Store) CreateSchedule(ctx context.Context, rec ingestion.ScheduleRecord) (string, error) {
	tx, err := txFrom(ctx)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	query := `
		INSERT INTO medication_schedules (id, medication_id, slot, dose_time)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.Exec(ctx, query, id, rec.MedicationID, rec.Slot, rec.Time); err != nil {
		return "", fmt.Errorf("insert schedule: %w", err)
	}

	if err := s.writeEvent(ctx, tx, rec.MedicationID, EventScheduleCreated, redpanda.TopicPrescriptionIngested, rec); err != nil {
		return "", err
	}
	return id, nil
}

// CheckStock reads the on-hand quantity for a medication. A medication with
// no stock row has zero stock.
func (s *Store) CheckStock(ctx context.Context, medicationID string) (int, error) {
	tx, err := txFrom(ctx)
	if err != nil {
		return 0, err
	}

	var quantity int
	err = tx.QueryRow(ctx,
		`SELECT quantity FROM medication_stock WHERE medication_id = $1 FOR UPDATE`,
		medicationID,
	).Scan(&quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("check stock: %w", err)
	}
	return quantity, nil
}

// DeductStock reduces the on-hand quantity. The row is already locked by
// the CheckStock read in the same transaction.
func (s *Store) DeductStock(ctx context.Context, medicationID string, quantity int) error {
	tx, err := txFrom(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE medication_stock SET quantity = quantity - $1, updated_at = NOW() WHERE medication_id = $2`,
		quantity, medicationID,
	)
	if err != nil {
		return fmt.Errorf("deduct stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deduct stock: no stock row for medication %s", medicationID)
	}

	payload := map[string]any{"medicationId": medicationID, "deducted": quantity, "at": time.Now().UTC()}
	return s.writeEvent(ctx, tx, medicationID, EventStockDeducted, redpanda.TopicAuditTrail, payload)
}

// RecordSafetyFindings writes the prescription's interaction and
// contraindication findings to the outbox for clinical review consumers.
func (s *Store) RecordSafetyFindings(ctx context.Context, findings []interaction.Finding) error {
	tx, err := txFrom(ctx)
	if err != nil {
		return err
	}
	return s.writeEvent(ctx, tx, uuid.New().String(), EventSafetyFindingRaised, redpanda.TopicSafetyFindings, findings)
}

// writeEvent appends an outbox entry in the current transaction.
func (s *Store) writeEvent(ctx context.Context, tx pgx.Tx, aggregateID, eventType, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}
	entry := &outbox.Entry{
		AggregateID:   aggregateID,
		AggregateType: "medication",
		EventType:     eventType,
		Payload:       body,
		KafkaTopic:    topic,
		KafkaKey:      aggregateID,
	}
	if err := outbox.WriteEntry(ctx, tx, entry); err != nil {
		return fmt.Errorf("write %s event: %w", eventType, err)
	}
	return nil
}
