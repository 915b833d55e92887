package repository

import (
	"context"
	"fmt"
	"time"

	"slot-booking/internal/data/entity"
	"slot-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SlotFilter narrows the slot listing. Nil/empty fields are skipped.
type SlotFilter struct {
	Venue       string
	Title       string
	StartAfter  *time.Time
	StartBefore *time.Time
	MinPrice    *float64
	MaxPrice    *float64
}

type SlotRepository interface {
	Create(ctx context.Context, slot *entity.Slot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error)
	FindByCode(ctx context.Context, code string) (*entity.Slot, error)
	FindAvailable(ctx context.Context, filter SlotFilter) ([]*entity.Slot, error)

	// Transactional primitives for the booking commit protocol.
	FindByIDForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entity.Slot, error)
	AddBookedSeatsTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int) (bool, error)
}

type slotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSlotRepository(db database.PgxIface, log *zap.Logger) SlotRepository {
	return &slotRepository{
		db:  db,
		log: log.With(zap.String("repository", "slot")),
	}
}

const slotColumns = `id, slot_code, title, description, venue, start_time, end_time,
       capacity, booked_seats, is_available, price, created_at, updated_at`

func scanSlot(row pgx.Row) (*entity.Slot, error) {
	var slot entity.Slot
	err := row.Scan(
		&slot.ID,
		&slot.SlotCode,
		&slot.Title,
		&slot.Description,
		&slot.Venue,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Capacity,
		&slot.BookedSeats,
		&slot.IsAvailable,
		&slot.Price,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (sr *slotRepository) Create(ctx context.Context, slot *entity.Slot) error {
	query := `
		INSERT INTO slots (id, slot_code, title, description, venue, start_time, end_time,
		                   capacity, booked_seats, is_available, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := sr.db.Exec(ctx, query,
		slot.ID,
		slot.SlotCode,
		slot.Title,
		slot.Description,
		slot.Venue,
		slot.StartTime,
		slot.EndTime,
		slot.Capacity,
		slot.BookedSeats,
		slot.IsAvailable,
		slot.Price,
		slot.CreatedAt,
		slot.UpdatedAt,
	)

	if err != nil {
		sr.log.Error("Failed to create slot",
			zap.Error(err),
			zap.String("slot_code", slot.SlotCode),
		)
		return fmt.Errorf("create slot %s: %w", slot.SlotCode, err)
	}

	return nil
}

func (sr *slotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1`

	slot, err := scanSlot(sr.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		sr.log.Error("Failed to find slot by ID",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("find slot by ID %s: %w", id.String(), err)
	}

	return slot, nil
}

func (sr *slotRepository) FindByCode(ctx context.Context, code string) (*entity.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE slot_code = $1`

	slot, err := scanSlot(sr.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		sr.log.Error("Failed to find slot by code",
			zap.Error(err),
			zap.String("slot_code", code),
		)
		return nil, fmt.Errorf("find slot by code %s: %w", code, err)
	}

	return slot, nil
}

func (sr *slotRepository) FindAvailable(ctx context.Context, filter SlotFilter) ([]*entity.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE is_available = TRUE`
	args := []any{}

	if filter.Venue != "" {
		args = append(args, "%"+filter.Venue+"%")
		query += fmt.Sprintf(" AND venue ILIKE $%d", len(args))
	}
	if filter.Title != "" {
		args = append(args, "%"+filter.Title+"%")
		query += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}
	if filter.StartAfter != nil {
		args = append(args, *filter.StartAfter)
		query += fmt.Sprintf(" AND start_time >= $%d", len(args))
	}
	if filter.StartBefore != nil {
		args = append(args, *filter.StartBefore)
		query += fmt.Sprintf(" AND start_time <= $%d", len(args))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		query += fmt.Sprintf(" AND price >= $%d", len(args))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		query += fmt.Sprintf(" AND price <= $%d", len(args))
	}
	query += " ORDER BY start_time"

	rows, err := sr.db.Query(ctx, query, args...)
	if err != nil {
		sr.log.Error("Failed to find available slots", zap.Error(err))
		return nil, fmt.Errorf("find available slots: %w", err)
	}
	defer rows.Close()

	var slots []*entity.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			sr.log.Error("Failed to scan slot row", zap.Error(err))
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slot rows: %w", err)
	}

	return slots, nil
}

// FindByIDForUpdateTx reads the slot under a row-level lock. The lock is held
// until the surrounding transaction commits or rolls back, serialising
// concurrent booking commits on the same slot.
func (sr *slotRepository) FindByIDForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entity.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1 FOR UPDATE`

	slot, err := scanSlot(tx.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		sr.log.Error("Failed to lock slot row",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("lock slot %s: %w", id.String(), err)
	}

	return slot, nil
}

// AddBookedSeatsTx adjusts the booked-seat counter inside the caller's
// transaction. The WHERE clause keeps the counter within [0, capacity]; a
// false return means the guard rejected the update (counter would overflow
// or underflow) and nothing changed.
func (sr *slotRepository) AddBookedSeatsTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int) (bool, error) {
	query := `
		UPDATE slots
		SET booked_seats = booked_seats + $2, updated_at = NOW()
		WHERE id = $1
		  AND booked_seats + $2 >= 0
		  AND booked_seats + $2 <= capacity
	`

	result, err := tx.Exec(ctx, query, id, delta)
	if err != nil {
		sr.log.Error("Failed to adjust booked seats",
			zap.Error(err),
			zap.String("slot_id", id.String()),
			zap.Int("delta", delta),
		)
		return false, fmt.Errorf("adjust booked seats for slot %s: %w", id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}
