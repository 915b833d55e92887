package repository

import (
	"context"
	"fmt"

	"slot-booking/internal/data/entity"
	"slot-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByReference(ctx context.Context, ref string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// Occupancy queries: seat IDs across confirmed bookings for a slot,
	// flattened but not deduplicated.
	FindConfirmedSeatsBySlotID(ctx context.Context, slotID uuid.UUID) ([]string, error)
	FindConfirmedSeatsBySlotIDTx(ctx context.Context, tx pgx.Tx, slotID uuid.UUID) ([]string, error)

	// UpdateStatusTx transitions a booking from one status to another inside
	// the caller's transaction; false means the booking was not in the
	// expected status.
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to entity.BookingStatus) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_ref, user_id, slot_id, seats, total_amount, status,
       booking_date, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.BookingRef,
		&booking.UserID,
		&booking.SlotID,
		&booking.Seats,
		&booking.TotalAmount,
		&booking.Status,
		&booking.BookingDate,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CreateTx inserts the booking inside the caller's transaction so that the
// record and the slot counter commit together.
func (br *bookingRepository) CreateTx(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, booking_ref, user_id, slot_id, seats, total_amount, status,
		                      booking_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := tx.Exec(ctx, query,
		booking.ID,
		booking.BookingRef,
		booking.UserID,
		booking.SlotID,
		booking.Seats,
		booking.TotalAmount,
		booking.Status,
		booking.BookingDate,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		br.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_ref", booking.BookingRef),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingRef, err)
	}

	return nil
}

func (br *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(br.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		br.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (br *bookingRepository) FindByReference(ctx context.Context, ref string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_ref = $1`

	booking, err := scanBooking(br.db.QueryRow(ctx, query, ref))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		br.log.Error("Failed to find booking by reference",
			zap.Error(err),
			zap.String("booking_ref", ref),
		)
		return nil, fmt.Errorf("find booking by reference %s: %w", ref, err)
	}

	return booking, nil
}

func (br *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := br.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		br.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			br.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (br *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := br.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		br.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

const confirmedSeatsQuery = `
	SELECT seats FROM bookings
	WHERE slot_id = $1 AND status = 'confirmed'
`

func collectSeatRows(rows pgx.Rows) ([]string, error) {
	defer rows.Close()

	var seats []string
	for rows.Next() {
		var bookingSeats []string
		if err := rows.Scan(&bookingSeats); err != nil {
			return nil, fmt.Errorf("scan booking seats: %w", err)
		}
		seats = append(seats, bookingSeats...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking seats: %w", err)
	}
	return seats, nil
}

func (br *bookingRepository) FindConfirmedSeatsBySlotID(ctx context.Context, slotID uuid.UUID) ([]string, error) {
	rows, err := br.db.Query(ctx, confirmedSeatsQuery, slotID)
	if err != nil {
		br.log.Error("Failed to query confirmed seats",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
		)
		return nil, fmt.Errorf("find confirmed seats for slot %s: %w", slotID.String(), err)
	}
	return collectSeatRows(rows)
}

// FindConfirmedSeatsBySlotIDTx re-reads occupancy inside the commit
// transaction, after the slot row lock has been taken, so the result cannot
// miss a concurrently committed booking.
func (br *bookingRepository) FindConfirmedSeatsBySlotIDTx(ctx context.Context, tx pgx.Tx, slotID uuid.UUID) ([]string, error) {
	rows, err := tx.Query(ctx, confirmedSeatsQuery, slotID)
	if err != nil {
		br.log.Error("Failed to query confirmed seats in transaction",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
		)
		return nil, fmt.Errorf("find confirmed seats for slot %s: %w", slotID.String(), err)
	}
	return collectSeatRows(rows)
}

func (br *bookingRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to entity.BookingStatus) (bool, error) {
	query := `UPDATE bookings SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`

	result, err := tx.Exec(ctx, query, id, from, to)
	if err != nil {
		br.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(to)),
		)
		return false, fmt.Errorf("update booking %s status to %s: %w", id.String(), string(to), err)
	}

	return result.RowsAffected() == 1, nil
}
