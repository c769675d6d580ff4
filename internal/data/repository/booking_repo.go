package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"expobook/internal/data/entity"
	"expobook/internal/quota"
	"expobook/pkg/database"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	// CreateAll inserts every booking in one transaction; either all lines
	// of a booking group commit or none do.
	CreateAll(ctx context.Context, bookings []*entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context) ([]*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)
	// SumAmounts totals booked units for an exhibition and booth type.
	// userID narrows the sum to one user's booking group, excludeID leaves
	// out the record being edited. Either may be nil.
	SumAmounts(ctx context.Context, exhibitionID uuid.UUID, boothType quota.BoothType, userID, excludeID *uuid.UUID) (int, error)
	Update(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByExhibitionID(ctx context.Context, exhibitionID uuid.UUID) error
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

const bookingColumns = `id, user_id, exhibition_id, booth_type, amount,
	start_date, end_date, created_at, updated_at`

const insertBookingQuery = `
	INSERT INTO bookings (id, user_id, exhibition_id, booth_type, amount,
	                      start_date, end_date, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	_, err := r.db.Exec(ctx, insertBookingQuery,
		booking.ID,
		booking.UserID,
		booking.ExhibitionID,
		booking.BoothType,
		booking.Amount,
		booking.StartDate,
		booking.EndDate,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.String("exhibition_id", booking.ExhibitionID.String()),
		)
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) CreateAll(ctx context.Context, bookings []*entity.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin booking transaction", zap.Error(err))
		return fmt.Errorf("begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, booking := range bookings {
		_, err := tx.Exec(ctx, insertBookingQuery,
			booking.ID,
			booking.UserID,
			booking.ExhibitionID,
			booking.BoothType,
			booking.Amount,
			booking.StartDate,
			booking.EndDate,
			booking.CreatedAt,
			booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create booking in batch",
				zap.Error(err),
				zap.String("booth_type", string(booking.BoothType)),
			)
			return fmt.Errorf("create booking batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit booking batch", zap.Error(err))
		return fmt.Errorf("commit booking batch: %w", err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ExhibitionID,
		&booking.BoothType,
		&booking.Amount,
		&booking.StartDate,
		&booking.EndDate,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	return r.collectBookings(rows)
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return r.collectBookings(rows)
}

func (r *bookingRepository) SumAmounts(ctx context.Context, exhibitionID uuid.UUID, boothType quota.BoothType, userID, excludeID *uuid.UUID) (int, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM bookings WHERE exhibition_id = $1 AND booth_type = $2`
	args := []any{exhibitionID, boothType}

	if userID != nil {
		args = append(args, *userID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if excludeID != nil {
		args = append(args, *excludeID)
		query += fmt.Sprintf(" AND id <> $%d", len(args))
	}

	var total int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to sum booking amounts",
			zap.Error(err),
			zap.String("exhibition_id", exhibitionID.String()),
			zap.String("booth_type", string(boothType)),
		)
		return 0, fmt.Errorf("sum booking amounts: %w", err)
	}

	return total, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET booth_type = $2, amount = $3, start_date = $4, end_date = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.BoothType,
		booking.Amount,
		booking.StartDate,
		booking.EndDate,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

func (r *bookingRepository) DeleteByExhibitionID(ctx context.Context, exhibitionID uuid.UUID) error {
	query := `DELETE FROM bookings WHERE exhibition_id = $1`

	_, err := r.db.Exec(ctx, query, exhibitionID)
	if err != nil {
		r.log.Error("Failed to delete bookings by exhibition",
			zap.Error(err),
			zap.String("exhibition_id", exhibitionID.String()),
		)
		return fmt.Errorf("delete bookings for exhibition %s: %w", exhibitionID.String(), err)
	}

	return nil
}

func (r *bookingRepository) collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.ExhibitionID,
			&booking.BoothType,
			&booking.Amount,
			&booking.StartDate,
			&booking.EndDate,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}
