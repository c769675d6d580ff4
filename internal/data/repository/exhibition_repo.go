package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"expobook/internal/data/entity"
	"expobook/pkg/database"
)

type ExhibitionRepository interface {
	Create(ctx context.Context, exhibition *entity.Exhibition) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Exhibition, error)
	FindAll(ctx context.Context) ([]*entity.Exhibition, error)
	Update(ctx context.Context, exhibition *entity.Exhibition) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type exhibitionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewExhibitionRepository(db database.PgxIface, log *zap.Logger) ExhibitionRepository {
	return &exhibitionRepository{
		db:  db,
		log: log.With(zap.String("repository", "exhibition")),
	}
}

const exhibitionColumns = `id, name, description, venue, start_date, duration_day,
	small_booth_quota, big_booth_quota, poster_picture, created_at, updated_at`

func (r *exhibitionRepository) Create(ctx context.Context, exhibition *entity.Exhibition) error {
	query := `
		INSERT INTO exhibitions (id, name, description, venue, start_date, duration_day,
		                         small_booth_quota, big_booth_quota, poster_picture,
		                         created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		exhibition.ID,
		exhibition.Name,
		exhibition.Description,
		exhibition.Venue,
		exhibition.StartDate,
		exhibition.DurationDay,
		exhibition.SmallBoothQuota,
		exhibition.BigBoothQuota,
		exhibition.PosterPicture,
		exhibition.CreatedAt,
		exhibition.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create exhibition",
			zap.Error(err),
			zap.String("name", exhibition.Name),
		)
		return fmt.Errorf("create exhibition %s: %w", exhibition.Name, err)
	}

	return nil
}

func (r *exhibitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Exhibition, error) {
	query := `SELECT ` + exhibitionColumns + ` FROM exhibitions WHERE id = $1`

	var exhibition entity.Exhibition
	err := r.db.QueryRow(ctx, query, id).Scan(
		&exhibition.ID,
		&exhibition.Name,
		&exhibition.Description,
		&exhibition.Venue,
		&exhibition.StartDate,
		&exhibition.DurationDay,
		&exhibition.SmallBoothQuota,
		&exhibition.BigBoothQuota,
		&exhibition.PosterPicture,
		&exhibition.CreatedAt,
		&exhibition.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find exhibition by ID",
			zap.Error(err),
			zap.String("exhibition_id", id.String()),
		)
		return nil, fmt.Errorf("find exhibition by ID %s: %w", id.String(), err)
	}

	return &exhibition, nil
}

func (r *exhibitionRepository) FindAll(ctx context.Context) ([]*entity.Exhibition, error) {
	query := `SELECT ` + exhibitionColumns + ` FROM exhibitions ORDER BY start_date, name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list exhibitions", zap.Error(err))
		return nil, fmt.Errorf("list exhibitions: %w", err)
	}
	defer rows.Close()

	var exhibitions []*entity.Exhibition
	for rows.Next() {
		var exhibition entity.Exhibition
		err := rows.Scan(
			&exhibition.ID,
			&exhibition.Name,
			&exhibition.Description,
			&exhibition.Venue,
			&exhibition.StartDate,
			&exhibition.DurationDay,
			&exhibition.SmallBoothQuota,
			&exhibition.BigBoothQuota,
			&exhibition.PosterPicture,
			&exhibition.CreatedAt,
			&exhibition.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan exhibition row", zap.Error(err))
			return nil, fmt.Errorf("scan exhibition row: %w", err)
		}
		exhibitions = append(exhibitions, &exhibition)
	}

	return exhibitions, nil
}

func (r *exhibitionRepository) Update(ctx context.Context, exhibition *entity.Exhibition) error {
	query := `
		UPDATE exhibitions
		SET name = $2, description = $3, venue = $4, start_date = $5, duration_day = $6,
		    small_booth_quota = $7, big_booth_quota = $8, poster_picture = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		exhibition.ID,
		exhibition.Name,
		exhibition.Description,
		exhibition.Venue,
		exhibition.StartDate,
		exhibition.DurationDay,
		exhibition.SmallBoothQuota,
		exhibition.BigBoothQuota,
		exhibition.PosterPicture,
		exhibition.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update exhibition",
			zap.Error(err),
			zap.String("exhibition_id", exhibition.ID.String()),
		)
		return fmt.Errorf("update exhibition %s: %w", exhibition.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("exhibition %s not found", exhibition.ID.String())
	}

	return nil
}

func (r *exhibitionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM exhibitions WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete exhibition",
			zap.Error(err),
			zap.String("exhibition_id", id.String()),
		)
		return fmt.Errorf("delete exhibition %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("exhibition %s not found", id.String())
	}

	r.log.Info("Exhibition deleted", zap.String("exhibition_id", id.String()))
	return nil
}
