package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"expobook/internal/data/entity"
	"expobook/internal/data/repository"
	"expobook/internal/dto/request"
	"expobook/internal/dto/response"
	"expobook/pkg/cache"
	"expobook/pkg/utils"
)

type ExhibitionService interface {
	GetExhibitions(ctx context.Context) ([]response.ExhibitionResponse, error)
	GetExhibitionByID(ctx context.Context, exhibitionID string) (*response.ExhibitionResponse, error)
	CreateExhibition(ctx context.Context, req *request.ExhibitionRequest) (*response.ExhibitionResponse, error)
	UpdateExhibition(ctx context.Context, exhibitionID string, req *request.ExhibitionRequest) (*response.ExhibitionResponse, error)
	DeleteExhibition(ctx context.Context, exhibitionID string) error
}

type exhibitionService struct {
	repo  *repository.Repository
	store *cache.Cache
	log   *zap.Logger
}

func NewExhibitionService(repo *repository.Repository, store *cache.Cache, log *zap.Logger) ExhibitionService {
	return &exhibitionService{
		repo:  repo,
		store: store,
		log:   log.With(zap.String("service", "exhibition")),
	}
}

func (s *exhibitionService) GetExhibitions(ctx context.Context) ([]response.ExhibitionResponse, error) {
	return cache.GetOrSetJSON(ctx, s.store, cache.ExhibitionListKey(),
		func(ctx context.Context) ([]response.ExhibitionResponse, error) {
			exhibitions, err := s.repo.Exhibition.FindAll(ctx)
			if err != nil {
				s.log.Error("Failed to list exhibitions", zap.Error(err))
				return nil, fmt.Errorf("list exhibitions: %w", err)
			}
			return response.ExhibitionsToResponse(exhibitions), nil
		})
}

func (s *exhibitionService) GetExhibitionByID(ctx context.Context, exhibitionID string) (*response.ExhibitionResponse, error) {
	exhibitionUUID, err := uuid.Parse(exhibitionID)
	if err != nil {
		return nil, fmt.Errorf("invalid exhibition ID format %s: %w", exhibitionID, err)
	}

	resp, err := cache.GetOrSetJSON(ctx, s.store, cache.ExhibitionKey(exhibitionID),
		func(ctx context.Context) (response.ExhibitionResponse, error) {
			exhibition, err := s.repo.Exhibition.FindByID(ctx, exhibitionUUID)
			if err != nil {
				return response.ExhibitionResponse{}, fmt.Errorf("find exhibition: %w", err)
			}
			if exhibition == nil {
				return response.ExhibitionResponse{}, fmt.Errorf("exhibition %s not found", exhibitionID)
			}
			return response.ExhibitionToResponse(exhibition), nil
		})
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (s *exhibitionService) CreateExhibition(ctx context.Context, req *request.ExhibitionRequest) (*response.ExhibitionResponse, error) {
	exhibition, err := s.exhibitionFromRequest(req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	exhibition.Base = entity.Base{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Exhibition.Create(ctx, exhibition); err != nil {
		s.log.Error("Failed to create exhibition", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create exhibition: %w", err)
	}

	s.invalidate(ctx, exhibition.ID.String())

	s.log.Info("Exhibition created",
		zap.String("exhibition_id", exhibition.ID.String()),
		zap.String("name", exhibition.Name),
		zap.Int("small_booth_quota", exhibition.SmallBoothQuota),
		zap.Int("big_booth_quota", exhibition.BigBoothQuota),
	)

	resp := response.ExhibitionToResponse(exhibition)
	return &resp, nil
}

func (s *exhibitionService) UpdateExhibition(ctx context.Context, exhibitionID string, req *request.ExhibitionRequest) (*response.ExhibitionResponse, error) {
	exhibitionUUID, err := uuid.Parse(exhibitionID)
	if err != nil {
		return nil, fmt.Errorf("invalid exhibition ID format %s: %w", exhibitionID, err)
	}

	existing, err := s.repo.Exhibition.FindByID(ctx, exhibitionUUID)
	if err != nil {
		return nil, fmt.Errorf("find exhibition: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("exhibition %s not found", exhibitionID)
	}

	exhibition, err := s.exhibitionFromRequest(req)
	if err != nil {
		return nil, err
	}

	exhibition.Base = existing.Base
	exhibition.UpdatedAt = time.Now()

	if err := s.repo.Exhibition.Update(ctx, exhibition); err != nil {
		s.log.Error("Failed to update exhibition",
			zap.Error(err),
			zap.String("exhibition_id", exhibitionID))
		return nil, fmt.Errorf("update exhibition: %w", err)
	}

	s.invalidate(ctx, exhibitionID)

	s.log.Info("Exhibition updated", zap.String("exhibition_id", exhibitionID))

	resp := response.ExhibitionToResponse(exhibition)
	return &resp, nil
}

func (s *exhibitionService) DeleteExhibition(ctx context.Context, exhibitionID string) error {
	exhibitionUUID, err := uuid.Parse(exhibitionID)
	if err != nil {
		return fmt.Errorf("invalid exhibition ID format %s: %w", exhibitionID, err)
	}

	exhibition, err := s.repo.Exhibition.FindByID(ctx, exhibitionUUID)
	if err != nil {
		return fmt.Errorf("find exhibition: %w", err)
	}
	if exhibition == nil {
		return fmt.Errorf("exhibition %s not found", exhibitionID)
	}

	// Bookings hang off the exhibition; remove them first so no orphan
	// records survive the delete.
	if err := s.repo.Booking.DeleteByExhibitionID(ctx, exhibitionUUID); err != nil {
		s.log.Error("Failed to delete exhibition bookings",
			zap.Error(err),
			zap.String("exhibition_id", exhibitionID))
		return fmt.Errorf("delete exhibition bookings: %w", err)
	}

	if err := s.repo.Exhibition.Delete(ctx, exhibitionUUID); err != nil {
		return fmt.Errorf("delete exhibition: %w", err)
	}

	s.invalidate(ctx, exhibitionID)

	s.log.Info("Exhibition deleted",
		zap.String("exhibition_id", exhibitionID),
		zap.String("name", exhibition.Name))

	return nil
}

func (s *exhibitionService) exhibitionFromRequest(req *request.ExhibitionRequest) (*entity.Exhibition, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Exhibition validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %s: %w", req.StartDate, err)
	}

	return &entity.Exhibition{
		Name:            req.Name,
		Description:     req.Description,
		Venue:           req.Venue,
		StartDate:       startDate,
		DurationDay:     req.DurationDay,
		SmallBoothQuota: req.SmallBoothQuota,
		BigBoothQuota:   req.BigBoothQuota,
		PosterPicture:   req.PosterPicture,
	}, nil
}

func (s *exhibitionService) invalidate(ctx context.Context, exhibitionID string) {
	if err := s.store.Del(ctx, cache.ExhibitionListKey(), cache.ExhibitionKey(exhibitionID)); err != nil {
		s.log.Warn("Failed to invalidate exhibition cache",
			zap.Error(err),
			zap.String("exhibition_id", exhibitionID))
	}
}
