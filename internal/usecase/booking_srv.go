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
	"expobook/internal/quota"
	"expobook/pkg/utils"
)

type BookingService interface {
	// GetBookings returns the caller's own bookings; admins see every
	// booking in the system.
	GetBookings(ctx context.Context, userID string, isAdmin bool) ([]response.BookingResponse, error)
	GetBookingByID(ctx context.Context, userID string, isAdmin bool, bookingID string) (*response.BookingResponse, error)
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	// CreateBatch books small and big booths together: both lines pass the
	// quota rules before either is written, and the writes share one
	// transaction.
	CreateBatch(ctx context.Context, userID string, req *request.BatchBookingRequest) ([]response.BookingResponse, error)
	// UpdateBooking changes a record's amount. Amount 0 cancels the record;
	// the returned flag reports that the record was deleted.
	UpdateBooking(ctx context.Context, userID string, isAdmin bool, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, bool, error)
	DeleteBooking(ctx context.Context, userID string, isAdmin bool, bookingID string) error
}

type bookingService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetBookings(ctx context.Context, userID string, isAdmin bool) ([]response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	var bookings []*entity.Booking
	if isAdmin {
		bookings, err = s.repo.Booking.FindAll(ctx)
	} else {
		bookings, err = s.repo.Booking.FindByUserID(ctx, userUUID)
	}
	if err != nil {
		s.log.Error("Failed to get bookings",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Bool("is_admin", isAdmin))
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	// Resolve each exhibition once; booking rows render its name.
	exhibitions := make(map[uuid.UUID]*entity.Exhibition)
	for _, booking := range bookings {
		if _, ok := exhibitions[booking.ExhibitionID]; ok {
			continue
		}
		exhibition, err := s.repo.Exhibition.FindByID(ctx, booking.ExhibitionID)
		if err != nil {
			return nil, fmt.Errorf("resolve exhibition %s: %w", booking.ExhibitionID.String(), err)
		}
		exhibitions[booking.ExhibitionID] = exhibition
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = response.BookingToResponse(booking, exhibitions[booking.ExhibitionID])
	}

	return responses, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, userID string, isAdmin bool, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findOwnedBooking(ctx, userID, isAdmin, bookingID)
	if err != nil {
		return nil, err
	}

	exhibition, err := s.repo.Exhibition.FindByID(ctx, booking.ExhibitionID)
	if err != nil {
		return nil, fmt.Errorf("resolve exhibition: %w", err)
	}

	resp := response.BookingToResponse(booking, exhibition)
	return &resp, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	exhibition, err := s.findExhibition(ctx, req.Exhibition)
	if err != nil {
		return nil, err
	}

	start, end, err := s.parsePeriod(req.StartDate, req.EndDate, exhibition)
	if err != nil {
		return nil, err
	}

	boothType := quota.BoothType(req.BoothType)

	otherSmall, otherBig, err := s.otherTotals(ctx, exhibition.ID, userUUID, nil)
	if err != nil {
		return nil, err
	}

	result := quota.Decide(quota.Input{
		BoothType:       boothType,
		ProposedAmount:  req.Amount,
		PriorAmount:     0,
		OtherSmallTotal: otherSmall,
		OtherBigTotal:   otherBig,
		Quota:           exhibition.QuotaFor(boothType),
	})
	if err := result.Err(); err != nil {
		s.log.Warn("Booking rejected",
			zap.String("user_id", userID),
			zap.String("exhibition_id", exhibition.ID.String()),
			zap.String("booth_type", string(boothType)),
			zap.Int("amount", req.Amount),
			zap.String("decision", result.Decision.String()))
		return nil, err
	}

	booking := s.newBooking(userUUID, exhibition.ID, boothType, req.Amount, start, end)

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID),
		zap.String("exhibition_id", exhibition.ID.String()),
		zap.String("booth_type", string(boothType)),
		zap.Int("amount", req.Amount))

	resp := response.BookingToResponse(booking, exhibition)
	return &resp, nil
}

func (s *bookingService) CreateBatch(ctx context.Context, userID string, req *request.BatchBookingRequest) ([]response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Batch booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.SmallAmount == 0 && req.BigAmount == 0 {
		return nil, fmt.Errorf("validation failed: at least one booth must be requested")
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	exhibition, err := s.findExhibition(ctx, req.Exhibition)
	if err != nil {
		return nil, err
	}

	start, end, err := s.parsePeriod(req.StartDate, req.EndDate, exhibition)
	if err != nil {
		return nil, err
	}

	otherSmall, otherBig, err := s.otherTotals(ctx, exhibition.ID, userUUID, nil)
	if err != nil {
		return nil, err
	}

	// Each line is validated against a group that already includes the
	// other line, so the combined cap sees the whole request. Both checks
	// run before anything is written.
	if req.SmallAmount > 0 {
		result := quota.Decide(quota.Input{
			BoothType:       quota.BoothSmall,
			ProposedAmount:  req.SmallAmount,
			OtherSmallTotal: otherSmall,
			OtherBigTotal:   otherBig + req.BigAmount,
			Quota:           exhibition.SmallBoothQuota,
		})
		if err := result.Err(); err != nil {
			return nil, err
		}
	}
	if req.BigAmount > 0 {
		result := quota.Decide(quota.Input{
			BoothType:       quota.BoothBig,
			ProposedAmount:  req.BigAmount,
			OtherSmallTotal: otherSmall + req.SmallAmount,
			OtherBigTotal:   otherBig,
			Quota:           exhibition.BigBoothQuota,
		})
		if err := result.Err(); err != nil {
			return nil, err
		}
	}

	var bookings []*entity.Booking
	if req.SmallAmount > 0 {
		bookings = append(bookings, s.newBooking(userUUID, exhibition.ID, quota.BoothSmall, req.SmallAmount, start, end))
	}
	if req.BigAmount > 0 {
		bookings = append(bookings, s.newBooking(userUUID, exhibition.ID, quota.BoothBig, req.BigAmount, start, end))
	}

	if err := s.repo.Booking.CreateAll(ctx, bookings); err != nil {
		return nil, fmt.Errorf("create booking batch: %w", err)
	}

	s.log.Info("Booking batch created",
		zap.String("user_id", userID),
		zap.String("exhibition_id", exhibition.ID.String()),
		zap.Int("small_amount", req.SmallAmount),
		zap.Int("big_amount", req.BigAmount))

	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = response.BookingToResponse(booking, exhibition)
	}

	return responses, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, userID string, isAdmin bool, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, bool, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, false, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.findOwnedBooking(ctx, userID, isAdmin, bookingID)
	if err != nil {
		return nil, false, err
	}

	if quota.BoothType(req.BoothType) != booking.BoothType {
		return nil, false, fmt.Errorf("booth type cannot be changed")
	}

	exhibition, err := s.repo.Exhibition.FindByID(ctx, booking.ExhibitionID)
	if err != nil {
		return nil, false, fmt.Errorf("resolve exhibition: %w", err)
	}
	if exhibition == nil {
		return nil, false, fmt.Errorf("exhibition %s not found", booking.ExhibitionID.String())
	}

	// Totals are recomputed on every edit and exclude the record being
	// changed. The group owner is the booking's user, not the caller, so
	// an admin edit aggregates the member's group.
	otherSmall, otherBig, err := s.otherTotals(ctx, exhibition.ID, booking.UserID, &booking.ID)
	if err != nil {
		return nil, false, err
	}

	result := quota.Decide(quota.Input{
		BoothType:       booking.BoothType,
		ProposedAmount:  req.Amount,
		PriorAmount:     booking.Amount,
		OtherSmallTotal: otherSmall,
		OtherBigTotal:   otherBig,
		Quota:           exhibition.QuotaFor(booking.BoothType),
	})
	if err := result.Err(); err != nil {
		s.log.Warn("Booking edit rejected",
			zap.String("booking_id", bookingID),
			zap.Int("prior_amount", booking.Amount),
			zap.Int("proposed_amount", req.Amount),
			zap.String("decision", result.Decision.String()))
		return nil, false, err
	}

	if result.Delete {
		if err := s.repo.Booking.Delete(ctx, booking.ID); err != nil {
			return nil, false, fmt.Errorf("cancel booking: %w", err)
		}

		s.log.Info("Booking cancelled via zero amount",
			zap.String("booking_id", bookingID),
			zap.String("user_id", userID))
		return nil, true, nil
	}

	booking.Amount = req.Amount
	booking.UpdatedAt = time.Now()

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		return nil, false, fmt.Errorf("update booking: %w", err)
	}

	s.log.Info("Booking updated",
		zap.String("booking_id", bookingID),
		zap.String("user_id", userID),
		zap.Int("amount", req.Amount))

	resp := response.BookingToResponse(booking, exhibition)
	return &resp, false, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, userID string, isAdmin bool, bookingID string) error {
	booking, err := s.findOwnedBooking(ctx, userID, isAdmin, bookingID)
	if err != nil {
		return err
	}

	if err := s.repo.Booking.Delete(ctx, booking.ID); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	s.log.Info("Booking deleted",
		zap.String("booking_id", bookingID),
		zap.String("user_id", userID))

	return nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) findExhibition(ctx context.Context, exhibitionID string) (*entity.Exhibition, error) {
	exhibitionUUID, err := uuid.Parse(exhibitionID)
	if err != nil {
		return nil, fmt.Errorf("invalid exhibition ID format %s: %w", exhibitionID, err)
	}

	exhibition, err := s.repo.Exhibition.FindByID(ctx, exhibitionUUID)
	if err != nil {
		return nil, fmt.Errorf("find exhibition: %w", err)
	}
	if exhibition == nil {
		return nil, fmt.Errorf("exhibition %s not found", exhibitionID)
	}

	return exhibition, nil
}

// findOwnedBooking loads a booking and enforces ownership: members may only
// touch their own records, admins may touch any.
func (s *bookingService) findOwnedBooking(ctx context.Context, userID string, isAdmin bool, bookingID string) (*entity.Booking, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	if !isAdmin && booking.UserID != userUUID {
		s.log.Warn("Booking access denied",
			zap.String("booking_id", bookingID),
			zap.String("user_id", userID))
		return nil, fmt.Errorf("unauthorized to access this booking")
	}

	return booking, nil
}

// otherTotals sums the booking group's units per booth type. Scope perUser
// narrows the group to one user's bookings at the exhibition; global counts
// every user's.
func (s *bookingService) otherTotals(ctx context.Context, exhibitionID, groupUserID uuid.UUID, excludeID *uuid.UUID) (int, int, error) {
	var userFilter *uuid.UUID
	if s.config.Booking.Scope == quota.ScopePerUser {
		userFilter = &groupUserID
	}

	small, err := s.repo.Booking.SumAmounts(ctx, exhibitionID, quota.BoothSmall, userFilter, excludeID)
	if err != nil {
		return 0, 0, fmt.Errorf("sum small booth amounts: %w", err)
	}

	big, err := s.repo.Booking.SumAmounts(ctx, exhibitionID, quota.BoothBig, userFilter, excludeID)
	if err != nil {
		return 0, 0, fmt.Errorf("sum big booth amounts: %w", err)
	}

	return small, big, nil
}

func (s *bookingService) parsePeriod(startDate, endDate *string, exhibition *entity.Exhibition) (*time.Time, *time.Time, error) {
	if startDate == nil && endDate == nil {
		return nil, nil, nil
	}

	var start, end *time.Time

	if startDate != nil {
		t, err := time.Parse("2006-01-02", *startDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start date %s: %w", *startDate, err)
		}
		if !quota.WithinWindow(t, exhibition.StartDate, exhibition.DurationDay) {
			return nil, nil, fmt.Errorf("start date %s is outside the exhibition window", *startDate)
		}
		start = &t
	}

	if endDate != nil {
		t, err := time.Parse("2006-01-02", *endDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end date %s: %w", *endDate, err)
		}
		if !quota.WithinWindow(t, exhibition.StartDate, exhibition.DurationDay) {
			return nil, nil, fmt.Errorf("end date %s is outside the exhibition window", *endDate)
		}
		if start != nil && t.Before(*start) {
			return nil, nil, fmt.Errorf("end date cannot be earlier than start date")
		}
		end = &t
	}

	return start, end, nil
}

func (s *bookingService) newBooking(userID, exhibitionID uuid.UUID, boothType quota.BoothType, amount int, start, end *time.Time) *entity.Booking {
	now := time.Now()
	return &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:       userID,
		ExhibitionID: exhibitionID,
		BoothType:    boothType,
		Amount:       amount,
		StartDate:    start,
		EndDate:      end,
	}
}
