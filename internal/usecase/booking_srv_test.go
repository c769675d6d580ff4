package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"expobook/internal/data/entity"
	"expobook/internal/data/repository"
	"expobook/internal/dto/request"
	"expobook/internal/quota"
	"expobook/pkg/utils"
)

// ==================== IN-MEMORY FAKES ====================

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) CreateAll(_ context.Context, bookings []*entity.Booking) error {
	for _, booking := range bookings {
		copied := *booking
		r.bookings[booking.ID] = &copied
	}
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) FindAll(_ context.Context) ([]*entity.Booking, error) {
	var all []*entity.Booking
	for _, booking := range r.bookings {
		copied := *booking
		all = append(all, &copied)
	}
	return all, nil
}

func (r *fakeBookingRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	var mine []*entity.Booking
	for _, booking := range r.bookings {
		if booking.UserID == userID {
			copied := *booking
			mine = append(mine, &copied)
		}
	}
	return mine, nil
}

func (r *fakeBookingRepo) SumAmounts(_ context.Context, exhibitionID uuid.UUID, boothType quota.BoothType, userID, excludeID *uuid.UUID) (int, error) {
	total := 0
	for _, booking := range r.bookings {
		if booking.ExhibitionID != exhibitionID || booking.BoothType != boothType {
			continue
		}
		if userID != nil && booking.UserID != *userID {
			continue
		}
		if excludeID != nil && booking.ID == *excludeID {
			continue
		}
		total += booking.Amount
	}
	return total, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, booking *entity.Booking) error {
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) DeleteByExhibitionID(_ context.Context, exhibitionID uuid.UUID) error {
	for id, booking := range r.bookings {
		if booking.ExhibitionID == exhibitionID {
			delete(r.bookings, id)
		}
	}
	return nil
}

type fakeExhibitionRepo struct {
	exhibitions map[uuid.UUID]*entity.Exhibition
}

func newFakeExhibitionRepo(exhibitions ...*entity.Exhibition) *fakeExhibitionRepo {
	repo := &fakeExhibitionRepo{exhibitions: make(map[uuid.UUID]*entity.Exhibition)}
	for _, e := range exhibitions {
		repo.exhibitions[e.ID] = e
	}
	return repo
}

func (r *fakeExhibitionRepo) Create(_ context.Context, exhibition *entity.Exhibition) error {
	r.exhibitions[exhibition.ID] = exhibition
	return nil
}

func (r *fakeExhibitionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Exhibition, error) {
	exhibition, ok := r.exhibitions[id]
	if !ok {
		return nil, nil
	}
	return exhibition, nil
}

func (r *fakeExhibitionRepo) FindAll(_ context.Context) ([]*entity.Exhibition, error) {
	var all []*entity.Exhibition
	for _, exhibition := range r.exhibitions {
		all = append(all, exhibition)
	}
	return all, nil
}

func (r *fakeExhibitionRepo) Update(_ context.Context, exhibition *entity.Exhibition) error {
	r.exhibitions[exhibition.ID] = exhibition
	return nil
}

func (r *fakeExhibitionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.exhibitions, id)
	return nil
}

// ==================== FIXTURES ====================

func testExhibition(smallQuota, bigQuota int) *entity.Exhibition {
	now := time.Now()
	return &entity.Exhibition{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:            "Tech Expo 2026",
		Venue:           "Hall A",
		StartDate:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		DurationDay:     5,
		SmallBoothQuota: smallQuota,
		BigBoothQuota:   bigQuota,
	}
}

func newTestBookingService(exhibition *entity.Exhibition, scope quota.Scope) (BookingService, *fakeBookingRepo) {
	bookingRepo := newFakeBookingRepo()
	repo := &repository.Repository{
		Exhibition: newFakeExhibitionRepo(exhibition),
		Booking:    bookingRepo,
	}
	config := &utils.Config{
		Booking: utils.BookingConfig{Scope: scope},
	}

	return NewBookingService(repo, config, zap.NewNop()), bookingRepo
}

func createReq(exhibitionID uuid.UUID, boothType string, amount int) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		Exhibition: exhibitionID.String(),
		BoothType:  boothType,
		Amount:     amount,
	}
}

// ==================== CREATE ====================

func TestCreateBooking_Accepted(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, repo := newTestBookingService(exhibition, quota.ScopePerUser)
	userID := uuid.New()

	resp, err := service.CreateBooking(context.Background(), userID.String(), createReq(exhibition.ID, "small", 3))

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Amount)
	assert.Equal(t, quota.BoothSmall, resp.BoothType)
	assert.Equal(t, exhibition.Name, resp.Exhibition.Name)
	assert.Len(t, repo.bookings, 1)
}

func TestCreateBooking_CombinedCapRejected(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, repo := newTestBookingService(exhibition, quota.ScopePerUser)
	userID := uuid.New()

	_, err := service.CreateBooking(context.Background(), userID.String(), createReq(exhibition.ID, "small", 5))
	require.NoError(t, err)

	// 5 + 2 would pass 6 units
	_, err = service.CreateBooking(context.Background(), userID.String(), createReq(exhibition.ID, "big", 2))

	require.Error(t, err)
	assert.EqualError(t, err, "Total units can not exceed 6.")
	assert.Len(t, repo.bookings, 1, "rejected booking must not be written")
}

func TestCreateBooking_ExactlyAtCapAccepted(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, _ := newTestBookingService(exhibition, quota.ScopePerUser)
	userID := uuid.New()

	_, err := service.CreateBooking(context.Background(), userID.String(), createReq(exhibition.ID, "small", 5))
	require.NoError(t, err)

	_, err = service.CreateBooking(context.Background(), userID.String(), createReq(exhibition.ID, "big", 1))
	assert.NoError(t, err, "6 total units is within the cap")
}

func TestCreateBooking_QuotaRejected(t *testing.T) {
	exhibition := testExhibition(2, 10)
	service, repo := newTestBookingService(exhibition, quota.ScopePerUser)
	userID := uuid.New()

	_, err := service.CreateBooking(context.Background(), userID.String(), createReq(exhibition.ID, "small", 3))

	require.Error(t, err)
	assert.EqualError(t, err, "Increasing can not exceed 2.")
	assert.Empty(t, repo.bookings)
}

func TestCreateBooking_ExhibitionNotFound(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, _ := newTestBookingService(exhibition, quota.ScopePerUser)

	_, err := service.CreateBooking(context.Background(), uuid.New().String(), createReq(uuid.New(), "small", 1))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCreateBooking_PerUserScopeIsolatesUsers(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, _ := newTestBookingService(exhibition, quota.ScopePerUser)

	_, err := service.CreateBooking(context.Background(), uuid.New().String(), createReq(exhibition.ID, "small", 6))
	require.NoError(t, err)

	// Another user starts a fresh group under perUser scope.
	_, err = service.CreateBooking(context.Background(), uuid.New().String(), createReq(exhibition.ID, "small", 6))
	assert.NoError(t, err)
}

func TestCreateBooking_GlobalScopeSharesCap(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, _ := newTestBookingService(exhibition, quota.ScopeGlobal)

	_, err := service.CreateBooking(context.Background(), uuid.New().String(), createReq(exhibition.ID, "small", 6))
	require.NoError(t, err)

	_, err = service.CreateBooking(context.Background(), uuid.New().String(), createReq(exhibition.ID, "small", 1))
	require.Error(t, err)
	assert.EqualError(t, err, "Total units can not exceed 6.")
}

func TestCreateBooking_PeriodOutsideWindowRejected(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, _ := newTestBookingService(exhibition, quota.ScopePerUser)

	// Exhibition runs 2026-09-01 through 2026-09-05.
	outside := "2026-09-06"
	req := createReq(exhibition.ID, "small", 1)
	req.StartDate = &outside

	_, err := service.CreateBooking(context.Background(), uuid.New().String(), req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside the exhibition window")
}

func TestCreateBooking_PeriodInsideWindowAccepted(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, _ := newTestBookingService(exhibition, quota.ScopePerUser)

	start, end := "2026-09-01", "2026-09-05"
	req := createReq(exhibition.ID, "small", 1)
	req.StartDate = &start
	req.EndDate = &end

	resp, err := service.CreateBooking(context.Background(), uuid.New().String(), req)

	require.NoError(t, err)
	require.NotNil(t, resp.StartDate)
	require.NotNil(t, resp.EndDate)
}

// ==================== BATCH ====================

func TestCreateBatch_BothLinesWritten(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, repo := newTestBookingService(exhibition, quota.ScopePerUser)
	userID := uuid.New()

	responses, err := service.CreateBatch(context.Background(), userID.String(), &request.BatchBookingRequest{
		Exhibition:  exhibition.ID.String(),
		SmallAmount: 2,
		BigAmount:   3,
	})

	require.NoError(t, err)
	assert.Len(t, responses, 2)
	assert.Len(t, repo.bookings, 2)
}

func TestCreateBatch_CombinedCapCountsBothLines(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, repo := newTestBookingService(exhibition, quota.ScopePerUser)
	userID := uuid.New()

	// 4 + 3 = 7 passes the cap even though each line alone would fit.
	_, err := service.CreateBatch(context.Background(), userID.String(), &request.BatchBookingRequest{
		Exhibition:  exhibition.ID.String(),
		SmallAmount: 4,
		BigAmount:   3,
	})

	require.Error(t, err)
	assert.EqualError(t, err, "Total units can not exceed 6.")
	assert.Empty(t, repo.bookings, "nothing may be written when any line fails")
}

func TestCreateBatch_QuotaCheckedPerLine(t *testing.T) {
	exhibition := testExhibition(10, 1)
	service, repo := newTestBookingService(exhibition, quota.ScopePerUser)
	userID := uuid.New()

	_, err := service.CreateBatch(context.Background(), userID.String(), &request.BatchBookingRequest{
		Exhibition:  exhibition.ID.String(),
		SmallAmount: 2,
		BigAmount:   2,
	})

	require.Error(t, err)
	assert.EqualError(t, err, "Increasing can not exceed 1.")
	assert.Empty(t, repo.bookings)
}

func TestCreateBatch_SingleLineAllowed(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, repo := newTestBookingService(exhibition, quota.ScopePerUser)

	responses, err := service.CreateBatch(context.Background(), uuid.New().String(), &request.BatchBookingRequest{
		Exhibition:  exhibition.ID.String(),
		SmallAmount: 0,
		BigAmount:   2,
	})

	require.NoError(t, err)
	assert.Len(t, responses, 1)
	assert.Len(t, repo.bookings, 1)
}

func TestCreateBatch_BothZeroRejected(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, _ := newTestBookingService(exhibition, quota.ScopePerUser)

	_, err := service.CreateBatch(context.Background(), uuid.New().String(), &request.BatchBookingRequest{
		Exhibition: exhibition.ID.String(),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one booth")
}

// ==================== UPDATE ====================

func TestUpdateBooking_IncreaseWithinQuota(t *testing.T) {
	exhibition := testExhibition(2, 10)
	service, _ := newTestBookingService(exhibition, quota.ScopePerUser)
	userID := uuid.New()

	created, err := service.CreateBooking(context.Background(), userID.String(), createReq(exhibition.ID, "small", 2))
	require.NoError(t, err)

	// Prior 2 -> proposed 4: delta 2 equals the quota, accepted. The quota
	// bounds the increase, not the final amount.
	resp, deleted, err := service.UpdateBooking(context.Background(), userID.String(), false, created.ID, &request.UpdateBookingRequest{
		BoothType: "small",
		Amount:    4,
	})

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 4, resp.Amount)
}

func TestUpdateBooking_IncreaseBeyondQuotaRejected(t *testing.T) {
	exhibition := testExhibition(2, 10)
	service, _ := newTestBookingService(exhibition, quota.ScopePerUser)
	userID := uuid.New()

	created, err := service.CreateBooking(context.Background(), userID.String(), createReq(exhibition.ID, "small", 2))
	require.NoError(t, err)

	// Delta 3 exceeds the quota of 2.
	_, _, err = service.UpdateBooking(context.Background(), userID.String(), false, created.ID, &request.UpdateBookingRequest{
		BoothType: "small",
		Amount:    5,
	})

	require.Error(t, err)
	assert.EqualError(t, err, "Increasing can not exceed 2.")
}

func TestUpdateBooking_DecreaseNeverQuotaChecked(t *testing.T) {
	exhibition := testExhibition(5, 10)
	service, _ := newTestBookingService(exhibition, quota.ScopePerUser)
	userID := uuid.New()

	created, err := service.CreateBooking(context.Background(), userID.String(), createReq(exhibition.ID, "small", 5))
	require.NoError(t, err)

	// Shrinking the quota afterwards must not block a decrease.
	exhibition.SmallBoothQuota = 0

	resp, deleted, err := service.UpdateBooking(context.Background(), userID.String(), false, created.ID, &request.UpdateBookingRequest{
		BoothType: "small",
		Amount:    1,
	})

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 1, resp.Amount)
}

func TestUpdateBooking_ZeroAmountCancels(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, repo := newTestBookingService(exhibition, quota.ScopePerUser)
	userID := uuid.New()

	created, err := service.CreateBooking(context.Background(), userID.String(), createReq(exhibition.ID, "small", 3))
	require.NoError(t, err)

	resp, deleted, err := service.UpdateBooking(context.Background(), userID.String(), false, created.ID, &request.UpdateBookingRequest{
		BoothType: "small",
		Amount:    0,
	})

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Nil(t, resp)
	assert.Empty(t, repo.bookings)
}

func TestUpdateBooking_ZeroAmountSkipsQuotaRules(t *testing.T) {
	exhibition := testExhibition(0, 0)
	service, repo := newTestBookingService(exhibition, quota.ScopePerUser)
	userID := uuid.New()

	// Seed a record directly so quotas of zero cannot block the cancel.
	booking := &entity.Booking{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		UserID:       userID,
		ExhibitionID: exhibition.ID,
		BoothType:    quota.BoothSmall,
		Amount:       4,
	}
	require.NoError(t, repo.Create(context.Background(), booking))

	_, deleted, err := service.UpdateBooking(context.Background(), userID.String(), false, booking.ID.String(), &request.UpdateBookingRequest{
		BoothType: "small",
		Amount:    0,
	})

	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestUpdateBooking_ExcludesOwnPriorAmountFromCap(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, _ := newTestBookingService(exhibition, quota.ScopePerUser)
	userID := uuid.New()

	created, err := service.CreateBooking(context.Background(), userID.String(), createReq(exhibition.ID, "small", 5))
	require.NoError(t, err)

	// The edited record's prior 5 must not be double counted: 6 total is fine.
	resp, deleted, err := service.UpdateBooking(context.Background(), userID.String(), false, created.ID, &request.UpdateBookingRequest{
		BoothType: "small",
		Amount:    6,
	})

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 6, resp.Amount)
}

func TestUpdateBooking_BoothTypeChangeRejected(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, _ := newTestBookingService(exhibition, quota.ScopePerUser)
	userID := uuid.New()

	created, err := service.CreateBooking(context.Background(), userID.String(), createReq(exhibition.ID, "small", 2))
	require.NoError(t, err)

	_, _, err = service.UpdateBooking(context.Background(), userID.String(), false, created.ID, &request.UpdateBookingRequest{
		BoothType: "big",
		Amount:    2,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "booth type cannot be changed")
}

func TestUpdateBooking_AdminEditsMembersGroup(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, _ := newTestBookingService(exhibition, quota.ScopePerUser)
	memberID := uuid.New()
	adminID := uuid.New()

	created, err := service.CreateBooking(context.Background(), memberID.String(), createReq(exhibition.ID, "small", 4))
	require.NoError(t, err)

	_, err = service.CreateBooking(context.Background(), memberID.String(), createReq(exhibition.ID, "big", 2))
	require.NoError(t, err)

	// The member holds 6 units. The admin's edit aggregates the member's
	// group, so raising the small line passes the cap.
	_, _, err = service.UpdateBooking(context.Background(), adminID.String(), true, created.ID, &request.UpdateBookingRequest{
		BoothType: "small",
		Amount:    5,
	})

	require.Error(t, err)
	assert.EqualError(t, err, "Total units can not exceed 6.")
}

// ==================== OWNERSHIP ====================

func TestGetBookingByID_OtherUsersBookingDenied(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, _ := newTestBookingService(exhibition, quota.ScopePerUser)
	ownerID := uuid.New()

	created, err := service.CreateBooking(context.Background(), ownerID.String(), createReq(exhibition.ID, "small", 1))
	require.NoError(t, err)

	_, err = service.GetBookingByID(context.Background(), uuid.New().String(), false, created.ID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestGetBookingByID_AdminSeesAny(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, _ := newTestBookingService(exhibition, quota.ScopePerUser)
	ownerID := uuid.New()

	created, err := service.CreateBooking(context.Background(), ownerID.String(), createReq(exhibition.ID, "small", 1))
	require.NoError(t, err)

	resp, err := service.GetBookingByID(context.Background(), uuid.New().String(), true, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)
}

func TestDeleteBooking_OtherUsersBookingDenied(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, repo := newTestBookingService(exhibition, quota.ScopePerUser)
	ownerID := uuid.New()

	created, err := service.CreateBooking(context.Background(), ownerID.String(), createReq(exhibition.ID, "small", 1))
	require.NoError(t, err)

	err = service.DeleteBooking(context.Background(), uuid.New().String(), false, created.ID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
	assert.Len(t, repo.bookings, 1)
}

func TestGetBookings_MemberSeesOnlyOwn(t *testing.T) {
	exhibition := testExhibition(10, 10)
	service, _ := newTestBookingService(exhibition, quota.ScopePerUser)
	aliceID := uuid.New()
	bobID := uuid.New()

	_, err := service.CreateBooking(context.Background(), aliceID.String(), createReq(exhibition.ID, "small", 1))
	require.NoError(t, err)
	_, err = service.CreateBooking(context.Background(), bobID.String(), createReq(exhibition.ID, "big", 2))
	require.NoError(t, err)

	mine, err := service.GetBookings(context.Background(), aliceID.String(), false)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := service.GetBookings(context.Background(), aliceID.String(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
