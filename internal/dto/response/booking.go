package response

import (
	"time"

	"expobook/internal/data/entity"
	"expobook/internal/quota"
)

// ExhibitionRef is the embedded exhibition reference the booking views
// render (name next to each booking row).
type ExhibitionRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID         string          `json:"id"`
	User       string          `json:"user"`
	Exhibition ExhibitionRef   `json:"exhibition"`
	BoothType  quota.BoothType `json:"boothType"`
	Amount     int             `json:"amount"`
	StartDate  *time.Time      `json:"startDate,omitempty"`
	EndDate    *time.Time      `json:"endDate,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func BookingToResponse(booking *entity.Booking, exhibition *entity.Exhibition) BookingResponse {
	ref := ExhibitionRef{ID: booking.ExhibitionID.String()}
	if exhibition != nil {
		ref.Name = exhibition.Name
	}

	return BookingResponse{
		ID:         booking.ID.String(),
		User:       booking.UserID.String(),
		Exhibition: ref,
		BoothType:  booking.BoothType,
		Amount:     booking.Amount,
		StartDate:  booking.StartDate,
		EndDate:    booking.EndDate,
		CreatedAt:  booking.CreatedAt,
	}
}
