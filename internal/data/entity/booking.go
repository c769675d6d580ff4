package entity

import (
	"time"

	"github.com/google/uuid"

	"expobook/internal/quota"
)

// Booking is one booth-type line of a user's booking group at an exhibition.
// StartDate/EndDate carry the optional stay period from the booking form;
// later form revisions dropped them, so they stay nullable.
type Booking struct {
	Base
	UserID       uuid.UUID       `db:"user_id"`
	ExhibitionID uuid.UUID       `db:"exhibition_id"`
	BoothType    quota.BoothType `db:"booth_type"`
	Amount       int             `db:"amount"`
	StartDate    *time.Time      `db:"start_date"`
	EndDate      *time.Time      `db:"end_date"`
}
