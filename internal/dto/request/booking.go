package request

// CreateBookingRequest books one booth type, the original one-record-per-type
// write. StartDate/EndDate are the optional stay period; when present they
// must fall inside the exhibition window.
type CreateBookingRequest struct {
	Exhibition string  `json:"exhibition" validate:"required,uuid4"`
	BoothType  string  `json:"boothType" validate:"required,oneof=small big"`
	Amount     int     `json:"amount" validate:"required,min=1"`
	StartDate  *string `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate    *string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// BatchBookingRequest books both booth types in one request. Both lines are
// validated up front and written in a single transaction, so a failure on one
// cannot leave the other half-committed.
type BatchBookingRequest struct {
	Exhibition  string  `json:"exhibition" validate:"required,uuid4"`
	SmallAmount int     `json:"smallAmount" validate:"gte=0"`
	BigAmount   int     `json:"bigAmount" validate:"gte=0"`
	StartDate   *string `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateBookingRequest changes a record's amount. Amount 0 cancels the
// record. BoothType must match the record; a line never changes type.
type UpdateBookingRequest struct {
	BoothType string `json:"boothType" validate:"required,oneof=small big"`
	Amount    int    `json:"amount" validate:"gte=0"`
}
