package request

// ExhibitionRequest covers both create and update; the quota fields are
// capacity ceilings, not live-remaining counters.
type ExhibitionRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=200"`
	Description     string `json:"description" validate:"required"`
	Venue           string `json:"venue" validate:"required,max=200"`
	StartDate       string `json:"startDate" validate:"required,datetime=2006-01-02"`
	DurationDay     int    `json:"durationDay" validate:"required,min=1"`
	SmallBoothQuota int    `json:"smallBoothQuota" validate:"gte=0"`
	BigBoothQuota   int    `json:"bigBoothQuota" validate:"gte=0"`
	PosterPicture   string `json:"posterPicture" validate:"omitempty,url"`
}
