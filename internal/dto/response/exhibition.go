package response

import (
	"time"

	"expobook/internal/data/entity"
)

type ExhibitionResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Venue           string    `json:"venue"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	DurationDay     int       `json:"durationDay"`
	SmallBoothQuota int       `json:"smallBoothQuota"`
	BigBoothQuota   int       `json:"bigBoothQuota"`
	PosterPicture   string    `json:"posterPicture"`
	CreatedAt       time.Time `json:"created_at"`
}

func ExhibitionToResponse(exhibition *entity.Exhibition) ExhibitionResponse {
	return ExhibitionResponse{
		ID:              exhibition.ID.String(),
		Name:            exhibition.Name,
		Description:     exhibition.Description,
		Venue:           exhibition.Venue,
		StartDate:       exhibition.StartDate,
		EndDate:         exhibition.EndDate(),
		DurationDay:     exhibition.DurationDay,
		SmallBoothQuota: exhibition.SmallBoothQuota,
		BigBoothQuota:   exhibition.BigBoothQuota,
		PosterPicture:   exhibition.PosterPicture,
		CreatedAt:       exhibition.CreatedAt,
	}
}

func ExhibitionsToResponse(exhibitions []*entity.Exhibition) []ExhibitionResponse {
	responses := make([]ExhibitionResponse, len(exhibitions))
	for i, exhibition := range exhibitions {
		responses[i] = ExhibitionToResponse(exhibition)
	}
	return responses
}
