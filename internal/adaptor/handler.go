package adaptor

import (
	"go.uber.org/zap"

	"expobook/internal/usecase"
)

type Handler struct {
	Auth       *AuthHandler
	Exhibition *ExhibitionHandler
	Booking    *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, log),
		Exhibition: NewExhibitionHandler(service.Exhibition, log),
		Booking:    NewBookingHandler(service.Booking, log),
	}
}
