package usecase

import (
	"go.uber.org/zap"

	"expobook/internal/data/repository"
	"expobook/pkg/cache"
	"expobook/pkg/utils"
)

type Service struct {
	Auth       AuthService
	Exhibition ExhibitionService
	Booking    BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, store *cache.Cache, log *zap.Logger) *Service {
	return &Service{
		Auth:       NewAuthService(repo, config, log),
		Exhibition: NewExhibitionService(repo, store, log),
		Booking:    NewBookingService(repo, config, log),
	}
}
