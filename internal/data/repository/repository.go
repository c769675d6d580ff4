package repository

import (
	"go.uber.org/zap"

	"expobook/pkg/database"
)

type Repository struct {
	User       UserRepository
	Session    SessionRepository
	Exhibition ExhibitionRepository
	Booking    BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Session:    NewSessionRepository(db, log),
		Exhibition: NewExhibitionRepository(db, log),
		Booking:    NewBookingRepository(db, log),
	}
}
