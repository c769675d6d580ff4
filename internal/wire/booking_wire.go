package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"expobook/internal/adaptor"
	"expobook/internal/data/repository"
	"expobook/pkg/middleware"
	"expobook/pkg/utils"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	// All booking routes require a valid session. Members operate on their
	// own bookings; admins see and manage everyone's.
	r.Route("/api/v1/booking", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Get("/", bookingHandler.GetBookings)
		r.Post("/", bookingHandler.CreateBooking)
		r.Post("/batch", bookingHandler.CreateBatch)
		r.Get("/{id}", bookingHandler.GetBookingByID)
		r.Put("/{id}", bookingHandler.UpdateBooking)
		r.Delete("/{id}", bookingHandler.DeleteBooking)
	})
}
