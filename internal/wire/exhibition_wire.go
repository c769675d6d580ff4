package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"expobook/internal/adaptor"
	"expobook/internal/data/repository"
	"expobook/pkg/middleware"
	"expobook/pkg/utils"
)

func wireExhibition(
	r chi.Router,
	exhibitionHandler *adaptor.ExhibitionHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Anyone can browse exhibitions; booking requires a session.
	r.Get("/api/v1/exhibitions", exhibitionHandler.GetExhibitions)
	r.Get("/api/v1/exhibitions/{id}", exhibitionHandler.GetExhibitionByID)

	// ==================== ADMIN ROUTES ====================
	// Mutations share the public path; only the method set differs.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/api/v1/exhibitions", exhibitionHandler.CreateExhibition)
		r.Put("/api/v1/exhibitions/{id}", exhibitionHandler.UpdateExhibition)
		r.Delete("/api/v1/exhibitions/{id}", exhibitionHandler.DeleteExhibition)
	})
}
