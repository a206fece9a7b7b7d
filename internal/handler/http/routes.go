package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/", h.landingPage)
		r.Post("/api/login", h.apiLogin)
		r.Post("/api/register", h.apiRegister)
	})

	// routes behind a valid session
	router.Group(func(r chi.Router) {
		r.Use(h.withAuth)

		r.Get("/dashboard", h.dashboardPage)
		r.Get("/weight", h.weightPage)
		r.Get("/exercise", h.exercisePage)
		r.Get("/food", h.foodPage)
		r.Get("/recipes", h.recipesPage)
		r.Get("/profile", h.profilePage)
		r.Get("/logout", h.logout)

		r.Post("/weight", h.addLogEntry)
		r.Post("/weight/delete", h.deleteLogEntry)
		r.Post("/exercise", h.addLogEntry)
		r.Post("/exercise/delete", h.deleteLogEntry)
		r.Post("/food", h.addLogEntry)
		r.Post("/food/delete", h.deleteLogEntry)
		r.Post("/recipes", h.addRecipe)
		r.Post("/recipes/delete", h.deleteRecipe)
		r.Post("/profile", h.updateProfile)
		r.Post("/profile/password", h.changePassword)
	})

	return router
}
