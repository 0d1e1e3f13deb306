package api

import (
	"dealership/internal/flash"
	"dealership/internal/middleware"
	"dealership/internal/models"

	"github.com/go-chi/chi/v5"
)

func (s *Server) RegisterRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(s.logger))
	r.Use(middleware.Recover(s.logger))
	r.Use(flash.Middleware(s.carrier.Secure()))
	r.Use(s.gate.Authenticate)

	r.NotFound(s.notFound)

	staff := s.gate.RequireRole(models.AtLeast(models.RoleEmployee)...)

	r.Get("/", s.home)
	r.Get("/livez", s.livez)
	r.Handle("/metrics", s.metricsHandler())

	r.Route("/account", func(r chi.Router) {
		r.With(s.gate.RequireAuthenticated).Get("/", s.accountManagement)

		r.Get("/login", s.buildLogin)
		r.Post("/login", s.login)
		r.Get("/register", s.buildRegister)
		r.Post("/register", s.register)

		r.With(s.gate.OwnerOrAdmin("account_id")).Get("/update/{account_id}", s.buildUpdateAccount)
		r.With(s.gate.RequireAuthenticated).Post("/update", s.updateAccount)
		r.With(s.gate.RequireAuthenticated).Post("/update-password", s.updatePassword)

		r.Post("/logout", s.logout)
	})

	r.Route("/inv", func(r chi.Router) {
		r.Get("/type/{classification_id}", s.vehiclesByClassification)
		r.Get("/detail/{inv_id}", s.vehicleDetail)

		r.Group(func(r chi.Router) {
			r.Use(staff)

			r.Get("/", s.inventoryManagement)
			r.Get("/add-classification", s.buildAddClassification)
			r.Post("/add-classification", s.addClassification)
			r.Get("/add-inventory", s.buildAddInventory)
			r.Post("/add-inventory", s.addInventory)
			r.Get("/edit/{inv_id}", s.buildEditInventory)
			r.Post("/update", s.updateInventory)
			r.Get("/getInventory/{classification_id}", s.inventoryJSON)
		})
	})

	r.With(s.gate.RequireRole(models.RoleClient)).Get("/messages/new", s.buildFeedback)
	r.With(s.gate.RequireRole(models.RoleClient)).Post("/messages", s.submitFeedback)
	r.With(s.gate.RequireRole(models.RoleAdmin)).Get("/messages", s.listFeedback)

	return r
}
