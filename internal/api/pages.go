package api

import (
	"encoding/json"
	"net/http"

	"dealership/internal/middleware"
	"dealership/internal/view"

	"go.uber.org/zap"
)

const (
	msgNotFound    = "Sorry, we appear to have lost that page."
	msgServerError = "Oh no! There was a crash. Maybe try a different route?"
)

// page starts a view model with the classification nav filled in. A nav
// failure is logged and the page renders without it.
func (s *Server) page(r *http.Request, title string) view.Page {
	nav, err := s.inventory.ListClassifications(r.Context())
	if err != nil {
		s.log(r).Warn("nav build failed", zap.Error(err))
	}
	return view.Page{Title: title, Nav: nav}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, p view.Page) {
	if err := s.views.Render(w, r, status, name, p); err != nil {
		s.log(r).Error("render failed", zap.String("page", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) log(r *http.Request) *zap.Logger {
	return s.logger.With(zap.String("request_id", middleware.RequestIDFrom(r.Context())))
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "home", s.page(r, "Home"))
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	p := s.page(r, "404 Not Found")
	p.Data = msgNotFound
	s.render(w, r, http.StatusNotFound, "errors/error", p)
}

// serverError logs err and renders the generic failure page.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.log(r).Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))

	p := s.page(r, "Server Error")
	p.Data = msgServerError
	s.render(w, r, http.StatusInternalServerError, "errors/error", p)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log(r).Warn("json encode failed", zap.Error(err))
	}
}
