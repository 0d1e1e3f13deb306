package api

import (
	"net/http"
	"strings"

	"dealership/internal/auth"
	"dealership/internal/flash"
	"dealership/internal/validation"

	"go.uber.org/zap"
)

const noticeFeedbackSent = "Thank you, your feedback has been sent."

func (s *Server) buildFeedback(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "messages/new", s.page(r, "Submit Feedback"))
}

func (s *Server) submitFeedback(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFrom(r.Context())
	text := strings.TrimSpace(r.PostFormValue("message_text"))

	if errs := validation.Feedback(text); len(errs) > 0 {
		p := s.page(r, "Submit Feedback")
		p.Errors = errs
		p.Form = map[string]string{"message_text": text}
		s.render(w, r, http.StatusBadRequest, "messages/new", p)
		return
	}

	if _, err := s.messages.InsertMessage(r.Context(), claims.AccountID, text); err != nil {
		s.serverError(w, r, err)
		return
	}

	s.log(r).Info("feedback received", zap.Int64("account_id", claims.AccountID))
	flash.Add(r.Context(), noticeFeedbackSent)
	s.redirect(w, r, "/")
}

func (s *Server) listFeedback(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.messages.ListMessages(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	p := s.page(r, "All User Feedback")
	p.Data = msgs
	s.render(w, r, http.StatusOK, "messages/index", p)
}
