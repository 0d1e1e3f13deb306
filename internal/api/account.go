package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"dealership/internal/auth"
	"dealership/internal/flash"
	"dealership/internal/models"
	"dealership/internal/store"
	"dealership/internal/utils"
	"dealership/internal/validation"

	"go.uber.org/zap"
)

const (
	noticeBadCredentials   = "Please check your credentials and try again."
	noticeRegisterError    = "Sorry, there was an error processing the registration."
	noticeRegisterFailed   = "Sorry, the registration failed."
	noticeAccountNotFound  = "Account not found."
	noticeAccountUpdated   = "Account information updated successfully."
	noticeAccountFailed    = "Failed to update account information."
	noticePasswordUpdated  = "Password updated successfully."
	noticePasswordFailed   = "Failed to update password."
	noticePasswordHashFail = "Error processing password update."
	noticeLoggedOut        = "You have been logged out."

	errEmailExists = "Email exists. Please log in or use a different email."
	errEmailInUse  = "Email address is already in use."
)

func (s *Server) buildLogin(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "account/login", s.page(r, "Login"))
}

func (s *Server) buildRegister(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "account/register", s.page(r, "Register"))
}

func (s *Server) accountManagement(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "account/management", s.page(r, "Account Management"))
}

// authenticate checks a login attempt. Unknown email and wrong password are
// both reported as auth.ErrInvalidCredentials.
func (s *Server) authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	const op = "api.authenticate"

	acc, err := s.accounts.AccountByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, auth.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ok, err := s.hasher.Verify(password, acc.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, auth.ErrInvalidCredentials
	}

	return acc, nil
}

// startSession signs a token for acc and binds it to the client.
func (s *Server) startSession(w http.ResponseWriter, acc *models.Account) error {
	token, err := s.codec.Sign(models.ClaimsFor(acc), auth.TokenTTL)
	if err != nil {
		return err
	}
	s.carrier.Attach(w, token)
	return nil
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.PostFormValue("account_email"))
	password := r.PostFormValue("account_password")

	p := s.page(r, "Login")
	p.Form = map[string]string{"account_email": email}

	if errs := validation.Login(email, password); len(errs) > 0 {
		p.Errors = errs
		s.render(w, r, http.StatusBadRequest, "account/login", p)
		return
	}

	acc, err := s.authenticate(r.Context(), email, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		flash.Add(r.Context(), noticeBadCredentials)
		s.render(w, r, http.StatusBadRequest, "account/login", p)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	if err := s.startSession(w, acc); err != nil {
		s.serverError(w, r, err)
		return
	}

	s.log(r).Info("login", zap.Int64("account_id", acc.ID))
	s.redirect(w, r, "/account/")
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	req := models.RegisterRequest{
		FirstName:       strings.TrimSpace(r.PostFormValue("account_firstname")),
		LastName:        strings.TrimSpace(r.PostFormValue("account_lastname")),
		Email:           strings.TrimSpace(r.PostFormValue("account_email")),
		Password:        r.PostFormValue("account_password"),
		PasswordConfirm: r.PostFormValue("account_password_confirm"),
	}

	p := s.page(r, "Register")
	p.Form = map[string]string{
		"account_firstname": req.FirstName,
		"account_lastname":  req.LastName,
		"account_email":     req.Email,
	}

	if errs := validation.Registration(req.FirstName, req.LastName, req.Email, req.Password, req.PasswordConfirm); len(errs) > 0 {
		p.Errors = errs
		s.render(w, r, http.StatusBadRequest, "account/register", p)
		return
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.log(r).Error("registration hash failed", zap.Error(err))
		flash.Add(r.Context(), noticeRegisterError)
		s.render(w, r, http.StatusInternalServerError, "account/register", p)
		return
	}

	acc, err := s.accounts.CreateAccount(r.Context(), models.NewAccountRequest{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	})
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		p.Errors = []string{errEmailExists}
		s.render(w, r, http.StatusConflict, "account/register", p)
		return
	case err != nil:
		s.log(r).Error("registration failed", zap.Error(err))
		flash.Add(r.Context(), noticeRegisterFailed)
		s.render(w, r, http.StatusInternalServerError, "account/register", p)
		return
	}

	s.log(r).Info("account registered", zap.Int64("account_id", acc.ID))
	flash.Add(r.Context(), fmt.Sprintf("Congratulations, you're registered %s. Please log in.", acc.FirstName))

	lp := s.page(r, "Login")
	lp.Form = map[string]string{"account_email": acc.Email}
	s.render(w, r, http.StatusCreated, "account/login", lp)
}

func (s *Server) buildUpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "account_id")
	if err != nil {
		s.notFound(w, r)
		return
	}

	acc, err := s.accounts.AccountByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		flash.Add(r.Context(), noticeAccountNotFound)
		s.redirect(w, r, "/account/")
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	p := s.page(r, "Update Account Information")
	p.Form = accountForm(acc.ID, acc.FirstName, acc.LastName, acc.Email)
	s.render(w, r, http.StatusOK, "account/update", p)
}

// targetAccount reads account_id from the form and checks the caller may
// act on it. It answers the request itself when it returns false.
func (s *Server) targetAccount(w http.ResponseWriter, r *http.Request) (int64, *models.Claims, bool) {
	claims := auth.ClaimsFrom(r.Context())
	if claims == nil {
		s.gate.Deny(w, r, auth.ErrUnauthenticated)
		return 0, nil, false
	}

	id, err := utils.ParseID(r.PostFormValue("account_id"))
	if err != nil || !claims.CanManage(id) {
		s.gate.Deny(w, r, auth.ErrAccessDenied)
		return 0, nil, false
	}

	return id, claims, true
}

func (s *Server) updateAccount(w http.ResponseWriter, r *http.Request) {
	id, claims, ok := s.targetAccount(w, r)
	if !ok {
		return
	}

	upd := models.ProfileUpdate{
		FirstName: strings.TrimSpace(r.PostFormValue("account_firstname")),
		LastName:  strings.TrimSpace(r.PostFormValue("account_lastname")),
		Email:     strings.TrimSpace(r.PostFormValue("account_email")),
	}

	p := s.page(r, "Update Account Information")
	p.Form = accountForm(id, upd.FirstName, upd.LastName, upd.Email)

	if errs := validation.Profile(upd.FirstName, upd.LastName, upd.Email); len(errs) > 0 {
		p.Errors = errs
		s.render(w, r, http.StatusBadRequest, "account/update", p)
		return
	}

	acc, err := s.accounts.UpdateProfile(r.Context(), id, upd)
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		p.Errors = []string{errEmailInUse}
		s.render(w, r, http.StatusConflict, "account/update", p)
		return
	case errors.Is(err, store.ErrNotFound):
		flash.Add(r.Context(), noticeAccountNotFound)
		s.redirect(w, r, "/account/")
		return
	case err != nil:
		s.log(r).Error("account update failed", zap.Int64("account_id", id), zap.Error(err))
		flash.Add(r.Context(), noticeAccountFailed)
		s.redirect(w, r, "/account/")
		return
	}

	// The signed-in identity changed: replace the token so the header and
	// gates see the new values.
	if acc.ID == claims.AccountID {
		if err := s.startSession(w, acc); err != nil {
			s.serverError(w, r, err)
			return
		}
	}

	flash.Add(r.Context(), noticeAccountUpdated)
	s.redirect(w, r, "/account/")
}

func (s *Server) updatePassword(w http.ResponseWriter, r *http.Request) {
	id, _, ok := s.targetAccount(w, r)
	if !ok {
		return
	}

	password := r.PostFormValue("account_password")
	if errs := validation.Password(password, r.PostFormValue("account_password_confirm")); len(errs) > 0 {
		acc, err := s.accounts.AccountByID(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			flash.Add(r.Context(), noticeAccountNotFound)
			s.redirect(w, r, "/account/")
			return
		}
		if err != nil {
			s.serverError(w, r, err)
			return
		}

		p := s.page(r, "Update Account Information")
		p.Form = accountForm(acc.ID, acc.FirstName, acc.LastName, acc.Email)
		p.Errors = errs
		s.render(w, r, http.StatusBadRequest, "account/update", p)
		return
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.log(r).Error("password hash failed", zap.Error(err))
		flash.Add(r.Context(), noticePasswordHashFail)
		s.redirect(w, r, "/account/")
		return
	}

	if err := s.accounts.UpdatePassword(r.Context(), id, hash); err != nil {
		s.log(r).Error("password update failed", zap.Int64("account_id", id), zap.Error(err))
		flash.Add(r.Context(), noticePasswordFailed)
		s.redirect(w, r, "/account/")
		return
	}

	flash.Add(r.Context(), noticePasswordUpdated)
	s.redirect(w, r, "/account/")
}

// logout clears the cookie and, when a deny-list is configured, refuses the
// token for the rest of its lifetime.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := s.carrier.Read(r); ok {
		if claims := auth.ClaimsFrom(r.Context()); claims != nil {
			if err := s.revoker.Revoke(r.Context(), token, auth.ExpiresAt(claims)); err != nil {
				s.log(r).Warn("token revoke failed", zap.Int64("account_id", claims.AccountID), zap.Error(err))
			}
		}
	}

	s.carrier.Detach(w)
	flash.Add(r.Context(), noticeLoggedOut)
	s.redirect(w, r, "/")
}

func accountForm(id int64, first, last, email string) map[string]string {
	return map[string]string{
		"account_id":        strconv.FormatInt(id, 10),
		"account_firstname": first,
		"account_lastname":  last,
		"account_email":     email,
	}
}
