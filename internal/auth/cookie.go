package auth

import (
	"net/http"
	"time"
)

const (
	// CookieName is the cookie carrying the session token.
	CookieName = "jwt"

	// EnvDevelopment is the only deployment mode that sends the session
	// cookie over plain HTTP.
	EnvDevelopment = "development"
)

// SessionCarrier binds a token to the client through a cookie. It does not
// inspect the token.
type SessionCarrier struct {
	secure bool
}

// NewSessionCarrier marks the cookie Secure in every environment except
// development.
func NewSessionCarrier(env string) *SessionCarrier {
	return &SessionCarrier{secure: env != EnvDevelopment}
}

// Secure reports whether cookies are restricted to HTTPS.
func (c *SessionCarrier) Secure() bool {
	return c.secure
}

// Attach sets the session cookie, overwriting any previous one.
func (c *SessionCarrier) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Detach clears the session cookie.
func (c *SessionCarrier) Detach(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the raw token from the inbound request, if any.
func (c *SessionCarrier) Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
