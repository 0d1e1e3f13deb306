package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"dealership/internal/auth"
	"dealership/internal/denylist"
	"dealership/internal/models"
	"dealership/internal/utils"

	"go.uber.org/zap"
)

// LoginPath is where every denied browser request is sent.
const LoginPath = "/account/login"

const (
	NoticeLogIn        = "Please log in."
	NoticeAccessDenied = "Access denied. Please log in with an authorized account."
)

// NoticeSink enqueues a message for the next rendered page.
type NoticeSink interface {
	Add(ctx context.Context, msg string)
}

// DenyFunc answers a request the gate refused. err is one of
// auth.ErrTokenInvalid, auth.ErrUnauthenticated or auth.ErrAccessDenied.
type DenyFunc func(w http.ResponseWriter, r *http.Request, err error)

// RedirectToLogin enqueues a notice matching err and redirects to the login
// page with 303 See Other.
func RedirectToLogin(notices NoticeSink) DenyFunc {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		msg := NoticeLogIn
		if errors.Is(err, auth.ErrAccessDenied) {
			msg = NoticeAccessDenied
		}
		if notices != nil {
			notices.Add(r.Context(), msg)
		}
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
	}
}

// JSONDeny answers 403 for a denied role or ownership and 401 otherwise.
func JSONDeny(w http.ResponseWriter, _ *http.Request, err error) {
	status := http.StatusUnauthorized
	if errors.Is(err, auth.ErrAccessDenied) {
		status = http.StatusForbidden
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// Gate establishes the request identity from the session cookie and guards
// routes by authentication, role and ownership.
type Gate struct {
	codec   *auth.TokenCodec
	carrier *auth.SessionCarrier
	notices NoticeSink
	revoked denylist.Revoker
	log     *zap.Logger
	deny    DenyFunc
	metrics *Metrics
}

// GateOption customizes a Gate.
type GateOption func(*Gate)

// WithNotices sets where denial notices go.
func WithNotices(n NoticeSink) GateOption {
	return func(g *Gate) { g.notices = n }
}

// WithDenyList makes Authenticate refuse revoked tokens.
func WithDenyList(r denylist.Revoker) GateOption {
	return func(g *Gate) { g.revoked = r }
}

func WithLogger(l *zap.Logger) GateOption {
	return func(g *Gate) { g.log = l }
}

// WithDeny replaces the default RedirectToLogin response.
func WithDeny(d DenyFunc) GateOption {
	return func(g *Gate) { g.deny = d }
}

func WithMetrics(m *Metrics) GateOption {
	return func(g *Gate) { g.metrics = m }
}

func NewGate(codec *auth.TokenCodec, carrier *auth.SessionCarrier, opts ...GateOption) *Gate {
	g := &Gate{
		codec:   codec,
		carrier: carrier,
		revoked: denylist.Nop{},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.deny == nil {
		g.deny = RedirectToLogin(g.notices)
	}
	return g
}

// Deny answers a request refused by a check made outside the gate, such as
// an ownership test against a submitted form value.
func (g *Gate) Deny(w http.ResponseWriter, r *http.Request, err error) {
	g.deny(w, r, err)
}

// Authenticate verifies the session cookie, if any. Requests without a
// cookie continue anonymously. A cookie that fails verification or was
// revoked is cleared and the request is denied with auth.ErrTokenInvalid.
func (g *Gate) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := g.carrier.Read(r)
		if !ok {
			g.metrics.observe(gateAuthenticate, outcomeAnonymous)
			next.ServeHTTP(w, r)
			return
		}

		claims, err := g.codec.Verify(token)
		if err != nil {
			g.metrics.observe(gateAuthenticate, outcomeInvalidToken)
			g.carrier.Detach(w)
			g.deny(w, r, auth.ErrTokenInvalid)
			return
		}

		revoked, err := g.revoked.Revoked(r.Context(), token)
		if err != nil {
			g.log.Warn("deny-list lookup failed, token accepted",
				zap.Int64("account_id", claims.AccountID),
				zap.String("request_id", RequestIDFrom(r.Context())),
				zap.Error(err),
			)
		}
		if revoked {
			g.metrics.observe(gateAuthenticate, outcomeRevoked)
			g.carrier.Detach(w)
			g.deny(w, r, auth.ErrTokenInvalid)
			return
		}

		g.metrics.observe(gateAuthenticate, outcomeAdmitted)
		next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	})
}

// RequireAuthenticated admits any verified identity.
func (g *Gate) RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsAuthenticated(r.Context()) {
			g.metrics.observe(gateRequireAuthenticated, outcomeUnauthenticated)
			g.deny(w, r, auth.ErrUnauthenticated)
			return
		}

		g.metrics.observe(gateRequireAuthenticated, outcomeAdmitted)
		next.ServeHTTP(w, r)
	})
}

// RequireRole admits a verified identity holding one of roles.
func (g *Gate) RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.ClaimsFrom(r.Context())
			if claims == nil {
				g.metrics.observe(gateRequireRole, outcomeUnauthenticated)
				g.deny(w, r, auth.ErrUnauthenticated)
				return
			}

			if !claims.HasRole(roles...) {
				g.metrics.observe(gateRequireRole, outcomeDenied)
				g.deny(w, r, auth.ErrAccessDenied)
				return
			}

			g.metrics.observe(gateRequireRole, outcomeAdmitted)
			next.ServeHTTP(w, r)
		})
	}
}

// OwnerOrAdmin admits the account named by the {param} route parameter, or
// any Admin.
func (g *Gate) OwnerOrAdmin(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.ClaimsFrom(r.Context())
			if claims == nil {
				g.metrics.observe(gateOwnerOrAdmin, outcomeUnauthenticated)
				g.deny(w, r, auth.ErrUnauthenticated)
				return
			}

			if claims.Role != models.RoleAdmin {
				id, err := utils.PathID(r, param)
				if err != nil || !claims.CanManage(id) {
					g.metrics.observe(gateOwnerOrAdmin, outcomeDenied)
					g.deny(w, r, auth.ErrAccessDenied)
					return
				}
			}

			g.metrics.observe(gateOwnerOrAdmin, outcomeAdmitted)
			next.ServeHTTP(w, r)
		})
	}
}
