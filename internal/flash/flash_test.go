package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func noticeCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	return nil
}

func TestFlash_SurvivesRedirect(t *testing.T) {
	redirect := Middleware(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Add(r.Context(), "Please log in.")
		http.Redirect(w, r, "/account/login", http.StatusSeeOther)
	}))

	rr := httptest.NewRecorder()
	redirect.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/account/", nil))

	c := noticeCookie(t, rr)
	require.NotNil(t, c)
	require.NotEmpty(t, c.Value)

	var got []string
	render := Middleware(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Drain(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/account/login", nil)
	req.AddCookie(c)
	rr = httptest.NewRecorder()
	render.ServeHTTP(rr, req)

	require.Equal(t, []string{"Please log in."}, got)
	cleared := noticeCookie(t, rr)
	require.NotNil(t, cleared)
	require.Less(t, cleared.MaxAge, 0)
}

func TestFlash_SameRequestRender(t *testing.T) {
	var got []string
	h := Middleware(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Add(r.Context(), "Sorry, the registration failed.")
		got = Drain(r.Context())
		w.WriteHeader(http.StatusBadRequest)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/account/register", nil))

	require.Equal(t, []string{"Sorry, the registration failed."}, got)
	require.Nil(t, noticeCookie(t, rr))
}

func TestFlash_OrderPreserved(t *testing.T) {
	var got []string
	h := Middleware(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Add(r.Context(), "one")
		Sink{}.Add(r.Context(), "two")
		got = Drain(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"one", "two"}, got)
}

func TestFlash_GarbageCookieIgnored(t *testing.T) {
	var got []string
	h := Middleware(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Drain(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "%%%not-base64"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Empty(t, got)
}

func TestFlash_NoMiddlewareIsNoop(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	Add(req.Context(), "dropped")
	require.Nil(t, Drain(req.Context()))
}

func TestFlash_SecureCookie(t *testing.T) {
	for _, secure := range []bool{false, true} {
		h := Middleware(secure)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Add(r.Context(), "You have been logged out.")
			http.Redirect(w, r, "/", http.StatusSeeOther)
		}))

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/account/logout", nil))

		c := noticeCookie(t, rr)
		require.NotNil(t, c)
		require.Equal(t, secure, c.Secure)

		next := Middleware(secure)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Drain(r.Context())
			w.WriteHeader(http.StatusOK)
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(c)
		rr = httptest.NewRecorder()
		next.ServeHTTP(rr, req)

		cleared := noticeCookie(t, rr)
		require.NotNil(t, cleared)
		require.Equal(t, secure, cleared.Secure)
	}
}

func TestFlash_RestoreKeepsNoticesForNextResponse(t *testing.T) {
	h := Middleware(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Add(r.Context(), "one")
		got := Drain(r.Context())
		Restore(r.Context(), got)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	c := noticeCookie(t, rr)
	require.NotNil(t, c)
	require.Equal(t, []string{"one"}, decode(c.Value))
}
