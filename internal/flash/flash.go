// Package flash carries short human-readable notices to the next rendered
// page, surviving at most one redirect in a cookie.
package flash

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// CookieName is the cookie that carries pending notices across a redirect.
const CookieName = "notice"

// maxNotices bounds what a client can make us echo back.
const maxNotices = 10

type queueKey struct{}

// queue holds the notices of one request cycle.
type queue struct {
	mu       sync.Mutex
	notices  []string
	incoming bool
	drained  bool
}

// Middleware restores notices left by the previous response and persists
// notices added during this request unless a page has rendered them. secure
// marks the notice cookie Secure, matching the session cookie.
func Middleware(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := &queue{}
			if c, err := r.Cookie(CookieName); err == nil {
				q.notices = decode(c.Value)
				q.incoming = true
			}

			fw := &writer{ResponseWriter: w, q: q, secure: secure}
			next.ServeHTTP(fw, r.WithContext(context.WithValue(r.Context(), queueKey{}, q)))
			fw.flush()
		})
	}
}

// Add enqueues a notice for the current request cycle. Without the
// middleware it is a no-op.
func Add(ctx context.Context, msg string) {
	q, ok := ctx.Value(queueKey{}).(*queue)
	if !ok {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.notices) < maxNotices {
		q.notices = append(q.notices, msg)
	}
	q.drained = false
}

// Drain returns every pending notice and marks them delivered.
func Drain(ctx context.Context) []string {
	q, ok := ctx.Value(queueKey{}).(*queue)
	if !ok {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.notices
	q.notices = nil
	q.drained = true
	return out
}

// Restore puts notices back at the front of the queue after a failed render.
func Restore(ctx context.Context, notices []string) {
	q, ok := ctx.Value(queueKey{}).(*queue)
	if !ok || len(notices) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	merged := append(append([]string{}, notices...), q.notices...)
	if len(merged) > maxNotices {
		merged = merged[:maxNotices]
	}
	q.notices = merged
	q.drained = false
}

// Sink adapts the package functions to a notice-sink dependency.
type Sink struct{}

func (Sink) Add(ctx context.Context, msg string) { Add(ctx, msg) }

// writer sets or clears the notice cookie just before the header is sent.
type writer struct {
	http.ResponseWriter
	q       *queue
	secure  bool
	flushed bool
}

func (w *writer) WriteHeader(code int) {
	w.flush()
	w.ResponseWriter.WriteHeader(code)
}

func (w *writer) Write(p []byte) (int, error) {
	w.flush()
	return w.ResponseWriter.Write(p)
}

func (w *writer) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *writer) flush() {
	if w.flushed {
		return
	}
	w.flushed = true

	w.q.mu.Lock()
	defer w.q.mu.Unlock()

	switch {
	case len(w.q.notices) > 0:
		http.SetCookie(w.ResponseWriter, &http.Cookie{
			Name:     CookieName,
			Value:    encode(w.q.notices),
			Path:     "/",
			HttpOnly: true,
			Secure:   w.secure,
			SameSite: http.SameSiteLaxMode,
		})
	case w.q.incoming:
		http.SetCookie(w.ResponseWriter, &http.Cookie{
			Name:     CookieName,
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   w.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func encode(notices []string) string {
	b, _ := json.Marshal(notices)
	return base64.RawURLEncoding.EncodeToString(b)
}

func decode(value string) []string {
	b, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var notices []string
	if err := json.Unmarshal(b, &notices); err != nil {
		return nil
	}
	if len(notices) > maxNotices {
		notices = notices[:maxNotices]
	}
	return notices
}
