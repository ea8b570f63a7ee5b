package httpx

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	domainauth "github.com/ledgerview/txn-ui-api/internal/domain/auth"
	"github.com/ledgerview/txn-ui-api/internal/observability/statsd"
	"github.com/ledgerview/txn-ui-api/internal/service"
)

// SIDCookieName is the cookie carrying the opaque session id.
const SIDCookieName = "sid"

// LoginPath is the redirect hint handed to unauthenticated clients.
const LoginPath = "/login"

// LandingPath is the redirect hint handed to freshly authenticated clients.
const LandingPath = "/"

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Metrics returns a middleware that emits request count and latency per
// method and status class.
func Metrics(sink statsd.Sink) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)

			tags := map[string]string{
				"method": r.Method,
				"status": strconv.Itoa(ww.status),
			}
			sink.Count("http.requests", 1, tags)
			sink.Timing("http.request_duration", time.Since(start), tags)
		})
	}
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RouteGuard returns a middleware that admits only authenticated sessions.
//
// While a session's status is still Unknown the guard answers 503 with a
// Retry-After header; protected content is never served before the status
// resolves. Unauthenticated requests get 401 with a login redirect hint so
// the frontend can route without flashing protected content. Authenticated
// requests renew the idle window and carry the session in the context.
func RouteGuard(sessions *service.SessionRegistry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SIDCookieName)
			if err != nil || cookie.Value == "" {
				writeAuthRequired(w)
				return
			}

			sess := sessions.GetOrCreate(r.Context(), cookie.Value)
			switch sess.Auth.Status() {
			case domainauth.StatusUnknown:
				w.Header().Set("Retry-After", "1")
				WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"error":   "authentication_pending",
					"message": "session status is still resolving",
				})
				return
			case domainauth.StatusUnauthenticated:
				writeAuthRequired(w)
				return
			}

			sess.Auth.NotifyActivity()
			ctx := SetSessionInContext(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthRequired(w http.ResponseWriter) {
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":    "authentication_required",
		"message":  "authentication required",
		"redirect": LoginPath,
	})
}
