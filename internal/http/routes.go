package httpx

import (
	"log/slog"
	"net/http"

	"github.com/ledgerview/txn-ui-api/internal/observability/statsd"
	"github.com/ledgerview/txn-ui-api/internal/ports"
	"github.com/ledgerview/txn-ui-api/internal/service"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Sessions *service.SessionRegistry
	Gateway  ports.RecordGateway

	AdminUsername     string
	AdminPasswordHash string

	CookieDomain string
	CookieSecure bool
	Logger       *slog.Logger

	// Metrics is optional; when nil no metrics middleware is installed.
	Metrics statsd.Sink
}

// NewRouter creates and configures the HTTP router. The /api subtree is
// behind the route guard; the login endpoints and health check are public.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandlers := &AuthHandlers{
		Sessions:          services.Sessions,
		AdminUsername:     services.AdminUsername,
		AdminPasswordHash: services.AdminPasswordHash,
		CookieDomain:      services.CookieDomain,
		CookieSecure:      services.CookieSecure,
		Logger:            logger,
	}
	browserHandlers := &BrowserHandlers{}
	recordHandlers := &RecordHandlers{Gateway: services.Gateway, Logger: logger}
	csvHandlers := &CSVHandlers{Gateway: services.Gateway, Logger: logger}

	guard := RouteGuard(services.Sessions)

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.HandleFunc("POST /auth/login", authHandlers.Login)
	mux.HandleFunc("POST /auth/google", authHandlers.LoginGoogle)
	mux.Handle("POST /auth/logout", guard(http.HandlerFunc(authHandlers.Logout)))

	api := http.NewServeMux()
	api.HandleFunc("GET /api/session", authHandlers.Session)
	api.HandleFunc("GET /api/browse", browserHandlers.Snapshot)
	api.HandleFunc("POST /api/browse/page", browserHandlers.SetPage)
	api.HandleFunc("POST /api/browse/limit", browserHandlers.SetLimit)
	api.HandleFunc("POST /api/browse/search", browserHandlers.Search)
	api.HandleFunc("POST /api/browse/search/cancel", browserHandlers.CancelSearch)
	api.HandleFunc("POST /api/browse/select", browserHandlers.ToggleSelect)
	api.HandleFunc("POST /api/browse/select-all", browserHandlers.SelectAll)
	api.HandleFunc("POST /api/browse/clear", browserHandlers.ClearSelection)
	api.HandleFunc("POST /api/browse/edit", browserHandlers.BeginEdit)
	api.HandleFunc("PUT /api/browse/edit", browserHandlers.CommitEdit)
	api.HandleFunc("DELETE /api/browse/edit", browserHandlers.CancelEdit)
	api.HandleFunc("POST /api/records", recordHandlers.Add)
	api.HandleFunc("PUT /api/records/{id}/soft-delete", recordHandlers.SoftDelete)
	api.HandleFunc("PUT /api/records/{id}/restore", recordHandlers.Restore)
	api.HandleFunc("POST /api/records/bulk", recordHandlers.Bulk)
	api.HandleFunc("POST /api/csv", csvHandlers.Upload)
	api.HandleFunc("GET /api/csv", csvHandlers.Download)
	mux.Handle("/api/", guard(api))

	var handler http.Handler = mux
	if services.Metrics != nil {
		handler = Metrics(services.Metrics)(handler)
	}
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}
