package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerview/txn-ui-api/internal/service"
)

// AuthHandlers provides HTTP handlers for the session lifecycle.
type AuthHandlers struct {
	Sessions *service.SessionRegistry

	// AdminUsername and AdminPasswordHash gate the fallback login form.
	AdminUsername     string
	AdminPasswordHash string

	CookieDomain string
	CookieSecure bool
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login handles the fallback username/password form.
// POST /auth/login {username, password}.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	if body.Username != h.AdminUsername ||
		bcrypt.CompareHashAndPassword([]byte(h.AdminPasswordHash), []byte(body.Password)) != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "invalid_credentials",
			Err:     errors.New("invalid username or password"),
		})
		return
	}

	sid := h.ensureSID(r)
	sess := h.Sessions.GetOrCreate(r.Context(), sid)
	if err := sess.Auth.Login(r.Context(), "", true); err != nil {
		h.logger().ErrorContext(r.Context(), "fallback login failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "login_failed", Err: err})
		return
	}

	h.setSIDCookie(w, sid)
	WriteJSON(w, http.StatusOK, map[string]string{"redirect": LandingPath})
}

// LoginGoogle handles the federated sign-in credential.
// POST /auth/google {credential}.
func (h *AuthHandlers) LoginGoogle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Credential string `json:"credential"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	if body.Credential == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_credential",
			Err:     errors.New("credential is required"),
		})
		return
	}

	sid := h.ensureSID(r)
	sess := h.Sessions.GetOrCreate(r.Context(), sid)
	if err := sess.Auth.Login(r.Context(), body.Credential, false); err != nil {
		code := "invalid_credential"
		if errors.Is(err, service.ErrCredentialExpired) {
			code = "credential_expired"
		}
		h.logger().WarnContext(r.Context(), "federated login rejected", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: code, Err: err})
		return
	}

	h.setSIDCookie(w, sid)
	WriteJSON(w, http.StatusOK, map[string]string{"redirect": LandingPath})
}

// Logout signs the session out and evicts it.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.Sessions.Evict(r.Context(), sess.SID)
	h.clearSIDCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Session reports the caller's identity.
// GET /api/session.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}

	identity, _ := sess.Auth.Identity()
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":    sess.Auth.Status(),
		"user":      identity,
		"federated": sess.Auth.Federated(),
	})
}

// ensureSID reuses the caller's session id cookie or mints a fresh one.
func (h *AuthHandlers) ensureSID(r *http.Request) string {
	if cookie, err := r.Cookie(SIDCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return h.Sessions.NewSID()
}

func (h *AuthHandlers) setSIDCookie(w http.ResponseWriter, sid string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SIDCookieName,
		Value:    sid,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) clearSIDCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SIDCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
