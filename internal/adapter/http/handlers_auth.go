package http

import (
	"net/http"
	"time"

	"github.com/shelfspace/shelfspace/internal/domain/user"
	"github.com/shelfspace/shelfspace/internal/middleware"
	"github.com/shelfspace/shelfspace/internal/service"
)

// setSessionCookie issues the signed session token as an http-only cookie.
// Secure is dropped only in development so local HTTP frontends can log in.
func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Config.Auth.SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   !h.Config.Server.IsDevelopment(),
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookie expires the session cookie immediately.
func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !h.Config.Server.IsDevelopment(),
		SameSite: http.SameSiteStrictMode,
	})
}

// issueSession signs a token for u and sets the cookie, returning false on
// signing failure (already written to w).
func (h *Handlers) issueSession(w http.ResponseWriter, u *user.User) bool {
	token, err := h.Auth.IssueSession(u)
	if err != nil {
		writeDomainError(w, err, "user not found")
		return false
	}
	h.setSessionCookie(w, token)
	return true
}

// HandleCheckEmail reports whether an email is already registered.
func (h *Handlers) HandleCheckEmail(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[struct {
		Email string `json:"email"`
	}](w, r)
	if !ok {
		return
	}

	exists, err := h.Auth.CheckEmail(r.Context(), req.Email)
	if err != nil {
		writeDomainError(w, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

// HandleRegister creates an account with its tenant and starts a session.
func (h *Handlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.RegisterRequest](w, r)
	if !ok {
		return
	}

	sess, err := h.Auth.Register(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "user not found")
		return
	}

	if !h.issueSession(w, sess.User) {
		return
	}
	if h.Metrics != nil {
		h.Metrics.Registrations.Add(r.Context(), 1)
	}
	writeJSON(w, http.StatusCreated, sess)
}

// HandleLogin authenticates credentials and starts a session.
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.LoginRequest](w, r)
	if !ok {
		return
	}

	sess, err := h.Auth.Login(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "user not found")
		return
	}

	if !h.issueSession(w, sess.User) {
		return
	}
	if h.Metrics != nil {
		h.Metrics.Logins.Add(r.Context(), 1)
	}
	writeJSON(w, http.StatusOK, sess)
}

// HandleLogout clears the session cookie. It requires no authentication, so
// a browser holding an expired token can still log out cleanly.
func (h *Handlers) HandleLogout(w http.ResponseWriter, _ *http.Request) {
	h.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "User logged out"})
}

// HandleGetMe returns the authenticated user and their tenant.
func (h *Handlers) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, service.Session{
		User:   middleware.UserFromContext(r.Context()),
		Tenant: middleware.TenantFromContext(r.Context()),
	})
}

// HandleUpdateProfile updates the caller's own profile. The target account
// always comes from the session, never from the body.
func (h *Handlers) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.UpdateProfileRequest](w, r)
	if !ok {
		return
	}

	u := middleware.UserFromContext(r.Context())
	sess, err := h.Auth.UpdateProfile(r.Context(), u.ID, &req)
	if err != nil {
		writeDomainError(w, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}
