package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/meetscribe/scribe-engine/internal/auth"
)

// AuthHandler serves registration, login, logout and the current-user lookup.
type AuthHandler struct {
	users    *auth.IdentityStore
	sessions *auth.SessionStore
	ttl      time.Duration
	log      zerolog.Logger
}

func NewAuthHandler(users *auth.IdentityStore, sessions *auth.SessionStore, ttl time.Duration, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// Routes registers the unauthenticated auth endpoints.
func (h *AuthHandler) Routes(r chi.Router) {
	r.Post("/api/register", h.Register)
	r.Post("/api/login", h.Login)
	r.Post("/api/logout", h.Logout)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := h.users.Register(req.Username, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrUsernameExists),
		errors.Is(err, auth.ErrEmailExists),
		errors.Is(err, auth.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	default:
		h.log.Error().Err(err).Msg("registration failed")
		WriteError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Registration successful",
	})
}

// Login handles POST /api/login. On success it sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.users.Authenticate(req.Username, req.Password)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	token := h.sessions.Create(id.Username)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Login successful",
		"user": map[string]string{
			"username": id.Username,
			"email":    id.Email,
		},
	})
}

// Logout handles POST /api/logout. Always 200, even without a session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		h.sessions.Revoke(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Logout successful",
	})
}

// Me handles GET /api/me. Requires SessionAuth.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r)
	if id == nil {
		WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"user": map[string]string{
			"username": id.Username,
			"email":    id.Email,
		},
	})
}
