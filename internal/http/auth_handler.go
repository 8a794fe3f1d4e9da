package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Weryck-Lemos/ElectroStock/internal/api"
	"github.com/Weryck-Lemos/ElectroStock/internal/domain"
	"github.com/Weryck-Lemos/ElectroStock/internal/session"
)

const minPasswordLen = 6

// AuthGateway is the slice of the upstream API the auth pages need.
type AuthGateway interface {
	Register(ctx context.Context, name, email, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (api.TokenResponse, error)
	Me(ctx context.Context, token string) (domain.User, error)
	UpdateProfile(ctx context.Context, token, newEmail, newPassword string) (domain.User, error)
}

type AuthHandler struct {
	gateway  AuthGateway
	sessions session.Store
	ttl      time.Duration
}

func NewAuthHandler(gateway AuthGateway, sessions session.Store, ttl time.Duration) *AuthHandler {
	return &AuthHandler{
		gateway:  gateway,
		sessions: sessions,
		ttl:      ttl,
	}
}

type RegisterRequestDTO struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequestDTO struct {
	NewEmail    string `json:"new_email"`
	NewPassword string `json:"new_password"`
}

type SessionResponseDTO struct {
	User domain.User `json:"user"`
}

// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// local validation happens before any network call
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_fields", "name, email and password are required")
		return
	}
	if len(req.Password) < minPasswordLen {
		respondError(w, http.StatusBadRequest, "password_too_short", "password must have at least 6 characters")
		return
	}
	if req.Password != req.ConfirmPassword {
		respondError(w, http.StatusBadRequest, "password_mismatch", "passwords do not match")
		return
	}

	user, err := h.gateway.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, SessionResponseDTO{User: user})
}

// POST /auth/login
//
// Canonical contract: login-json returns the bearer token, the profile comes
// from a follow-up /users/me call.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_fields", "email and password are required")
		return
	}

	token, err := h.gateway.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	user, err := h.gateway.Me(r.Context(), token.AccessToken)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	sess := session.New(token.AccessToken, user)
	if err := h.sessions.Put(r.Context(), sess); err != nil {
		log.Printf("session store put error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	h.setCookie(w, sess.ID, h.ttl)
	respondJSON(w, http.StatusOK, SessionResponseDTO{User: user})
}

// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if err := h.sessions.Delete(r.Context(), sess.ID); err != nil {
		log.Printf("session store delete error: %v", err)
	}

	h.setCookie(w, "", -time.Second)
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// GET /me
//
// Re-resolves the profile upstream. A rejected token is the one failure that
// tears the session down; a connection failure stays transient.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	user, err := h.gateway.Me(r.Context(), sess.Token)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			if delErr := h.sessions.Delete(r.Context(), sess.ID); delErr != nil {
				log.Printf("session store delete error: %v", delErr)
			}
			h.setCookie(w, "", -time.Second)
			respondError(w, http.StatusUnauthorized, "session_expired", apiErr.Detail)
			return
		}
		handleUpstreamError(w, err)
		return
	}

	sess.User = user
	if err := h.sessions.Put(r.Context(), sess); err != nil {
		log.Printf("session store put error: %v", err)
	}

	respondJSON(w, http.StatusOK, SessionResponseDTO{User: user})
}

// PUT /me
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	var req UpdateProfileRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.NewEmail == "" && req.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "missing_fields", "nothing to update")
		return
	}
	if req.NewPassword != "" && len(req.NewPassword) < minPasswordLen {
		respondError(w, http.StatusBadRequest, "password_too_short", "password must have at least 6 characters")
		return
	}

	user, err := h.gateway.UpdateProfile(r.Context(), sess.Token, req.NewEmail, req.NewPassword)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	sess.User = user
	if err := h.sessions.Put(r.Context(), sess); err != nil {
		log.Printf("session store put error: %v", err)
	}

	respondJSON(w, http.StatusOK, SessionResponseDTO{User: user})
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, value string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
