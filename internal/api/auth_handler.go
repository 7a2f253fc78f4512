package api

import (
	"net/http"

	"github.com/jwhitfield/baseline-api/internal/api/shared"
	"github.com/jwhitfield/baseline-api/internal/service"
	"github.com/jwhitfield/baseline-api/internal/validation"
)

// AuthHandler handles authentication-related API requests. It is thin by
// design: the gate validates, the service decides, the shared boundary
// renders failures.
type AuthHandler struct {
	users      *service.UserService
	gate       *validation.Gate
	production bool
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(users *service.UserService, gate *validation.Gate, production bool) *AuthHandler {
	return &AuthHandler{
		users:      users,
		gate:       gate,
		production: production,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}
	if err := h.gate.Check(&req); err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}

	user, pair, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}

	shared.RespondSuccess(w, r, http.StatusCreated, AuthResponse{
		UserID:       user.ID,
		Email:        user.Email,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}
	if err := h.gate.Check(&req); err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}

	user, pair, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, AuthResponse{
		UserID:       user.ID,
		Email:        user.Email,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// RefreshToken handles POST /api/auth/refresh.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}
	if err := h.gate.Check(&req); err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}

	pair, err := h.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
