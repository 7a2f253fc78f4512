package api

import (
	"net/http"

	"github.com/jwhitfield/baseline-api/internal/api/shared"
	"github.com/jwhitfield/baseline-api/internal/service"
	"github.com/jwhitfield/baseline-api/internal/validation"
)

// UserHandler handles user CRUD API requests.
type UserHandler struct {
	users      *service.UserService
	gate       *validation.Gate
	production bool
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(users *service.UserService, gate *validation.Gate, production bool) *UserHandler {
	return &UserHandler{
		users:      users,
		gate:       gate,
		production: production,
	}
}

// GetUser handles GET /api/users/{id}. Ownership is enforced by middleware
// before this runs.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, newUserResponse(user))
}

// ListUsers handles GET /api/users with page/limit query parameters.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	pagination, err := validation.ParsePagination(r.URL.Query())
	if err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}

	page, err := h.users.ListUsers(r.Context(), pagination.Page, pagination.Limit)
	if err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}

	users := make([]UserResponse, 0, len(page.Users))
	for _, user := range page.Users {
		users = append(users, newUserResponse(user))
	}

	shared.RespondSuccess(w, r, http.StatusOK, UserListResponse{
		Users: users,
		Total: page.Total,
		Page:  page.Page,
		Limit: page.Limit,
	})
}

// UpdateUser handles PUT /api/users/{id}.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}

	var req UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}
	if err := h.gate.Check(&req); err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}

	user, err := h.users.UpdateUser(r.Context(), id, req.Email, req.Password)
	if err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, newUserResponse(user))
}

// DeleteUser handles DELETE /api/users/{id}.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, map[string]string{"message": "User deleted"})
}

// Profile handles GET /api/profile, a public endpoint that personalizes its
// response when optional authentication attached an identity.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		shared.RespondSuccess(w, r, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	user, err := h.users.GetUser(r.Context(), identity.UserID)
	if err != nil {
		shared.WriteError(w, r, err, h.production)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          newUserResponse(user),
	})
}
