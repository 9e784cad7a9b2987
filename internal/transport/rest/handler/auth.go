package handler

import (
	"net/http"

	"surveyhub/internal/model"
	"surveyhub/internal/service"
	"surveyhub/internal/transport/rest/envelope"
	"surveyhub/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// AuthHandler handles signup, login and user management endpoints
type AuthHandler struct {
	accountSvc *service.AccountService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accountSvc *service.AccountService) *AuthHandler {
	return &AuthHandler{accountSvc: accountSvc}
}

// SignupUser godoc
// @Summary  Register a user
// @Tags     accounts
// @Accept   json
// @Produce  json
// @Param    request body model.SignupRequest true "Signup data"
// @Success  201 {object} envelope.Response
// @Failure  400,409 {object} envelope.Response
// @Router   /users [post]
func (h *AuthHandler) SignupUser(w http.ResponseWriter, r *http.Request) {
	h.signup(w, r, model.RoleUser)
}

// SignupAdmin handles POST /v1/admins
func (h *AuthHandler) SignupAdmin(w http.ResponseWriter, r *http.Request) {
	h.signup(w, r, model.RoleAdmin)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request, role model.Role) {
	var req model.SignupRequest
	if err := decode(w, r, &req); err != nil {
		envelope.Error(w, r, err)
		return
	}

	profile, err := h.accountSvc.Signup(r.Context(), role, req)
	if err != nil {
		envelope.Error(w, r, err)
		return
	}
	envelope.JSON(w, r, http.StatusCreated, profile)
}

// Login godoc
// @Summary  Log in as a user or admin
// @Tags     sessions
// @Accept   json
// @Produce  json
// @Param    request body model.LoginRequest true "Credentials; kind is user (default) or admin"
// @Success  200 {object} envelope.Response
// @Failure  400,401,404 {object} envelope.Response
// @Router   /sessions [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decode(w, r, &req); err != nil {
		envelope.Error(w, r, err)
		return
	}

	resp, err := h.accountSvc.Login(r.Context(), req)
	if err != nil {
		envelope.Error(w, r, err)
		return
	}
	envelope.JSON(w, r, http.StatusOK, resp)
}

// Logout handles DELETE /v1/sessions
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.accountSvc.Logout(r.Context(), middleware.GetPrincipal(r.Context())); err != nil {
		envelope.Error(w, r, err)
		return
	}
	envelope.JSON(w, r, http.StatusOK, nil)
}

// ListUsers handles GET /v1/users
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.accountSvc.ListUsers(r.Context(), middleware.GetPrincipal(r.Context()))
	if err != nil {
		envelope.Error(w, r, err)
		return
	}
	envelope.JSON(w, r, http.StatusOK, users)
}

// GetUser handles GET /v1/users/{id}
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	profile, err := h.accountSvc.GetUser(r.Context(), middleware.GetPrincipal(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		envelope.Error(w, r, err)
		return
	}
	envelope.JSON(w, r, http.StatusOK, profile)
}

// UpdateUser handles PUT /v1/users/{id}
func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var upd model.AccountUpdate
	if err := decode(w, r, &upd); err != nil {
		envelope.Error(w, r, err)
		return
	}

	profile, err := h.accountSvc.UpdateUser(r.Context(), middleware.GetPrincipal(r.Context()), mux.Vars(r)["id"], upd)
	if err != nil {
		envelope.Error(w, r, err)
		return
	}
	envelope.JSON(w, r, http.StatusOK, profile)
}

// DeleteUser handles DELETE /v1/users/{id}. The user's surveys are kept.
func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.accountSvc.DeleteUser(r.Context(), middleware.GetPrincipal(r.Context()), mux.Vars(r)["id"]); err != nil {
		envelope.Error(w, r, err)
		return
	}
	envelope.JSON(w, r, http.StatusOK, nil)
}
