package handlers

import (
	"net/http"
	"strings"

	"otconsole/middleware"
	"otconsole/models"
	"otconsole/response"
)

func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := h.db.WithContext(r.Context()).Order("name asc").Find(&users).Error; err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, users)
}

type userRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// CreateUser adds an account with a temporary password that must be changed
// at first login.
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r.Context())

	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if req.Name == "" || req.Email == "" || len(req.Password) < minPasswordLength {
		response.BadRequest(w, "Fill required fields.", map[string]string{
			"password": "Password must be at least 5 characters",
		})
		return
	}
	if !actor.CanGrantRole(req.Role) {
		response.Forbidden(w, "You cannot assign this role")
		return
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		response.InternalServerError(w, "Failed to hash password")
		return
	}
	user := models.User{
		Name:               req.Name,
		Email:              req.Email,
		PasswordHash:       hashed,
		Role:               req.Role,
		MustChangePassword: true,
	}
	if err := h.db.WithContext(r.Context()).Create(&user).Error; err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "User created", user)
}

func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	var target models.User
	if err := h.db.WithContext(r.Context()).First(&target, id).Error; err != nil {
		response.HandleError(w, err)
		return
	}
	if !actor.CanManageUser(&target) {
		response.Forbidden(w, "You cannot edit this user")
		return
	}

	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		target.Name = name
	}
	if email := normalizeEmail(req.Email); email != "" {
		target.Email = email
	}
	if req.Role != "" && req.Role != target.Role {
		if !actor.CanGrantRole(req.Role) {
			response.Forbidden(w, "You cannot assign this role")
			return
		}
		target.Role = req.Role
	}
	if req.Password != "" {
		if len(req.Password) < minPasswordLength {
			response.BadRequest(w, "Password must be at least 5 characters", nil)
			return
		}
		hashed, err := hashPassword(req.Password)
		if err != nil {
			response.InternalServerError(w, "Failed to hash password")
			return
		}
		target.PasswordHash = hashed
		target.MustChangePassword = target.ID != actor.ID
	}

	if err := h.db.WithContext(r.Context()).Save(&target).Error; err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "User updated", target)
}

func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}
	if id == actor.ID {
		response.BadRequest(w, "You cannot delete your own account", nil)
		return
	}

	var target models.User
	if err := h.db.WithContext(r.Context()).First(&target, id).Error; err != nil {
		response.HandleError(w, err)
		return
	}
	if !actor.CanManageUser(&target) {
		response.Forbidden(w, "You cannot delete this user")
		return
	}

	if err := h.db.WithContext(r.Context()).Unscoped().Delete(&target).Error; err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "User deleted", nil)
}
