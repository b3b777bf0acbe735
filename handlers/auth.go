package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"otconsole/config"
	"otconsole/middleware"
	"otconsole/models"
	"otconsole/response"
)

const minPasswordLength = 5

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	auth   *middleware.Auth
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, auth *middleware.Auth) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, auth: auth}
}

type sessionResponse struct {
	Token              string              `json:"token,omitempty"`
	User               *models.User        `json:"user"`
	Capabilities       []models.Capability `json:"capabilities"`
	MustChangePassword bool                `json:"must_change_password"`
}

func newSession(user *models.User, token string) sessionResponse {
	return sessionResponse{
		Token:              token,
		User:               user,
		Capabilities:       models.CapabilitiesOf(user.Role),
		MustChangePassword: user.MustChangePassword,
	}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, user *models.User) (string, error) {
	token, err := h.auth.GenerateToken(user)
	if err != nil {
		return "", err
	}
	middleware.SetTokenCookie(w, token, h.auth.Expiration())
	return token, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	var user models.User
	if err := h.db.WithContext(r.Context()).Where("email = ?", normalizeEmail(req.Email)).First(&user).Error; err != nil {
		response.Unauthorized(w, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		response.Unauthorized(w, "Invalid credentials")
		return
	}

	token, err := h.issueToken(w, &user)
	if err != nil {
		slog.Error("Failed to generate token", "error", err)
		response.InternalServerError(w, "Failed to generate token")
		return
	}

	slog.Info("User logged in", "user_id", user.ID, "role", user.Role)
	response.Success(w, newSession(&user, token))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearTokenCookie(w)
	response.SuccessWithMessage(w, "Logged out", nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	response.Success(w, newSession(user, ""))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		response.BadRequest(w, "Current password is incorrect", nil)
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		response.BadRequest(w, "Passwords do not match", nil)
		return
	}
	if len(req.NewPassword) < minPasswordLength {
		response.BadRequest(w, "Password must be at least 5 characters", nil)
		return
	}

	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		response.InternalServerError(w, "Failed to hash password")
		return
	}

	user.PasswordHash = hashed
	user.MustChangePassword = false
	if err := h.db.WithContext(r.Context()).Model(user).Updates(map[string]interface{}{
		"password_hash":        user.PasswordHash,
		"must_change_password": false,
	}).Error; err != nil {
		response.HandleError(w, err)
		return
	}

	token, err := h.issueToken(w, user)
	if err != nil {
		response.InternalServerError(w, "Failed to generate token")
		return
	}
	response.SuccessWithMessage(w, "Password changed", newSession(user, token))
}

type registerRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register redeems an invite code for a new account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	details := map[string]string{}
	if req.Code == "" {
		details["code"] = "Invite code is required"
	}
	if req.Name == "" {
		details["name"] = "Name is required"
	}
	if req.Email == "" {
		details["email"] = "Email is required"
	}
	if len(req.Password) < minPasswordLength {
		details["password"] = "Password must be at least 5 characters"
	}
	if len(details) > 0 {
		response.BadRequest(w, "Fill required fields.", details)
		return
	}

	var user models.User
	err := h.db.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		var invite models.Invite
		if err := tx.Where("code = ?", req.Code).First(&invite).Error; err != nil {
			return errInvalidInvite
		}
		if !invite.IsValid(time.Now()) || !invite.Admits(req.Email) {
			return errInvalidInvite
		}

		hashed, err := hashPassword(req.Password)
		if err != nil {
			return err
		}
		user = models.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hashed,
			Role:         invite.Role,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Model(&invite).Update("used", true).Error
	})
	switch {
	case errors.Is(err, errInvalidInvite):
		response.BadRequest(w, "Invite code is invalid, expired or already used", nil)
		return
	case err != nil:
		response.HandleError(w, err)
		return
	}

	token, err := h.issueToken(w, &user)
	if err != nil {
		response.InternalServerError(w, "Failed to generate token")
		return
	}
	slog.Info("User registered", "user_id", user.ID, "role", user.Role)
	response.Created(w, "Account created", newSession(&user, token))
}

var errInvalidInvite = errors.New("invalid invite")

func (h *AuthHandler) ListInvites(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	q := h.db.WithContext(r.Context()).Order("created_at desc")
	if !user.IsAdmin() {
		q = q.Where("created_by = ?", user.ID)
	}
	var invites []models.Invite
	if err := q.Find(&invites).Error; err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, invites)
}

type inviteRequest struct {
	Role  models.Role `json:"role"`
	Email string      `json:"email"`
}

func (h *AuthHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req inviteRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}
	if !user.CanGrantRole(req.Role) {
		response.Forbidden(w, "You cannot invite users with this role")
		return
	}

	code, err := models.GenerateInviteCode()
	if err != nil {
		response.InternalServerError(w, "Failed to generate invite code")
		return
	}

	invite := models.Invite{
		Code:      code,
		Email:     normalizeEmail(req.Email),
		Role:      req.Role,
		CreatedBy: user.ID,
		ExpiresAt: time.Now().Add(h.config.InviteExpiration),
	}
	if err := h.db.WithContext(r.Context()).Create(&invite).Error; err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Invite created", invite)
}
