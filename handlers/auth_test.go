package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otconsole/database"
	"otconsole/middleware"
	"otconsole/models"
)

func (e *testEnv) login(email, password string) (*sessionResponse, int) {
	e.t.Helper()
	rec := e.doToken("", http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password})
	if rec.Code != http.StatusOK {
		return nil, rec.Code
	}
	var s sessionResponse
	decode(e.t, rec, &s)
	return &s, rec.Code
}

func TestAuth_Login(t *testing.T) {
	env := newTestEnv(t)

	s, code := env.login("Supervisor.HR@plant.local", testPassword)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, s.Token)
	assert.Equal(t, models.RoleSupervisorHR, s.User.Role)
	assert.Contains(t, s.Capabilities, models.CapEnterOvertime)
	assert.NotContains(t, s.Capabilities, models.CapManageUsers)

	_, code = env.login("supervisor.hr@plant.local", "wrong")
	assert.Equal(t, http.StatusUnauthorized, code)

	_, code = env.login("nobody@plant.local", testPassword)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuth_DefaultAdminMustChangePassword(t *testing.T) {
	env := newTestEnv(t)

	s, code := env.login(database.DefaultAdminEmail, database.DefaultAdminPassword)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, s.MustChangePassword)

	rec := env.doToken(s.Token, http.MethodGet, "/api/overtime", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "PASSWORD_CHANGE_REQUIRED", decode(t, rec, nil).Error.Code)

	rec = env.doToken(s.Token, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.doToken(s.Token, http.MethodPost, "/api/auth/change-password", map[string]string{
		"current_password": database.DefaultAdminPassword,
		"new_password":     "n3w-pass",
		"confirm_password": "mismatch",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doToken(s.Token, http.MethodPost, "/api/auth/change-password", map[string]string{
		"current_password": database.DefaultAdminPassword,
		"new_password":     "n3w-pass",
		"confirm_password": "n3w-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.doToken(s.Token, http.MethodGet, "/api/overtime", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, code = env.login(database.DefaultAdminEmail, "n3w-pass")
	assert.Equal(t, http.StatusOK, code)
}

func TestAuth_InviteRegistration(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(models.RoleManagerHR, http.MethodPost, "/api/auth/invites", map[string]string{"role": string(models.RoleAdmin)})
	assert.Equal(t, http.StatusForbidden, rec.Code, "only administrators invite administrators")

	rec = env.do(models.RoleManagerHR, http.MethodPost, "/api/auth/invites", map[string]string{
		"role":  string(models.RoleSupervisorProduction),
		"email": "line.lead@plant.local",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var invite models.Invite
	decode(t, rec, &invite)

	register := func(email string) int {
		return env.doToken("", http.MethodPost, "/api/auth/register", map[string]string{
			"code": invite.Code, "name": "Line Lead", "email": email, "password": "lead-pass",
		}).Code
	}
	assert.Equal(t, http.StatusBadRequest, register("someone.else@plant.local"))
	assert.Equal(t, http.StatusCreated, register("line.lead@plant.local"))
	assert.Equal(t, http.StatusBadRequest, register("line.lead@plant.local"), "invite is single use")

	s, code := env.login("line.lead@plant.local", "lead-pass")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.RoleSupervisorProduction, s.User.Role)
	assert.False(t, s.MustChangePassword)

	rec = env.do(models.RoleManagerHR, http.MethodGet, "/api/auth/invites", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var invites []models.Invite
	decode(t, rec, &invites)
	require.Len(t, invites, 1)
	assert.True(t, invites[0].Used)
}

func TestUsers_Management(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(models.RoleSupervisorHR, http.MethodGet, "/api/auth/users", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(models.RoleManagerHR, http.MethodPost, "/api/auth/users", map[string]string{
		"name": "Root", "email": "root@plant.local", "password": "root-pass", "role": string(models.RoleAdmin),
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(models.RoleManagerHR, http.MethodPost, "/api/auth/users", map[string]string{
		"name": "Shift Lead", "email": "lead@plant.local", "password": "lead-pass", "role": string(models.RoleManagerProduction),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created models.User
	decode(t, rec, &created)
	assert.True(t, created.MustChangePassword)

	rec = env.do(models.RoleManagerHR, http.MethodPost, "/api/auth/users", map[string]string{
		"name": "Dup", "email": "lead@plant.local", "password": "lead-pass", "role": string(models.RoleManagerProduction),
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(models.RoleManagerHR, http.MethodPut, "/api/auth/users/"+itoa(created.ID), map[string]string{"role": string(models.RoleSupervisorProduction)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated models.User
	decode(t, rec, &updated)
	assert.Equal(t, models.RoleSupervisorProduction, updated.Role)
	assert.Equal(t, "Shift Lead", updated.Name)

	adminID := itoa(env.users[models.RoleAdmin].ID)
	rec = env.do(models.RoleManagerHR, http.MethodPut, "/api/auth/users/"+adminID, map[string]string{"name": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = env.do(models.RoleManagerHR, http.MethodDelete, "/api/auth/users/"+adminID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(models.RoleAdmin, http.MethodDelete, "/api/auth/users/"+adminID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "cannot delete yourself")

	rec = env.do(models.RoleManagerHR, http.MethodDelete, "/api/auth/users/"+itoa(created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(models.RoleManagerHR, http.MethodDelete, "/api/auth/users/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuth_TokenOfDeletedUserIsRejected(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Unscoped().Delete(env.users[models.RoleManagerProduction]).Error)

	rec := env.do(models.RoleManagerProduction, http.MethodGet, "/api/overtime", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doToken("", http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.TokenCookie, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}
