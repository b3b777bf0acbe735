package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otconsole/models"
)

func TestEmployees_CRUD(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(models.RoleSupervisorHR, http.MethodPost, "/api/employee", map[string]string{"employee_no": " E300 ", "employee_name": "Citra"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created models.Employee
	decode(t, rec, &created)
	assert.Equal(t, "E300", created.EmployeeNo)

	rec = env.do(models.RoleSupervisorHR, http.MethodPost, "/api/employee", map[string]string{"employee_no": "E300", "employee_name": "Again"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(models.RoleSupervisorHR, http.MethodPost, "/api/employee", map[string]string{"employee_no": "E301"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(models.RoleManagerProduction, http.MethodPost, "/api/employee", map[string]string{"employee_no": "E302", "employee_name": "Dedi"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(models.RoleManagerProduction, http.MethodGet, "/api/employee", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var employees []models.Employee
	decode(t, rec, &employees)
	require.Len(t, employees, 3)
	assert.Equal(t, "E100", employees[0].EmployeeNo)

	rec = env.do(models.RoleManagerProduction, http.MethodGet, "/api/employee?employee_no=E300", nil)
	employees = nil
	decode(t, rec, &employees)
	require.Len(t, employees, 1)

	rec = env.do(models.RoleSupervisorHR, http.MethodPut, "/api/employee/"+itoa(created.ID), map[string]string{"employee_no": "E300", "employee_name": "Citra Dewi"})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Employee
	decode(t, rec, &updated)
	assert.Equal(t, "Citra Dewi", updated.EmployeeName)

	rec = env.do(models.RoleSupervisorHR, http.MethodDelete, "/api/employee/"+itoa(created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(models.RoleSupervisorHR, http.MethodDelete, "/api/employee/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTripleOT_Registry(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(models.RoleSupervisorHR, http.MethodPost, "/api/triple-ot", map[string]string{"date": "2025-12-25T00:00:00.000Z", "description": "Christmas"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(models.RoleSupervisorHR, http.MethodPost, "/api/triple-ot", map[string]string{"date": "2025-12-25"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(models.RoleSupervisorHR, http.MethodPost, "/api/triple-ot", map[string]string{"date": "25/12/2025"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(models.RoleManagerProduction, http.MethodPost, "/api/triple-ot", map[string]string{"date": "2025-12-26"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(models.RoleManagerProduction, http.MethodGet, "/api/triple-ot", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dates []models.TripleOTDate
	decode(t, rec, &dates)
	require.Len(t, dates, 1)
	assert.Equal(t, "2025-12-25", dates[0].Date)
	assert.Equal(t, "Christmas", dates[0].Description)

	rec = env.do(models.RoleSupervisorHR, http.MethodDelete, "/api/triple-ot/2025-12-25", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(models.RoleSupervisorHR, http.MethodDelete, "/api/triple-ot/2025-12-25", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/health", "/api/connection/ping", "/api/connection/status"} {
		rec := env.doToken("", http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	var status map[string]string
	decode(t, env.doToken("", http.MethodGet, "/api/connection/status", nil), &status)
	assert.Equal(t, "connected", status["db"])

	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	rec := env.doToken("", http.MethodGet, "/api/connection/status", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
