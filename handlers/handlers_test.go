package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"otconsole/config"
	"otconsole/database"
	"otconsole/middleware"
	"otconsole/models"
	"otconsole/notify"
	"otconsole/response"
)

const testPassword = "secret1"

var plant = time.FixedZone("UTC+7", 7*60*60)

type testEnv struct {
	t      *testing.T
	db     *gorm.DB
	cfg    *config.Config
	hub    *notify.Hub
	router http.Handler
	tokens map[models.Role]string
	users  map[models.Role]*models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open("sqlite", "file:"+name+"?mode=memory&cache=shared", slog.LevelError)
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTExpiration:    time.Hour,
		InviteExpiration: time.Hour,
		Location:         plant,
		AllowedOrigins:   []string{"*"},
		LogLevel:         slog.LevelError,
		Env:              "test",
	}

	hub := notify.NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)

	env := &testEnv{
		t:      t,
		db:     db,
		cfg:    cfg,
		hub:    hub,
		router: NewRouter(Services{DB: db, Config: cfg, Hub: hub}),
		tokens: map[models.Role]string{},
		users:  map[models.Role]*models.User{},
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	auth := middleware.NewAuth(db, cfg.JWTSecret, cfg.JWTExpiration)
	for _, role := range models.Roles {
		user := &models.User{
			Name:         string(role),
			Email:        strings.NewReplacer("(", ".", ")", "").Replace(string(role)) + "@plant.local",
			PasswordHash: string(hashed),
			Role:         role,
		}
		require.NoError(t, db.Create(user).Error)
		token, err := auth.GenerateToken(user)
		require.NoError(t, err)
		env.users[role] = user
		env.tokens[role] = token
	}

	require.NoError(t, db.Create(&[]models.Employee{
		{EmployeeNo: "E100", EmployeeName: "Ani"},
		{EmployeeNo: "E200", EmployeeName: "Budi"},
	}).Error)
	return env
}

func (e *testEnv) do(role models.Role, method, path string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	return e.doToken(e.tokens[role], method, path, body)
}

func (e *testEnv) doToken(token, method, path string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Error   *response.ErrorDetail `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), string(env.Data))
	}
	return env
}

func (e *testEnv) createEntry(body map[string]interface{}) models.OvertimeEntry {
	e.t.Helper()
	rec := e.do(models.RoleSupervisorHR, http.MethodPost, "/api/overtime", body)
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	var entry models.OvertimeEntry
	decode(e.t, rec, &entry)
	return entry
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
