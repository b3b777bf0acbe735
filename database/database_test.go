package database

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/logger"

	"otconsole/models"
)

func TestOpen_SeedsAdminOnce(t *testing.T) {
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"

	db, err := Open("sqlite", dsn, slog.LevelError)
	require.NoError(t, err)
	require.NoError(t, seedDefaultAdmin(db))

	var admins []models.User
	require.NoError(t, db.Where("role = ?", models.RoleAdmin).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, DefaultAdminEmail, admins[0].Email)
	assert.True(t, admins[0].MustChangePassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admins[0].PasswordHash), []byte(DefaultAdminPassword)))

	assert.NoError(t, Ping(db))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("oracle", "", slog.LevelError)
	assert.Error(t, err)
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, gormLogLevel(slog.LevelDebug))
	assert.Equal(t, logger.Warn, gormLogLevel(slog.LevelInfo))
	assert.Equal(t, logger.Error, gormLogLevel(slog.LevelError))
}
