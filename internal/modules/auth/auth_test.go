package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/apperr"
	"github.com/folio-space/core/internal/pkg/jwt"
)

func newTestService(t *testing.T, words ...string) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	cfg := &config.AppConfig{MagicWords: words}
	return NewService(db, cfg, zap.NewNop()), db
}

func seedAdmin(t *testing.T, db *gorm.DB, username, password string) *models.AdminModel {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	admin := models.AdminModel{Username: username, Password: string(hash)}
	require.NoError(t, db.Create(&admin).Error)
	return &admin
}

func TestLoginWithPassword(t *testing.T) {
	svc, db := newTestService(t)
	admin := seedAdmin(t, db, "ada", "correct horse")

	token, got, err := svc.LoginWithPassword("ada", "correct horse", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	claims, err := jwt.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.AdminID)
	assert.Equal(t, "ada", claims.Username)

	var logs []models.LoginLogModel
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.True(t, logs[0].Success)
	assert.Equal(t, "password", logs[0].Method)
}

func TestLoginWithWrongPassword(t *testing.T) {
	svc, db := newTestService(t)
	seedAdmin(t, db, "ada", "correct horse")

	_, _, err := svc.LoginWithPassword("ada", "wrong", "127.0.0.1")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// unknown usernames produce the same error as wrong passwords
	_, _, err2 := svc.LoginWithPassword("nobody", "wrong", "127.0.0.1")
	require.Error(t, err2)
	assert.Equal(t, err.Error(), err2.Error())

	var logs []models.LoginLogModel
	require.NoError(t, db.Find(&logs).Error)
	assert.Len(t, logs, 2)
	for _, l := range logs {
		assert.False(t, l.Success)
	}
}

func TestLoginWithMagicWord(t *testing.T) {
	svc, db := newTestService(t, "please")
	admin := seedAdmin(t, db, "ada", "pw")

	token, got, err := svc.LoginWithMagicWord("  PLEASE ", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	claims, err := jwt.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.AdminID)

	_, _, err = svc.LoginWithMagicWord("abracadabra", "127.0.0.1")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestMagicWordWithoutAdmin(t *testing.T) {
	svc, _ := newTestService(t, "please")

	_, _, err := svc.LoginWithMagicWord("please", "127.0.0.1")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindPrecondition))
}
