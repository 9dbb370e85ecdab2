package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vipcrm/vipcrm/db"
	"github.com/vipcrm/vipcrm/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const TestPassword = "correct-horse-battery"

// SetupTestDB opens a fresh SQLite database with foreign keys enforced,
// migrates every model and installs it as db.DB for the duration of the test.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "vipcrm.db") + "?_foreign_keys=on"

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to create test database")

	previous := db.DB
	db.DB = conn

	require.NoError(t, db.MigrateDatabase(), "Failed to migrate test database")

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
		db.DB = previous
	})

	return conn
}

func CreateUser(t *testing.T, username string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "Test " + username,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	require.NoError(t, db.DB.Create(&user).Error)

	return user
}

func CreateOrganization(t *testing.T, name string) models.Organization {
	t.Helper()

	org := models.Organization{Name: name, Type: "Partner"}
	require.NoError(t, db.DB.Create(&org).Error)

	return org
}

func CreateClient(t *testing.T, client models.VIPClient) models.VIPClient {
	t.Helper()

	if client.Status == "" {
		client.Status = models.StatusActive
	}
	require.NoError(t, db.DB.Create(&client).Error)

	return client
}

func CreateInteraction(t *testing.T, clientID uint, userID *uint, day time.Time, description string) models.Interaction {
	t.Helper()

	interaction := models.Interaction{
		VIPClientID: clientID,
		UserID:      userID,
		Date:        datatypes.Date(day),
		Type:        models.TypeCall,
		Description: description,
	}
	require.NoError(t, db.DB.Create(&interaction).Error)

	return interaction
}

func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
