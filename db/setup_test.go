package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vipcrm/vipcrm/db"
	"github.com/vipcrm/vipcrm/internal/models"
	"github.com/vipcrm/vipcrm/internal/testutil"
)

func TestMigrateDatabase_CreatesTables(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	for _, table := range []string{"roles", "users", "organizations", "vip_clients", "interactions"} {
		assert.True(t, conn.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestDeleteClient_CascadesToInteractions(t *testing.T) {
	testutil.SetupTestDB(t)

	user := testutil.CreateUser(t, "manager")
	client := testutil.CreateClient(t, models.VIPClient{FullName: "Petrov Petr", Email: "petrov@example.com"})
	other := testutil.CreateClient(t, models.VIPClient{FullName: "Sidorova Anna"})

	testutil.CreateInteraction(t, client.ID, &user.ID, testutil.Day(2024, 3, 1), "Kick-off meeting")
	testutil.CreateInteraction(t, client.ID, nil, testutil.Day(2024, 3, 2), "Follow-up call")
	testutil.CreateInteraction(t, other.ID, nil, testutil.Day(2024, 3, 3), "Unrelated")

	require.NoError(t, db.DB.Delete(&models.VIPClient{}, client.ID).Error)

	var remaining []models.Interaction
	require.NoError(t, db.DB.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, other.ID, remaining[0].VIPClientID)
}

func TestDeleteOrganization_NullsClientReference(t *testing.T) {
	testutil.SetupTestDB(t)

	org := testutil.CreateOrganization(t, "Research Center")
	client := testutil.CreateClient(t, models.VIPClient{FullName: "Petrov Petr", OrganizationID: &org.ID})

	require.NoError(t, db.DB.Delete(&models.Organization{}, org.ID).Error)

	var reloaded models.VIPClient
	require.NoError(t, db.DB.First(&reloaded, client.ID).Error)
	assert.Nil(t, reloaded.OrganizationID)
}

func TestDeleteUser_NullsInteractionAuthor(t *testing.T) {
	testutil.SetupTestDB(t)

	user := testutil.CreateUser(t, "analyst")
	client := testutil.CreateClient(t, models.VIPClient{FullName: "Petrov Petr"})
	interaction := testutil.CreateInteraction(t, client.ID, &user.ID, testutil.Day(2024, 5, 10), "Call")

	require.NoError(t, db.DB.Delete(&models.User{}, user.ID).Error)

	var reloaded models.Interaction
	require.NoError(t, db.DB.First(&reloaded, interaction.ID).Error)
	assert.Nil(t, reloaded.UserID)
}

func TestDeleteRole_NullsUserRole(t *testing.T) {
	testutil.SetupTestDB(t)

	role := models.Role{Name: "Analyst", Permissions: "Read-only access"}
	require.NoError(t, db.DB.Create(&role).Error)

	user := testutil.CreateUser(t, "viewer")
	require.NoError(t, db.DB.Model(&user).Update("role_id", role.ID).Error)

	require.NoError(t, db.DB.Delete(&models.Role{}, role.ID).Error)

	var reloaded models.User
	require.NoError(t, db.DB.First(&reloaded, user.ID).Error)
	assert.Nil(t, reloaded.RoleID)
}

func TestCreateRole_RejectsEmptyName(t *testing.T) {
	testutil.SetupTestDB(t)

	err := db.DB.Create(&models.Role{Name: "   "}).Error
	assert.ErrorIs(t, err, models.ErrEmptyRoleName)
}

func TestCreateClient_DefaultsToActiveStatus(t *testing.T) {
	testutil.SetupTestDB(t)

	client := models.VIPClient{FullName: "No Status"}
	require.NoError(t, db.DB.Create(&client).Error)

	var reloaded models.VIPClient
	require.NoError(t, db.DB.First(&reloaded, client.ID).Error)
	assert.Equal(t, models.StatusActive, reloaded.Status)
}

func TestCreateUser_UniqueUsername(t *testing.T) {
	testutil.SetupTestDB(t)

	testutil.CreateUser(t, "duplicate")

	err := db.DB.Create(&models.User{Username: "duplicate", Email: "other@example.com", PasswordHash: "x"}).Error
	assert.Error(t, err)
}

func TestCreateUser_UniqueEmail(t *testing.T) {
	testutil.SetupTestDB(t)

	existing := testutil.CreateUser(t, "manager")

	err := db.DB.Create(&models.User{Username: "other", Email: existing.Email, PasswordHash: "x"}).Error
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.DB.Model(&models.User{}).Where("email = ?", existing.Email).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPing(t *testing.T) {
	testutil.SetupTestDB(t)

	assert.NoError(t, db.Ping(context.Background(), time.Second))
}
