package handlers

import (
	"strconv"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vipcrm/vipcrm/db"
	"github.com/vipcrm/vipcrm/internal/models"
	"github.com/vipcrm/vipcrm/internal/testutil"
)

func clientNames(t *testing.T, search, status string) []string {
	t.Helper()

	var clients []models.VIPClient
	require.NoError(t, filterClients(db.DB.Model(&models.VIPClient{}), search, status).Order("full_name").Find(&clients).Error)

	names := make([]string, 0, len(clients))
	for _, client := range clients {
		names = append(names, client.FullName)
	}
	return names
}

func TestFilterClients(t *testing.T) {
	testutil.SetupTestDB(t)

	testutil.CreateClient(t, models.VIPClient{FullName: "Ivan Petrov", Email: "i.petrov@corp.com", Status: models.StatusActive})
	testutil.CreateClient(t, models.VIPClient{FullName: "Anna Smirnova", Email: "PETROV.assistant@corp.com", Status: models.StatusPotential})
	testutil.CreateClient(t, models.VIPClient{FullName: "Oleg Sidorov", Phone: "+7 900 100", Position: "Deputy minister", Status: models.StatusActive})
	testutil.CreateClient(t, models.VIPClient{FullName: "Maria 100% Kuznetsova", Status: models.StatusArchived})

	t.Run("no filters", func(t *testing.T) {
		assert.Len(t, clientNames(t, "", ""), 4)
	})

	t.Run("search is case insensitive across email", func(t *testing.T) {
		assert.Equal(t, []string{"Anna Smirnova", "Ivan Petrov"}, clientNames(t, "petrov", ""))
	})

	t.Run("search matches phone and position", func(t *testing.T) {
		assert.Equal(t, []string{"Maria 100% Kuznetsova", "Oleg Sidorov"}, clientNames(t, "100", ""))
		assert.Equal(t, []string{"Oleg Sidorov"}, clientNames(t, "MINISTER", ""))
	})

	t.Run("status only", func(t *testing.T) {
		assert.Equal(t, []string{"Ivan Petrov", "Oleg Sidorov"}, clientNames(t, "", "active"))
	})

	t.Run("search and status intersect", func(t *testing.T) {
		assert.Equal(t, []string{"Ivan Petrov"}, clientNames(t, "petrov", "active"))
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		assert.Equal(t, []string{"Maria 100% Kuznetsova"}, clientNames(t, "0%", ""))
		assert.Empty(t, clientNames(t, "%", "active"))
		assert.Empty(t, clientNames(t, "_", ""))
	})
}

func TestClientForm_Apply(t *testing.T) {
	testutil.SetupTestDB(t)
	org := testutil.CreateOrganization(t, "Ministry of Culture")

	t.Run("empty organization and status", func(t *testing.T) {
		form := ClientForm{FullName: "  Ivan Petrov ", Organization: "", Status: ""}
		var client models.VIPClient

		require.NoError(t, form.apply(&client))
		assert.Equal(t, "Ivan Petrov", client.FullName)
		assert.Nil(t, client.OrganizationID)
		assert.Equal(t, models.StatusActive, client.Status)
	})

	t.Run("existing organization", func(t *testing.T) {
		form := ClientForm{FullName: "Ivan Petrov", Organization: strconv.FormatUint(uint64(org.ID), 10), Status: "potential"}
		var client models.VIPClient

		require.NoError(t, form.apply(&client))
		require.NotNil(t, client.OrganizationID)
		assert.Equal(t, org.ID, *client.OrganizationID)
		assert.Equal(t, models.StatusPotential, client.Status)
	})

	for name, form := range map[string]ClientForm{
		"blank name":           {FullName: "   "},
		"unknown status":       {FullName: "Ivan Petrov", Status: "vip"},
		"unknown organization": {FullName: "Ivan Petrov", Organization: "999"},
		"malformed org":        {FullName: "Ivan Petrov", Organization: "ministry"},
	} {
		t.Run(name, func(t *testing.T) {
			var client models.VIPClient
			err := form.apply(&client)

			var formErr *FormError
			require.ErrorAs(t, err, &formErr)
			assert.NotEmpty(t, formErr.Message)
		})
	}
}

func TestInteractionForm_Build(t *testing.T) {
	userID := uint(3)

	form := InteractionForm{Date: "2024-04-02", Type: "call", Description: "Discussed the forum"}
	interaction, err := form.build(7, &userID)
	require.NoError(t, err)

	assert.Equal(t, uint(7), interaction.VIPClientID)
	assert.Equal(t, &userID, interaction.UserID)
	assert.Equal(t, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), interaction.Day())
	assert.Equal(t, models.TypeCall, interaction.Type)
	assert.Nil(t, interaction.Channel)

	form.Channel = "in_person"
	interaction, err = form.build(7, &userID)
	require.NoError(t, err)
	require.NotNil(t, interaction.Channel)
	assert.Equal(t, models.ChannelInPerson, *interaction.Channel)

	for name, bad := range map[string]InteractionForm{
		"bad date":          {Date: "02.04.2024", Type: "call", Description: "x"},
		"unknown type":      {Date: "2024-04-02", Type: "lunch", Description: "x"},
		"unknown channel":   {Date: "2024-04-02", Type: "call", Channel: "fax", Description: "x"},
		"blank description": {Date: "2024-04-02", Type: "call", Description: "  "},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := bad.build(7, &userID)

			var formErr *FormError
			assert.ErrorAs(t, err, &formErr)
		})
	}
}

func TestBindError(t *testing.T) {
	validate := validator.New()
	validate.SetTagName("binding")

	err := validate.Struct(ClientForm{})
	assert.Equal(t, "Full name is required.", bindError(err).Message)

	err = validate.Struct(ClientForm{FullName: "Ivan Petrov", Email: "not-an-email"})
	assert.Equal(t, "Email must be a valid email address.", bindError(err).Message)

	err = validate.Struct(ClientForm{FullName: "Ivan Petrov", Phone: "+7 (900) 000-00-00 ext. 42"})
	assert.Equal(t, "Phone must be at most 20 characters.", bindError(err).Message)

	assert.Equal(t, "The submitted form could not be read.", bindError(assert.AnError).Message)
}
