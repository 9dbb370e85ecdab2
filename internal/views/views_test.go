package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vipcrm/vipcrm/internal/models"
)

func TestLoad_ParsesAllPages(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	for _, name := range []string{
		"login.html",
		"dashboard.html",
		"users_list.html",
		"organizations_list.html",
		"clients_list.html",
		"client_detail.html",
		"client_form.html",
		"client_delete.html",
		"interaction_add.html",
		"not_found.html",
		"error.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), "missing template %s", name)
	}
}

func TestClientsList_EscapesAndSelectsStatus(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "clients_list.html", map[string]interface{}{
		"Title":         "VIP clients",
		"User":          nil,
		"Flash":         nil,
		"Error":         "",
		"Search":        "<script>",
		"Status":        "archived",
		"StatusChoices": models.StatusChoices,
		"Clients": []models.VIPClient{
			{ID: 1, FullName: "Petrov Petr", Status: models.StatusArchived},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, `<option value="archived" selected>Archived</option>`)
	assert.Contains(t, out, `<a href="/clients/1/">Petrov Petr</a>`)
}
