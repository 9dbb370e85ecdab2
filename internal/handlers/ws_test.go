package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vipcrm/vipcrm/internal/testutil"
	"github.com/vipcrm/vipcrm/internal/views"
)

func TestAddClient_DoesNotWaitForDashboardBroadcast(t *testing.T) {
	testutil.SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	templates, err := views.Load()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(templates)
	r.POST("/clients/add/", AddClient)

	// A broadcast stuck on a slow socket holds this lock
	broadcastMu.Lock()
	defer broadcastMu.Unlock()

	form := url.Values{"full_name": {"Ivan Petrov"}}
	req := httptest.NewRequest(http.MethodPost, "/clients/add/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		r.ServeHTTP(w, req)
		close(done)
	}()

	select {
	case <-done:
		assert.Equal(t, http.StatusSeeOther, w.Code)
	case <-time.After(5 * time.Second):
		t.Fatal("AddClient blocked on the dashboard broadcast")
	}
}
