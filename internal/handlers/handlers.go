package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vipcrm/vipcrm/internal/config"
	"github.com/vipcrm/vipcrm/internal/services"
	"github.com/vipcrm/vipcrm/internal/utils"
)

var (
	session        = config.SessionConfig{TTL: config.DefaultSessionTTL}
	allowedOrigins []string
	notifier       *services.Notifier
)

// Init applies runtime settings shared by the handlers. It must run before
// the router starts serving.
func Init(cfg *config.Config) {
	session = cfg.Session
	allowedOrigins = cfg.Server.AllowedOrigins
	notifier = services.NewNotifier(cfg.Webhooks)
}

// page builds template data with the keys the shared layout expects.
func page(ctx *gin.Context, title string, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}

	data["Title"] = title
	data["Flash"] = utils.PopFlash(ctx)

	if _, ok := data["Error"]; !ok {
		data["Error"] = ""
	}

	if user, err := utils.GetCurrentUser(ctx); err == nil {
		data["User"] = user
	} else {
		data["User"] = nil
	}

	return data
}

func renderNotFound(ctx *gin.Context, message string) {
	ctx.HTML(http.StatusNotFound, "not_found.html", page(ctx, "Not found", gin.H{
		"Message": message,
	}))
}

func renderServerError(ctx *gin.Context) {
	ctx.HTML(http.StatusInternalServerError, "error.html", page(ctx, "Error", gin.H{
		"Message": "Something went wrong. Please try again later.",
	}))
}

// NotFound renders the 404 page for unknown routes.
func NotFound(ctx *gin.Context) {
	renderNotFound(ctx, "The page you requested does not exist.")
}
