package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vipcrm/vipcrm/db"
	"github.com/vipcrm/vipcrm/internal/auth"
	"github.com/vipcrm/vipcrm/internal/models"
	"github.com/vipcrm/vipcrm/internal/types"
	"github.com/vipcrm/vipcrm/internal/utils"
	"gorm.io/gorm"
)

const defaultLandingPage = "/dashboard/"

var checkMissingUser = auth.CheckMissingUser

type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

func ShowLogin(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", page(ctx, "Sign in", gin.H{
		"Next":     ctx.Query("next"),
		"Username": "",
	}))
}

func Login(ctx *gin.Context) {
	var request LoginRequest

	if err := ctx.ShouldBind(&request); err != nil {
		renderLoginFailure(ctx, request)
		return
	}

	request.Username = strings.TrimSpace(request.Username)

	var user models.User

	err := db.DB.Where("username = ?", request.Username).First(&user).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Database error when looking up user %q: %v", request.Username, err)
			renderServerError(ctx)
			return
		}

		_ = checkMissingUser(request.Password)
		renderLoginFailure(ctx, request)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, request.Password); err != nil || !user.IsActive {
		renderLoginFailure(ctx, request)
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Username, session.TTL)

	if err != nil {
		log.Printf("Failed to generate token for user %d: %v", user.ID, err)
		renderServerError(ctx)
		return
	}

	now := time.Now()

	if err := db.DB.Model(&user).Update("last_login", &now).Error; err != nil {
		log.Printf("Failed to record last login for user %d: %v", user.ID, err)
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(types.TokenCookieName, token, int(session.TTL.Seconds()), "/", session.CookieDomain, session.CookieSecure, true)

	ctx.Redirect(http.StatusSeeOther, utils.SafeRedirect(request.Next, defaultLandingPage))
}

func renderLoginFailure(ctx *gin.Context, request LoginRequest) {
	ctx.HTML(http.StatusUnauthorized, "login.html", page(ctx, "Sign in", gin.H{
		"Next":     request.Next,
		"Username": request.Username,
		"Error":    "Invalid username or password",
	}))
}

func Logout(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(types.TokenCookieName, "", -1, "/", session.CookieDomain, session.CookieSecure, true)
	ctx.Redirect(http.StatusSeeOther, "/login/")
}
