package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/vipcrm/vipcrm/db"
	"github.com/vipcrm/vipcrm/internal/auth"
	"github.com/vipcrm/vipcrm/internal/models"
	"github.com/vipcrm/vipcrm/internal/types"
)

type AuthenticatedUser struct {
	ID       uint
	Username string
	FullName string
	Email    string
	IsStaff  bool
}

func (u AuthenticatedUser) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// AuthMiddleware guards every page except login. Requests without a valid
// session cookie are sent to the login page with the original path in next.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := ctx.Cookie(types.TokenCookieName)

		if err != nil || tokenString == "" {
			redirectToLogin(ctx)
			return
		}

		claims, err := auth.VerifyJWT(tokenString)

		if err != nil {
			redirectToLogin(ctx)
			return
		}

		var user models.User

		if err := db.DB.Where("id = ? AND is_active = ?", claims.UserID, true).First(&user).Error; err != nil {
			redirectToLogin(ctx)
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:       user.ID,
			Username: user.Username,
			FullName: user.FullName,
			Email:    user.Email,
			IsStaff:  user.IsStaff,
		})
		ctx.Next()
	}
}

func redirectToLogin(ctx *gin.Context) {
	target := "/login/?next=" + url.QueryEscape(ctx.Request.URL.RequestURI())
	ctx.Redirect(http.StatusFound, target)
	ctx.Abort()
}
