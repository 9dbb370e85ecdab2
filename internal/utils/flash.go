package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vipcrm/vipcrm/internal/types"
)

type Flash struct {
	Kind    string
	Message string
}

// SetFlash stores a one-shot message that the next rendered page displays.
func SetFlash(ctx *gin.Context, kind, message string) {
	ctx.SetCookie(types.FlashCookieName, kind+":"+message, 60, "/", "", false, true)
}

// PopFlash returns the pending message, if any, and clears it.
func PopFlash(ctx *gin.Context) *Flash {
	value, err := ctx.Cookie(types.FlashCookieName)

	if err != nil || value == "" {
		return nil
	}

	ctx.SetCookie(types.FlashCookieName, "", -1, "/", "", false, true)

	kind, message, found := strings.Cut(value, ":")

	if !found {
		return &Flash{Kind: types.FlashSuccess, Message: value}
	}

	return &Flash{Kind: kind, Message: message}
}
