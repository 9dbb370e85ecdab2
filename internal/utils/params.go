package utils

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func GetClientID(ctx *gin.Context) (uint, error) {
	clientIDStr := ctx.Param("id")

	if clientIDStr == "" {
		return 0, errors.New("client ID not found")
	}

	clientID, err := strconv.ParseUint(clientIDStr, 10, 32)

	if err != nil || clientID == 0 {
		return 0, errors.New("invalid client ID")
	}

	return uint(clientID), nil
}

// ParseOptionalID parses a select value where the empty string means "none".
func ParseOptionalID(value string) (*uint, error) {
	value = strings.TrimSpace(value)

	if value == "" {
		return nil, nil
	}

	id, err := strconv.ParseUint(value, 10, 32)

	if err != nil || id == 0 {
		return nil, errors.New("invalid ID")
	}

	result := uint(id)
	return &result, nil
}

// SafeRedirect only accepts local absolute paths so a crafted next parameter
// cannot send the user to another host.
func SafeRedirect(target, fallback string) string {
	if target == "" {
		return fallback
	}

	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}

	parsed, err := url.Parse(target)

	if err != nil || parsed.Host != "" || parsed.Scheme != "" {
		return fallback
	}

	return target
}
