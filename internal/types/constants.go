package types

const ContextUserKey = "user"

const (
	TokenCookieName = "token"
	FlashCookieName = "flash"
)

const (
	FlashSuccess = "success"
	FlashError   = "error"
)
