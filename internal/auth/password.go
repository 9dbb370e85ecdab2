package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// missingUserHash has the cost of a real password hash so a login for an
// unknown username takes as long as one for a known username.
var missingUserHash, _ = bcrypt.GenerateFromPassword([]byte("vipcrm-missing-user"), bcrypt.DefaultCost)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword returns ErrInvalidCredentials for any mismatch or malformed hash.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// CheckMissingUser runs a full bcrypt comparison for a username that does not
// exist and always returns ErrInvalidCredentials.
func CheckMissingUser(password string) error {
	_ = bcrypt.CompareHashAndPassword(missingUserHash, []byte(password))
	return ErrInvalidCredentials
}
