package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrEmptyRoleName = errors.New("role name must not be empty")

// Role is a label on a user describing intended permissions. It is not
// enforced anywhere.
type Role struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	Permissions string `gorm:"type:text"`
}

func (Role) TableName() string {
	return "roles"
}

func (r *Role) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyRoleName
	}
	return nil
}
