package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:150;uniqueIndex;not null"`
	Email        string `gorm:"size:254;uniqueIndex;not null"`
	FullName     string `gorm:"size:200;not null"`
	PasswordHash string `gorm:"not null"`
	IsActive     bool   `gorm:"not null"`
	IsStaff      bool   `gorm:"not null"`
	RoleID       *uint  `gorm:"index"`
	LastLogin    *time.Time
	DateJoined   time.Time `gorm:"autoCreateTime"`

	// Relationships
	Role *Role `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName falls back to the username when no full name was recorded.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
