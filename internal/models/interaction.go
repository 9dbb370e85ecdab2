package models

import (
	"time"

	"gorm.io/datatypes"
)

type Interaction struct {
	ID          uint                `gorm:"primaryKey"`
	VIPClientID uint                `gorm:"column:vip_client_id;not null;index"`
	UserID      *uint               `gorm:"index"`
	Date        datatypes.Date      `gorm:"not null;index"`
	Type        InteractionType     `gorm:"size:50;not null;check:type IN ('meeting','email','call','project','agreement','other')"`
	Channel     *InteractionChannel `gorm:"size:50"`
	Description string              `gorm:"type:text;not null"`
	Result      string              `gorm:"type:text"`

	// Relationships
	VIPClient *VIPClient `gorm:"foreignKey:VIPClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (Interaction) TableName() string {
	return "interactions"
}

func (i Interaction) Day() time.Time {
	return time.Time(i.Date)
}

func (i Interaction) ChannelLabel() string {
	if i.Channel == nil {
		return ""
	}
	return i.Channel.Label()
}

func (i Interaction) AuthorName() string {
	if i.User == nil {
		return ""
	}
	return i.User.DisplayName()
}
