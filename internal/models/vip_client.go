package models

type VIPClient struct {
	ID             uint         `gorm:"primaryKey"`
	FullName       string       `gorm:"size:200;not null"`
	Position       string       `gorm:"size:200;not null"`
	Phone          string       `gorm:"size:20;not null"`
	Email          string       `gorm:"size:100;not null"`
	OrganizationID *uint        `gorm:"index"`
	Status         ClientStatus `gorm:"size:50;not null;default:active;check:status IN ('active','inactive','potential','archived')"`
	Notes          string       `gorm:"type:text"`

	// Relationships
	Organization *Organization `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (VIPClient) TableName() string {
	return "vip_clients"
}

// OrganizationName returns an empty string for clients without an organization.
func (c VIPClient) OrganizationName() string {
	if c.Organization == nil {
		return ""
	}
	return c.Organization.Name
}
