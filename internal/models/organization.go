package models

type Organization struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"size:200;not null;index"`
	Type    string `gorm:"size:100;not null"`
	Address string `gorm:"size:300"`
	Website string `gorm:"size:150"`
}

func (Organization) TableName() string {
	return "organizations"
}
