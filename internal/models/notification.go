package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Notification struct {
	gorm.Model

	UserID   uint           `gorm:"not null;index"`
	Content  string         `gorm:"not null"`
	Read     bool           `gorm:"default:false"`
	Metadata datatypes.JSON `gorm:"type:jsonb"` // house/unit/rental references

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
