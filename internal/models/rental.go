package models

import (
	"time"

	"gorm.io/gorm"
)

// Rental is a tenant's booking of a House, or of a single Unit inside
// it. UnitID is nil for a whole-house rental.
type Rental struct {
	gorm.Model

	TenantID  uint      `gorm:"not null;index"`
	HouseID   uint      `gorm:"not null;index"`
	UnitID    *uint     `gorm:"index"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	Amount    float64   `gorm:"type:decimal(10,2);not null"`
	IsActive  bool      `gorm:"default:false"`

	// Relationships
	Tenant User  `gorm:"foreignKey:TenantID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	House  House `gorm:"foreignKey:HouseID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Unit   *Unit `gorm:"foreignKey:UnitID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
