package models

import "gorm.io/gorm"

// Unit is a rentable subdivision of a House, e.g. a single apartment in
// a block of five. A Unit has no owner of its own; its effective owner
// is always the owner of its House.
type Unit struct {
	gorm.Model

	HouseID     uint    `gorm:"not null;index"`
	UnitNumber  string  `gorm:"not null"`
	Bedrooms    int     `gorm:"not null"`
	Bathrooms   int     `gorm:"not null"`
	LivingRooms int     `gorm:"not null"`
	RentAmount  float64 `gorm:"type:decimal(10,2);not null"`
	IsAvailable bool    `gorm:"default:true"`

	// Relationships
	House   House    `gorm:"foreignKey:HouseID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Rentals []Rental `gorm:"foreignKey:UnitID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
