package models

import "gorm.io/gorm"

type House struct {
	gorm.Model

	OwnerID     uint    `gorm:"not null;index"`
	Title       string  `gorm:"not null"`
	Description string  `gorm:"not null"`
	Price       float64 `gorm:"type:decimal(10,2);not null"` // Price for the full building
	Location    string  `gorm:"not null"`
	HouseType   string  `gorm:"not null"` // "apartments", "duplex", etc.
	IsAvailable bool    `gorm:"default:false"`
	ForRent     bool    `gorm:"default:false"`
	ForSale     bool    `gorm:"default:false"`

	// Relationships
	Owner   User         `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Units   []Unit       `gorm:"foreignKey:HouseID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Images  []HouseImage `gorm:"foreignKey:HouseID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Rentals []Rental     `gorm:"foreignKey:HouseID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
