package models

import "gorm.io/gorm"

type HouseImage struct {
	gorm.Model

	HouseID  uint   `gorm:"not null;index"`
	Caption  string
	ImageRef string `gorm:"not null"` // opaque reference into the image store

	// Relationships
	House House `gorm:"foreignKey:HouseID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
