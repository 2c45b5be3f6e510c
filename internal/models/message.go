package models

import "gorm.io/gorm"

// Message is a direct message between two users, typically an owner and
// a tenant discussing a listing. Delivery is plain request/response;
// there is no realtime transport.
type Message struct {
	gorm.Model

	SenderID   uint   `gorm:"not null;index"`
	ReceiverID uint   `gorm:"not null;index"`
	Body       string `gorm:"not null"`
	Read       bool   `gorm:"default:false"`

	// Relationships
	Sender   User `gorm:"foreignKey:SenderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Receiver User `gorm:"foreignKey:ReceiverID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
