package models

import "gorm.io/gorm"

const (
	RoleOwner  = "Owner"
	RoleTenant = "Tenant"
)

type User struct {
	gorm.Model

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null"` // "Owner" or "Tenant", fixed at registration
	IsStaff      bool   `gorm:"default:false"`
	IsActive     bool   `gorm:"default:true"`

	// Relationships
	Houses           []House        `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Rentals          []Rental       `gorm:"foreignKey:TenantID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Notifications    []Notification `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	SentMessages     []Message      `gorm:"foreignKey:SenderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ReceivedMessages []Message      `gorm:"foreignKey:ReceiverID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// ValidRole reports whether role is one of the two roles a user can
// register with.
func ValidRole(role string) bool {
	return role == RoleOwner || role == RoleTenant
}
