// Package notify delivers fire-and-forget notices to users. Callers
// treat delivery failure as non-fatal: the triggering operation has
// already committed by the time the sink runs.
package notify

import (
	"encoding/json"

	"github.com/ogennaisrael01/PropertyHub/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Metadata points a notification back at the records it is about.
// Zero-valued fields are omitted from the stored payload.
type Metadata struct {
	HouseID  uint `json:"house_id,omitempty"`
	UnitID   uint `json:"unit_id,omitempty"`
	RentalID uint `json:"rental_id,omitempty"`
}

type Sink interface {
	Notify(userID uint, content string, meta Metadata) error
}

// DatabaseSink stores notifications as rows; the notifications API
// serves them back on demand.
type DatabaseSink struct {
	db *gorm.DB
}

func NewDatabaseSink(conn *gorm.DB) *DatabaseSink {
	return &DatabaseSink{db: conn}
}

func (s *DatabaseSink) Notify(userID uint, content string, meta Metadata) error {
	payload, err := json.Marshal(meta)

	if err != nil {
		return err
	}

	notification := models.Notification{
		UserID:   userID,
		Content:  content,
		Metadata: datatypes.JSON(payload),
	}

	return s.db.Create(&notification).Error
}
