// Package rentals owns the booking lifecycle. Creation is the only
// modeled transition; cancellation and completion are handled outside
// this system.
package rentals

import (
	"fmt"
	"log"
	"time"

	"github.com/ogennaisrael01/PropertyHub/internal/apperrors"
	"github.com/ogennaisrael01/PropertyHub/internal/models"
	"github.com/ogennaisrael01/PropertyHub/internal/notify"
	"github.com/ogennaisrael01/PropertyHub/internal/policy"
	"github.com/ogennaisrael01/PropertyHub/internal/store"
	"gorm.io/gorm"
)

type Manager struct {
	db    *gorm.DB
	store *store.PropertyStore
	sink  notify.Sink
}

func NewManager(conn *gorm.DB, propertyStore *store.PropertyStore, sink notify.Sink) *Manager {
	return &Manager{db: conn, store: propertyStore, sink: sink}
}

type CreateRentalInput struct {
	HouseID   uint
	UnitID    *uint // nil books the whole house
	StartDate time.Time
	EndDate   time.Time
	Amount    float64
	IsActive  bool
}

// CreateRentalResult carries the persisted rental plus a non-fatal
// warning when the owner notification could not be delivered.
type CreateRentalResult struct {
	Rental  *models.Rental
	Warning string
}

// CreateRental validates and persists a booking, then notifies the
// house owner. Validation failures abort before anything is written;
// notification failure never rolls the rental back.
func (m *Manager) CreateRental(tenant policy.Principal, in CreateRentalInput) (*CreateRentalResult, error) {
	if !tenant.Authenticated || !tenant.IsActive {
		return nil, apperrors.NotAuthenticated()
	}

	if tenant.Role != models.RoleTenant {
		return nil, apperrors.Authorization("only tenants can create rentals")
	}

	house, err := m.store.ResolveHouse(in.HouseID)

	if err != nil {
		return nil, err
	}

	var unit *models.Unit

	if in.UnitID != nil {
		unit, err = m.store.ResolveUnit(in.HouseID, *in.UnitID)

		if err != nil {
			return nil, err
		}
	}

	today := dateOnly(time.Now())

	if dateOnly(in.StartDate).Before(today) {
		return nil, apperrors.Validation("start_date", "start date in the past")
	}

	if dateOnly(in.EndDate).Before(dateOnly(in.StartDate)) {
		return nil, apperrors.Validation("end_date", "end date before start date")
	}

	if tenant.ID == house.OwnerID {
		return nil, apperrors.Authorization("cannot rent own property")
	}

	rental := models.Rental{
		TenantID:  tenant.ID,
		HouseID:   house.ID,
		UnitID:    in.UnitID,
		StartDate: dateOnly(in.StartDate),
		EndDate:   dateOnly(in.EndDate),
		Amount:    in.Amount,
		IsActive:  in.IsActive,
	}

	if err := m.db.Create(&rental).Error; err != nil {
		return nil, err
	}

	result := &CreateRentalResult{Rental: &rental}

	meta := notify.Metadata{HouseID: house.ID, RentalID: rental.ID}

	var content string

	if unit != nil {
		meta.UnitID = unit.ID
		content = fmt.Sprintf("New rental request for unit %s of your property at %s", unit.UnitNumber, house.Location)
	} else {
		content = fmt.Sprintf("New rental request for your property at %s", house.Location)
	}

	if err := m.sink.Notify(house.OwnerID, content, meta); err != nil {
		log.Printf("Failed to notify owner %d about rental %d: %v", house.OwnerID, rental.ID, err)
		result.Warning = "rental created, but the owner could not be notified"
	}

	return result, nil
}

// dateOnly drops the time-of-day component so date comparisons are not
// affected by the hour a request arrives.
func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
