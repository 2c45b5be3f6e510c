// Package store owns the House -> Unit -> Rental hierarchy: path
// resolution, validated writes, filtered listing and the cascade
// delete. Every domain failure comes back as an apperrors value so the
// HTTP layer never needs to inspect gorm errors.
package store

import (
	"errors"

	"github.com/ogennaisrael01/PropertyHub/internal/apperrors"
	"github.com/ogennaisrael01/PropertyHub/internal/models"
	"gorm.io/gorm"
)

type PropertyStore struct {
	db *gorm.DB
}

func NewPropertyStore(conn *gorm.DB) *PropertyStore {
	return &PropertyStore{db: conn}
}

type HouseAttrs struct {
	Title       string
	Description string
	Price       float64
	Location    string
	HouseType   string
	IsAvailable bool
	ForRent     bool
	ForSale     bool
}

type UnitAttrs struct {
	UnitNumber  string
	Bedrooms    int
	Bathrooms   int
	LivingRooms int
	RentAmount  float64
	IsAvailable bool
}

type ImageAttrs struct {
	Caption  string
	ImageRef string
}

// HouseFilters narrows the public listing. Nil/empty fields are
// ignored. Room filters match houses having at least one unit with the
// given count.
type HouseFilters struct {
	Price       *float64
	Location    string
	Search      string
	Bedrooms    *int
	Bathrooms   *int
	LivingRooms *int
}

func (s *PropertyStore) ResolveHouse(id uint) (*models.House, error) {
	var house models.House

	if err := s.db.First(&house, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("house", id)
		}
		return nil, err
	}

	return &house, nil
}

// ResolveUnit looks up a unit addressed as house/:house_id/unit/:unit_id.
// A unit that exists under a different house is a Conflict, not a
// NotFound, so mis-stated paths are distinguishable from missing rows.
func (s *PropertyStore) ResolveUnit(houseID, unitID uint) (*models.Unit, error) {
	var unit models.Unit

	if err := s.db.First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("unit", unitID)
		}
		return nil, err
	}

	if unit.HouseID != houseID {
		return nil, apperrors.Conflict("unit does not belong to the stated house")
	}

	return &unit, nil
}

func (s *PropertyStore) ResolveImage(houseID, imageID uint) (*models.HouseImage, error) {
	var image models.HouseImage

	if err := s.db.First(&image, imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("house_image", imageID)
		}
		return nil, err
	}

	if image.HouseID != houseID {
		return nil, apperrors.Conflict("image does not belong to the stated house")
	}

	return &image, nil
}

func validateHouseAttrs(attrs HouseAttrs) error {
	if attrs.Price <= 0 {
		return apperrors.Validation("price", "must be greater than zero")
	}
	return nil
}

func validateUnitAttrs(attrs UnitAttrs) error {
	switch {
	case attrs.Bedrooms < 0:
		return apperrors.Validation("bedrooms", "must not be negative")
	case attrs.Bathrooms < 0:
		return apperrors.Validation("bathrooms", "must not be negative")
	case attrs.LivingRooms < 0:
		return apperrors.Validation("living_rooms", "must not be negative")
	case attrs.RentAmount <= 0:
		return apperrors.Validation("rent_amount", "must be greater than zero")
	}
	return nil
}

// CreateHouse persists a listing for owner. The role check here backs
// up the policy layer: a house row must never exist with a non-Owner
// owner, no matter which path created it.
func (s *PropertyStore) CreateHouse(owner *models.User, attrs HouseAttrs) (*models.House, error) {
	if owner.Role != models.RoleOwner {
		return nil, apperrors.Validation("owner", "owner must have the Owner role")
	}

	if err := validateHouseAttrs(attrs); err != nil {
		return nil, err
	}

	house := models.House{
		OwnerID:     owner.ID,
		Title:       attrs.Title,
		Description: attrs.Description,
		Price:       attrs.Price,
		Location:    attrs.Location,
		HouseType:   attrs.HouseType,
		IsAvailable: attrs.IsAvailable,
		ForRent:     attrs.ForRent,
		ForSale:     attrs.ForSale,
	}

	if err := s.db.Create(&house).Error; err != nil {
		return nil, err
	}

	return &house, nil
}

func (s *PropertyStore) UpdateHouse(house *models.House, attrs HouseAttrs) error {
	if err := validateHouseAttrs(attrs); err != nil {
		return err
	}

	house.Title = attrs.Title
	house.Description = attrs.Description
	house.Price = attrs.Price
	house.Location = attrs.Location
	house.HouseType = attrs.HouseType
	house.IsAvailable = attrs.IsAvailable
	house.ForRent = attrs.ForRent
	house.ForSale = attrs.ForSale

	return s.db.Save(house).Error
}

func (s *PropertyStore) CreateUnit(house *models.House, attrs UnitAttrs) (*models.Unit, error) {
	if err := validateUnitAttrs(attrs); err != nil {
		return nil, err
	}

	unit := models.Unit{
		HouseID:     house.ID,
		UnitNumber:  attrs.UnitNumber,
		Bedrooms:    attrs.Bedrooms,
		Bathrooms:   attrs.Bathrooms,
		LivingRooms: attrs.LivingRooms,
		RentAmount:  attrs.RentAmount,
		IsAvailable: attrs.IsAvailable,
	}

	if err := s.db.Create(&unit).Error; err != nil {
		return nil, err
	}

	return &unit, nil
}

func (s *PropertyStore) UpdateUnit(unit *models.Unit, attrs UnitAttrs) error {
	if err := validateUnitAttrs(attrs); err != nil {
		return err
	}

	unit.UnitNumber = attrs.UnitNumber
	unit.Bedrooms = attrs.Bedrooms
	unit.Bathrooms = attrs.Bathrooms
	unit.LivingRooms = attrs.LivingRooms
	unit.RentAmount = attrs.RentAmount
	unit.IsAvailable = attrs.IsAvailable

	return s.db.Save(unit).Error
}

func (s *PropertyStore) DeleteUnit(unit *models.Unit) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("unit_id = ?", unit.ID).Delete(&models.Rental{}).Error; err != nil {
			return err
		}

		return tx.Delete(unit).Error
	})
}

func (s *PropertyStore) CreateImage(house *models.House, attrs ImageAttrs) (*models.HouseImage, error) {
	image := models.HouseImage{
		HouseID:  house.ID,
		Caption:  attrs.Caption,
		ImageRef: attrs.ImageRef,
	}

	if err := s.db.Create(&image).Error; err != nil {
		return nil, err
	}

	return &image, nil
}

func (s *PropertyStore) DeleteImage(image *models.HouseImage) error {
	return s.db.Delete(image).Error
}

// DeleteHouse removes the house and everything hanging off it: units,
// images, and rentals booked either against the house directly or
// against any of its units. The cascade runs in one transaction, so a
// partial delete is never visible.
func (s *PropertyStore) DeleteHouse(house *models.House) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		unitIDs := tx.Model(&models.Unit{}).Select("id").Where("house_id = ?", house.ID)

		if err := tx.Where("house_id = ? OR unit_id IN (?)", house.ID, unitIDs).Delete(&models.Rental{}).Error; err != nil {
			return err
		}

		if err := tx.Where("house_id = ?", house.ID).Delete(&models.HouseImage{}).Error; err != nil {
			return err
		}

		if err := tx.Where("house_id = ?", house.ID).Delete(&models.Unit{}).Error; err != nil {
			return err
		}

		return tx.Delete(house).Error
	})
}

// ListAvailableHouses returns available listings newest first, so
// pagination stays stable as new houses appear.
func (s *PropertyStore) ListAvailableHouses(filters HouseFilters) ([]models.House, error) {
	query := s.db.Model(&models.House{}).Where("houses.is_available = ?", true)

	if filters.Price != nil {
		query = query.Where("houses.price = ?", *filters.Price)
	}

	if filters.Location != "" {
		query = query.Where("houses.location = ?", filters.Location)
	}

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("houses.title LIKE ? OR houses.location LIKE ?", pattern, pattern)
	}

	if filters.Bedrooms != nil || filters.Bathrooms != nil || filters.LivingRooms != nil {
		query = query.Joins("JOIN units ON units.house_id = houses.id AND units.deleted_at IS NULL").Distinct("houses.*")

		if filters.Bedrooms != nil {
			query = query.Where("units.bedrooms = ?", *filters.Bedrooms)
		}

		if filters.Bathrooms != nil {
			query = query.Where("units.bathrooms = ?", *filters.Bathrooms)
		}

		if filters.LivingRooms != nil {
			query = query.Where("units.living_rooms = ?", *filters.LivingRooms)
		}
	}

	var houses []models.House

	if err := query.Order("houses.created_at DESC").Find(&houses).Error; err != nil {
		return nil, err
	}

	return houses, nil
}

func (s *PropertyStore) ListAvailableUnits(houseID uint) ([]models.Unit, error) {
	var units []models.Unit

	if err := s.db.Where("house_id = ? AND is_available = ?", houseID, true).Find(&units).Error; err != nil {
		return nil, err
	}

	return units, nil
}

func (s *PropertyStore) ListRentalsByTenant(tenantID uint) ([]models.Rental, error) {
	var rentals []models.Rental

	if err := s.db.Where("tenant_id = ?", tenantID).Order("created_at DESC").Find(&rentals).Error; err != nil {
		return nil, err
	}

	return rentals, nil
}
