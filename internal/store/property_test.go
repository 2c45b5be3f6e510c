package store

import (
	"testing"
	"time"

	"github.com/ogennaisrael01/PropertyHub/db"
	"github.com/ogennaisrael01/PropertyHub/internal/apperrors"
	"github.com/ogennaisrael01/PropertyHub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(conn))

	return conn
}

func createOwner(t *testing.T, conn *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		Name:         "Test Owner",
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleOwner,
		IsActive:     true,
	}
	require.NoError(t, conn.Create(&user).Error)

	return &user
}

func createTenant(t *testing.T, conn *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		Name:         "Test Tenant",
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleTenant,
		IsActive:     true,
	}
	require.NoError(t, conn.Create(&user).Error)

	return &user
}

func validHouseAttrs() HouseAttrs {
	return HouseAttrs{
		Title:       "Green Villa",
		Description: "Five unit apartment block",
		Price:       1000,
		Location:    "Lagos",
		HouseType:   "apartments",
		IsAvailable: true,
		ForRent:     true,
	}
}

func validUnitAttrs() UnitAttrs {
	return UnitAttrs{
		UnitNumber:  "A1",
		Bedrooms:    2,
		Bathrooms:   1,
		LivingRooms: 1,
		RentAmount:  250,
		IsAvailable: true,
	}
}

func TestCreateHouseValidation(t *testing.T) {
	conn := newTestDB(t)
	s := NewPropertyStore(conn)

	t.Run("rejects non-owner role", func(t *testing.T) {
		tenant := createTenant(t, conn, "tenant@example.com")

		_, err := s.CreateHouse(tenant, validHouseAttrs())
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		owner := createOwner(t, conn, "owner-price@example.com")

		attrs := validHouseAttrs()
		attrs.Price = 0

		_, err := s.CreateHouse(owner, attrs)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run("creates for owner", func(t *testing.T) {
		owner := createOwner(t, conn, "owner@example.com")

		house, err := s.CreateHouse(owner, validHouseAttrs())
		require.NoError(t, err)
		assert.Equal(t, owner.ID, house.OwnerID)
		assert.NotZero(t, house.ID)
	})
}

func TestCreateUnitValidation(t *testing.T) {
	conn := newTestDB(t)
	s := NewPropertyStore(conn)

	owner := createOwner(t, conn, "owner@example.com")
	house, err := s.CreateHouse(owner, validHouseAttrs())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*UnitAttrs)
		field  string
	}{
		{"negative bedrooms", func(a *UnitAttrs) { a.Bedrooms = -1 }, "bedrooms"},
		{"negative bathrooms", func(a *UnitAttrs) { a.Bathrooms = -2 }, "bathrooms"},
		{"negative living rooms", func(a *UnitAttrs) { a.LivingRooms = -1 }, "living_rooms"},
		{"zero rent", func(a *UnitAttrs) { a.RentAmount = 0 }, "rent_amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := validUnitAttrs()
			tt.mutate(&attrs)

			_, err := s.CreateUnit(house, attrs)
			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	unit, err := s.CreateUnit(house, validUnitAttrs())
	require.NoError(t, err)
	assert.Equal(t, house.ID, unit.HouseID)
}

func TestResolveHouse(t *testing.T) {
	conn := newTestDB(t)
	s := NewPropertyStore(conn)

	_, err := s.ResolveHouse(999)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	owner := createOwner(t, conn, "owner@example.com")
	house, err := s.CreateHouse(owner, validHouseAttrs())
	require.NoError(t, err)

	resolved, err := s.ResolveHouse(house.ID)
	require.NoError(t, err)
	assert.Equal(t, house.ID, resolved.ID)
}

func TestResolveUnitConflict(t *testing.T) {
	conn := newTestDB(t)
	s := NewPropertyStore(conn)

	owner := createOwner(t, conn, "owner@example.com")

	houseA, err := s.CreateHouse(owner, validHouseAttrs())
	require.NoError(t, err)

	houseB, err := s.CreateHouse(owner, validHouseAttrs())
	require.NoError(t, err)

	unit, err := s.CreateUnit(houseA, validUnitAttrs())
	require.NoError(t, err)

	_, err = s.ResolveUnit(houseB.ID, unit.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	_, err = s.ResolveUnit(houseA.ID, 999)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	resolved, err := s.ResolveUnit(houseA.ID, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, unit.ID, resolved.ID)
}

func TestDeleteHouseCascades(t *testing.T) {
	conn := newTestDB(t)
	s := NewPropertyStore(conn)

	owner := createOwner(t, conn, "owner@example.com")
	tenant := createTenant(t, conn, "tenant@example.com")

	house, err := s.CreateHouse(owner, validHouseAttrs())
	require.NoError(t, err)

	// Two units, one rental each, plus a direct whole-house rental and
	// an image.
	start := time.Now().AddDate(0, 0, 1)
	end := start.AddDate(0, 1, 0)

	for _, number := range []string{"A1", "A2"} {
		attrs := validUnitAttrs()
		attrs.UnitNumber = number

		unit, err := s.CreateUnit(house, attrs)
		require.NoError(t, err)

		rental := models.Rental{
			TenantID:  tenant.ID,
			HouseID:   house.ID,
			UnitID:    &unit.ID,
			StartDate: start,
			EndDate:   end,
			Amount:    250,
		}
		require.NoError(t, conn.Create(&rental).Error)
	}

	directRental := models.Rental{
		TenantID:  tenant.ID,
		HouseID:   house.ID,
		StartDate: start,
		EndDate:   end,
		Amount:    1000,
	}
	require.NoError(t, conn.Create(&directRental).Error)

	_, err = s.CreateImage(house, ImageAttrs{Caption: "front", ImageRef: "img-1"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteHouse(house))

	var count int64

	conn.Model(&models.Unit{}).Where("house_id = ?", house.ID).Count(&count)
	assert.Zero(t, count, "units should be gone")

	conn.Model(&models.Rental{}).Where("house_id = ?", house.ID).Count(&count)
	assert.Zero(t, count, "rentals should be gone")

	conn.Model(&models.HouseImage{}).Where("house_id = ?", house.ID).Count(&count)
	assert.Zero(t, count, "images should be gone")

	_, err = s.ResolveHouse(house.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestListAvailableHouses(t *testing.T) {
	conn := newTestDB(t)
	s := NewPropertyStore(conn)

	owner := createOwner(t, conn, "owner@example.com")

	hidden := validHouseAttrs()
	hidden.IsAvailable = false
	hidden.Title = "Hidden Villa"

	_, err := s.CreateHouse(owner, hidden)
	require.NoError(t, err)

	lagos := validHouseAttrs()
	lagos.Title = "Lagos Flat"
	lagos.Location = "Lagos"

	lagosHouse, err := s.CreateHouse(owner, lagos)
	require.NoError(t, err)

	abuja := validHouseAttrs()
	abuja.Title = "Abuja Duplex"
	abuja.Location = "Abuja"
	abuja.Price = 2000

	abujaHouse, err := s.CreateHouse(owner, abuja)
	require.NoError(t, err)

	// Make creation times distinct so ordering is observable.
	require.NoError(t, conn.Model(lagosHouse).Update("created_at", time.Now().Add(-time.Hour)).Error)

	t.Run("excludes unavailable houses", func(t *testing.T) {
		houses, err := s.ListAvailableHouses(HouseFilters{})
		require.NoError(t, err)
		require.Len(t, houses, 2)

		for _, house := range houses {
			assert.True(t, house.IsAvailable)
		}
	})

	t.Run("orders newest first", func(t *testing.T) {
		houses, err := s.ListAvailableHouses(HouseFilters{})
		require.NoError(t, err)
		require.Len(t, houses, 2)
		assert.Equal(t, abujaHouse.ID, houses[0].ID)
		assert.Equal(t, lagosHouse.ID, houses[1].ID)
	})

	t.Run("filters by location", func(t *testing.T) {
		houses, err := s.ListAvailableHouses(HouseFilters{Location: "Lagos"})
		require.NoError(t, err)
		require.Len(t, houses, 1)
		assert.Equal(t, lagosHouse.ID, houses[0].ID)
	})

	t.Run("filters by price", func(t *testing.T) {
		price := 2000.0

		houses, err := s.ListAvailableHouses(HouseFilters{Price: &price})
		require.NoError(t, err)
		require.Len(t, houses, 1)
		assert.Equal(t, abujaHouse.ID, houses[0].ID)
	})

	t.Run("substring search over title and location", func(t *testing.T) {
		houses, err := s.ListAvailableHouses(HouseFilters{Search: "Duplex"})
		require.NoError(t, err)
		require.Len(t, houses, 1)
		assert.Equal(t, abujaHouse.ID, houses[0].ID)
	})

	t.Run("room filters match through units", func(t *testing.T) {
		attrs := validUnitAttrs()
		attrs.Bedrooms = 3

		_, err := s.CreateUnit(lagosHouse, attrs)
		require.NoError(t, err)

		bedrooms := 3

		houses, err := s.ListAvailableHouses(HouseFilters{Bedrooms: &bedrooms})
		require.NoError(t, err)
		require.Len(t, houses, 1)
		assert.Equal(t, lagosHouse.ID, houses[0].ID)

		bedrooms = 9

		houses, err = s.ListAvailableHouses(HouseFilters{Bedrooms: &bedrooms})
		require.NoError(t, err)
		assert.Empty(t, houses)
	})
}

func TestListAvailableUnits(t *testing.T) {
	conn := newTestDB(t)
	s := NewPropertyStore(conn)

	owner := createOwner(t, conn, "owner@example.com")
	house, err := s.CreateHouse(owner, validHouseAttrs())
	require.NoError(t, err)

	available := validUnitAttrs()

	_, err = s.CreateUnit(house, available)
	require.NoError(t, err)

	taken := validUnitAttrs()
	taken.UnitNumber = "A2"
	taken.IsAvailable = false

	_, err = s.CreateUnit(house, taken)
	require.NoError(t, err)

	units, err := s.ListAvailableUnits(house.ID)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "A1", units[0].UnitNumber)
}
