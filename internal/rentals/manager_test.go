package rentals

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/ogennaisrael01/PropertyHub/db"
	"github.com/ogennaisrael01/PropertyHub/internal/apperrors"
	"github.com/ogennaisrael01/PropertyHub/internal/models"
	"github.com/ogennaisrael01/PropertyHub/internal/notify"
	"github.com/ogennaisrael01/PropertyHub/internal/policy"
	"github.com/ogennaisrael01/PropertyHub/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type recordingSink struct {
	userIDs  []uint
	contents []string
	metas    []notify.Metadata
}

func (s *recordingSink) Notify(userID uint, content string, meta notify.Metadata) error {
	s.userIDs = append(s.userIDs, userID)
	s.contents = append(s.contents, content)
	s.metas = append(s.metas, meta)
	return nil
}

type failingSink struct{}

func (failingSink) Notify(userID uint, content string, meta notify.Metadata) error {
	return errors.New("sink unavailable")
}

type fixture struct {
	conn    *gorm.DB
	store   *store.PropertyStore
	sink    *recordingSink
	manager *Manager
	owner   *models.User
	tenant  *models.User
	house   *models.House
	unit    *models.Unit
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(conn))

	propertyStore := store.NewPropertyStore(conn)
	sink := &recordingSink{}

	f := &fixture{
		conn:    conn,
		store:   propertyStore,
		sink:    sink,
		manager: NewManager(conn, propertyStore, sink),
	}

	f.owner = &models.User{
		Name: "alice", Email: "alice@example.com", PasswordHash: "x",
		Role: models.RoleOwner, IsActive: true,
	}
	require.NoError(t, conn.Create(f.owner).Error)

	f.tenant = &models.User{
		Name: "bob", Email: "bob@example.com", PasswordHash: "x",
		Role: models.RoleTenant, IsActive: true,
	}
	require.NoError(t, conn.Create(f.tenant).Error)

	f.house, err = propertyStore.CreateHouse(f.owner, store.HouseAttrs{
		Title: "Green Villa", Description: "block", Price: 1000,
		Location: "Lagos", HouseType: "apartments", IsAvailable: true, ForRent: true,
	})
	require.NoError(t, err)

	f.unit, err = propertyStore.CreateUnit(f.house, store.UnitAttrs{
		UnitNumber: "A1", Bedrooms: 2, Bathrooms: 1, LivingRooms: 1,
		RentAmount: 250, IsAvailable: true,
	})
	require.NoError(t, err)

	return f
}

func principalFor(user *models.User) policy.Principal {
	return policy.Principal{
		ID:            user.ID,
		Role:          user.Role,
		IsStaff:       user.IsStaff,
		IsActive:      user.IsActive,
		Authenticated: true,
	}
}

func validInput(f *fixture) CreateRentalInput {
	start := time.Now().AddDate(0, 0, 1)

	return CreateRentalInput{
		HouseID:   f.house.ID,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 30),
		Amount:    500,
	}
}

func TestCreateRentalWholeHouse(t *testing.T) {
	f := newFixture(t)

	result, err := f.manager.CreateRental(principalFor(f.tenant), validInput(f))
	require.NoError(t, err)
	require.NotNil(t, result.Rental)
	assert.Empty(t, result.Warning)

	assert.Equal(t, f.tenant.ID, result.Rental.TenantID)
	assert.Equal(t, f.house.ID, result.Rental.HouseID)
	assert.Nil(t, result.Rental.UnitID)

	// The house owner was notified about the booking.
	require.Len(t, f.sink.userIDs, 1)
	assert.Equal(t, f.owner.ID, f.sink.userIDs[0])
	assert.Contains(t, f.sink.contents[0], "Lagos")
	assert.Equal(t, f.house.ID, f.sink.metas[0].HouseID)
	assert.Equal(t, result.Rental.ID, f.sink.metas[0].RentalID)
}

func TestCreateRentalForUnit(t *testing.T) {
	f := newFixture(t)

	in := validInput(f)
	in.UnitID = &f.unit.ID
	in.Amount = 250

	result, err := f.manager.CreateRental(principalFor(f.tenant), in)
	require.NoError(t, err)
	require.NotNil(t, result.Rental.UnitID)
	assert.Equal(t, f.unit.ID, *result.Rental.UnitID)

	require.Len(t, f.sink.contents, 1)
	assert.Contains(t, f.sink.contents[0], "A1")
	assert.Equal(t, f.unit.ID, f.sink.metas[0].UnitID)
}

func TestCreateRentalValidationOrder(t *testing.T) {
	f := newFixture(t)

	t.Run("anonymous is rejected", func(t *testing.T) {
		_, err := f.manager.CreateRental(policy.Principal{}, validInput(f))
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotAuthenticated))
	})

	t.Run("owner role is rejected", func(t *testing.T) {
		_, err := f.manager.CreateRental(principalFor(f.owner), validInput(f))
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
	})

	t.Run("missing house", func(t *testing.T) {
		in := validInput(f)
		in.HouseID = 999

		_, err := f.manager.CreateRental(principalFor(f.tenant), in)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})

	t.Run("unit from another house", func(t *testing.T) {
		other, err := f.store.CreateHouse(f.owner, store.HouseAttrs{
			Title: "Other", Description: "d", Price: 500,
			Location: "Abuja", HouseType: "duplex", IsAvailable: true,
		})
		require.NoError(t, err)

		otherUnit, err := f.store.CreateUnit(other, store.UnitAttrs{
			UnitNumber: "B1", Bedrooms: 1, Bathrooms: 1, LivingRooms: 1, RentAmount: 100, IsAvailable: true,
		})
		require.NoError(t, err)

		in := validInput(f)
		in.UnitID = &otherUnit.ID

		_, err = f.manager.CreateRental(principalFor(f.tenant), in)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	})

	t.Run("start date in the past", func(t *testing.T) {
		in := validInput(f)
		in.StartDate = time.Now().AddDate(0, 0, -1)

		_, err := f.manager.CreateRental(principalFor(f.tenant), in)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		assert.Contains(t, err.Error(), "start date")
	})

	t.Run("end date before start date", func(t *testing.T) {
		in := validInput(f)
		in.EndDate = in.StartDate.AddDate(0, 0, -2)

		_, err := f.manager.CreateRental(principalFor(f.tenant), in)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		assert.Contains(t, err.Error(), "end date")
	})

	t.Run("today is a valid start date", func(t *testing.T) {
		in := validInput(f)
		in.StartDate = time.Now()
		in.EndDate = time.Now()

		_, err := f.manager.CreateRental(principalFor(f.tenant), in)
		require.NoError(t, err)
	})
}

// Tenants who are set as a house's owner directly in the data must
// still be refused, whatever their role says.
func TestCreateRentalSelfRentalDenied(t *testing.T) {
	f := newFixture(t)

	landlordTenant := &models.User{
		Name: "eve", Email: "eve@example.com", PasswordHash: "x",
		Role: models.RoleTenant, IsActive: true,
	}
	require.NoError(t, f.conn.Create(landlordTenant).Error)

	house := &models.House{
		OwnerID: landlordTenant.ID, Title: "Eve's place", Description: "d",
		Price: 700, Location: "Ibadan", HouseType: "bungalow", IsAvailable: true,
	}
	require.NoError(t, f.conn.Create(house).Error)

	in := validInput(f)
	in.HouseID = house.ID

	_, err := f.manager.CreateRental(principalFor(landlordTenant), in)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
	assert.Contains(t, err.Error(), "cannot rent own property")

	var count int64
	f.conn.Model(&models.Rental{}).Count(&count)
	assert.Zero(t, count)
}

// Random date pairs must be accepted exactly when the window is valid:
// start today or later and end not before start.
func TestCreateRentalDateWindowProperty(t *testing.T) {
	f := newFixture(t)
	rng := rand.New(rand.NewSource(1))

	year, month, day := time.Now().Date()
	today := time.Date(year, month, day, 12, 0, 0, 0, time.Local)

	for i := 0; i < 200; i++ {
		startOffset := rng.Intn(61) - 30 // [-30, 30] days from today
		duration := rng.Intn(61) - 30    // [-30, 30] days long

		in := validInput(f)
		in.StartDate = today.AddDate(0, 0, startOffset)
		in.EndDate = in.StartDate.AddDate(0, 0, duration)

		_, err := f.manager.CreateRental(principalFor(f.tenant), in)

		if startOffset < 0 || duration < 0 {
			require.Error(t, err, "start offset %d, duration %d", startOffset, duration)
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		} else {
			require.NoError(t, err, "start offset %d, duration %d", startOffset, duration)
		}
	}
}

func TestCreateRentalNoDeduplication(t *testing.T) {
	f := newFixture(t)

	in := validInput(f)

	_, err := f.manager.CreateRental(principalFor(f.tenant), in)
	require.NoError(t, err)

	_, err = f.manager.CreateRental(principalFor(f.tenant), in)
	require.NoError(t, err)

	var count int64
	f.conn.Model(&models.Rental{}).Where("tenant_id = ?", f.tenant.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestCreateRentalSurvivesNotificationFailure(t *testing.T) {
	f := newFixture(t)
	f.manager = NewManager(f.conn, f.store, failingSink{})

	result, err := f.manager.CreateRental(principalFor(f.tenant), validInput(f))
	require.NoError(t, err)
	require.NotNil(t, result.Rental)
	assert.NotEmpty(t, result.Warning)

	// The rental row exists despite the failed notification.
	var count int64
	f.conn.Model(&models.Rental{}).Where("id = ?", result.Rental.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}
