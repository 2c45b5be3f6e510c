package db

import (
	"github.com/ogennaisrael01/PropertyHub/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	return Migrate(DB)
}

// Migrate creates any missing tables on the given connection. Split out
// from MigrateDatabase so tests can migrate their own in-memory database.
func Migrate(conn *gorm.DB) error {
	models := []interface{}{
		&models.User{},
		&models.House{},
		&models.Unit{},
		&models.HouseImage{},
		&models.Rental{},
		&models.Notification{},
		&models.Message{},
	}

	migrator := conn.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := conn.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
