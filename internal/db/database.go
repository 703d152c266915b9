package db

import (
	"fmt"
	"log"

	"asir-guide-api/internal/db/migrations"
	"asir-guide-api/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres-backed catalog and brings the schema up to
// date, seeding the landmark table from seedSource on first run.
func Connect(databaseURL, seedSource string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Create migrations table
	if err := db.AutoMigrate(&models.MigrationRecord{}); err != nil {
		return nil, fmt.Errorf("error creating migrations table: %v", err)
	}

	if err := runMigrations(db, seedSource); err != nil {
		return nil, fmt.Errorf("error migrating database: %v", err)
	}

	return db, nil
}

func runMigrations(db *gorm.DB, seedSource string) error {
	for _, migration := range migrations.GetMigrations(seedSource) {
		var record models.MigrationRecord
		result := db.Where("name = ?", migration.Name).First(&record)

		if result.Error == gorm.ErrRecordNotFound {
			log.Printf("Running migration: %s", migration.Name)

			err := db.Transaction(func(tx *gorm.DB) error {
				if err := migration.Run(tx); err != nil {
					return err
				}

				return tx.Create(&models.MigrationRecord{Name: migration.Name}).Error
			})

			if err != nil {
				return fmt.Errorf("migration '%s' failed: %v", migration.Name, err)
			}
		} else if result.Error != nil {
			return fmt.Errorf("failed to check migration status: %v", result.Error)
		}
	}

	return nil
}
