package migrations

import (
	"encoding/json"
	"fmt"
	"os"

	"asir-guide-api/internal/models"

	"gorm.io/gorm"
)

type Migration struct {
	Name string
	Run  func(*gorm.DB) error
}

// GetMigrations returns the ordered migration list. seedSource is the
// catalog JSON document the landmark table is populated from on first run.
func GetMigrations(seedSource string) []Migration {
	return []Migration{
		{
			Name: "CreateLandmarksTableAndSeedCatalog",
			Run: func(db *gorm.DB) error {
				// First, create the table
				if err := db.AutoMigrate(&models.Landmark{}); err != nil {
					return err
				}

				// Then, insert the catalog
				landmarks, err := readSeedCatalog(seedSource)
				if err != nil {
					return err
				}
				for i := range landmarks {
					// Seeded counters start at zero; sessions count
					// visits in memory only.
					landmarks[i].Visits = 0
					landmarks[i].Interactions = 0
					if err := db.Create(&landmarks[i]).Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}

func readSeedCatalog(seedSource string) ([]models.Landmark, error) {
	data, err := os.ReadFile(seedSource)
	if err != nil {
		return nil, fmt.Errorf("reading seed catalog %s: %v", seedSource, err)
	}

	var catalog models.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing seed catalog %s: %v", seedSource, err)
	}
	return catalog.Landmarks, nil
}
