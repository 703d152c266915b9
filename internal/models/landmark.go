package models

import "gorm.io/gorm"

// Landmark is a single catalog entry. Name and Description are localized;
// Visits and Interactions are session counters mutated in place each time
// the landmark is displayed, never written back to the catalog source.
type Landmark struct {
	ID              string         `gorm:"type:varchar(16);primaryKey" json:"id"`
	Name            LocalizedText  `gorm:"type:jsonb;not null" json:"name"`
	Description     LocalizedText  `gorm:"type:jsonb;not null" json:"description"`
	Recommendations StringList     `gorm:"type:jsonb" json:"recommendations"`
	Location        *Location      `gorm:"embedded;embeddedPrefix:location_" json:"location,omitempty"`
	AudioURL        string         `gorm:"type:varchar(512)" json:"audio_url,omitempty"`
	Visits          int64          `gorm:"not null;default:0" json:"visits"`
	Interactions    int64          `gorm:"not null;default:0" json:"interactions"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// Location carries the optional geolocation link of a landmark.
type Location struct {
	GoogleMapsURL string `gorm:"type:varchar(512)" json:"google_maps_url"`
}

// CatalogStats aggregates usage counters across the whole catalog.
type CatalogStats struct {
	TotalVisits int64            `json:"totalVisits"`
	Languages   map[string]int64 `json:"languages"`
}

// Catalog is the full landmark document as loaded from its source.
type Catalog struct {
	Landmarks []Landmark   `json:"landmarks"`
	Stats     CatalogStats `json:"stats"`
}

func (Landmark) TableName() string {
	return "landmarks"
}
