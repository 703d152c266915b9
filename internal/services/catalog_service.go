package services

import (
	"context"
	"strings"
	"sync"

	"asir-guide-api/internal/i18n"
	"asir-guide-api/internal/models"
	"asir-guide-api/internal/repository"
)

// CatalogService exposes the landmark catalog loaded at startup. Lookups
// miss when the load failed and the catalog is absent.
type CatalogService interface {
	Ready() bool
	FindByIDOrName(query string) *models.Landmark
	Get(id string) *models.Landmark
	Landmarks() []models.Landmark
	RecordVisit(id string, lang i18n.Language)
	Stats() models.CatalogStats
}

type catalogService struct {
	mu      sync.RWMutex
	catalog *models.Catalog
}

// NewCatalogService loads the catalog from source. On a load failure the
// returned service is still usable; every lookup misses and the error is
// reported to the caller for the localized data-error message.
func NewCatalogService(ctx context.Context, source repository.CatalogSource) (CatalogService, error) {
	catalog, err := source.Load(ctx)
	if err != nil {
		return &catalogService{}, err
	}
	if catalog.Stats.Languages == nil {
		catalog.Stats.Languages = make(map[string]int64)
	}
	return &catalogService{catalog: catalog}, nil
}

func (s *catalogService) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog != nil
}

// FindByIDOrName matches the trimmed query against landmark identifiers
// first, then against any localized name as a case-insensitive substring.
func (s *catalogService) FindByIDOrName(query string) *models.Landmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.catalog == nil {
		return nil
	}

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil
	}

	for i := range s.catalog.Landmarks {
		if s.catalog.Landmarks[i].ID == trimmed {
			return copyLandmark(&s.catalog.Landmarks[i])
		}
	}

	lowered := strings.ToLower(trimmed)
	for i := range s.catalog.Landmarks {
		for _, name := range s.catalog.Landmarks[i].Name {
			if strings.Contains(strings.ToLower(name), lowered) {
				return copyLandmark(&s.catalog.Landmarks[i])
			}
		}
	}
	return nil
}

func (s *catalogService) Get(id string) *models.Landmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyLandmark(s.find(id))
}

func (s *catalogService) Landmarks() []models.Landmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.catalog == nil {
		return nil
	}
	out := make([]models.Landmark, len(s.catalog.Landmarks))
	copy(out, s.catalog.Landmarks)
	return out
}

// RecordVisit bumps the landmark's visit and interaction counters and the
// catalog aggregates. Unknown identifiers are a silent no-op.
func (s *catalogService) RecordVisit(id string, lang i18n.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()

	landmark := s.find(id)
	if landmark == nil {
		return
	}

	landmark.Visits++
	landmark.Interactions++
	s.catalog.Stats.TotalVisits++
	s.catalog.Stats.Languages[lang.String()]++
}

func (s *catalogService) Stats() models.CatalogStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.catalog == nil {
		return models.CatalogStats{Languages: map[string]int64{}}
	}

	languages := make(map[string]int64, len(s.catalog.Stats.Languages))
	for lang, count := range s.catalog.Stats.Languages {
		languages[lang] = count
	}
	return models.CatalogStats{
		TotalVisits: s.catalog.Stats.TotalVisits,
		Languages:   languages,
	}
}

// find returns the live record; callers must hold the lock.
func (s *catalogService) find(id string) *models.Landmark {
	if s.catalog == nil {
		return nil
	}
	for i := range s.catalog.Landmarks {
		if s.catalog.Landmarks[i].ID == id {
			return &s.catalog.Landmarks[i]
		}
	}
	return nil
}

func copyLandmark(landmark *models.Landmark) *models.Landmark {
	if landmark == nil {
		return nil
	}
	clone := *landmark
	return &clone
}
