package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"asir-guide-api/internal/models"
	apierrors "asir-guide-api/internal/pkg/errors"
)

// CatalogSource loads the landmark catalog once at startup. A failed load
// leaves the catalog absent; subsequent lookups simply miss.
type CatalogSource interface {
	Load(ctx context.Context) (*models.Catalog, error)
}

// FileCatalogSource reads the catalog document from a local path or an
// http(s) URL.
type FileCatalogSource struct {
	Source string
	Client *http.Client
}

func NewFileCatalogSource(source string) *FileCatalogSource {
	return &FileCatalogSource{
		Source: source,
		Client: http.DefaultClient,
	}
}

func (s *FileCatalogSource) Load(ctx context.Context) (*models.Catalog, error) {
	if strings.HasPrefix(s.Source, "http://") || strings.HasPrefix(s.Source, "https://") {
		return s.loadHTTP(ctx)
	}
	return s.loadFile()
}

func (s *FileCatalogSource) loadFile() (*models.Catalog, error) {
	data, err := os.ReadFile(s.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", apierrors.ErrDataLoad, s.Source, err)
	}
	return decodeCatalog(data)
}

func (s *FileCatalogSource) loadHTTP(ctx context.Context) (*models.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Source, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apierrors.ErrDataLoad, err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", apierrors.ErrDataLoad, s.Source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetching %s: status %d", apierrors.ErrDataLoad, s.Source, resp.StatusCode)
	}

	var catalog models.Catalog
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", apierrors.ErrDataLoad, s.Source, err)
	}
	return normalizeCatalog(&catalog), nil
}

func decodeCatalog(data []byte) (*models.Catalog, error) {
	var catalog models.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("%w: parsing catalog: %v", apierrors.ErrDataLoad, err)
	}
	return normalizeCatalog(&catalog), nil
}

func normalizeCatalog(catalog *models.Catalog) *models.Catalog {
	if catalog.Stats.Languages == nil {
		catalog.Stats.Languages = make(map[string]int64)
	}
	return catalog
}
