package repository

import (
	"context"
	"errors"
	"fmt"

	"asir-guide-api/internal/models"
	apierrors "asir-guide-api/internal/pkg/errors"

	"gorm.io/gorm"
)

type LandmarkRepository interface {
	GetByID(ctx context.Context, id string) (*models.Landmark, error)
	FindByName(ctx context.Context, name string) (*models.Landmark, error)
	List(ctx context.Context) ([]models.Landmark, error)
	Create(ctx context.Context, landmark *models.Landmark) error
	Count(ctx context.Context) (int64, error)
}

type landmarkRepository struct {
	db *gorm.DB
}

func NewLandmarkRepository(db *gorm.DB) LandmarkRepository {
	return &landmarkRepository{db: db}
}

func (r *landmarkRepository) GetByID(ctx context.Context, id string) (*models.Landmark, error) {
	var landmark models.Landmark

	err := r.db.WithContext(ctx).First(&landmark, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &landmark, nil
}

// FindByName matches any localized name, case-insensitively.
func (r *landmarkRepository) FindByName(ctx context.Context, name string) (*models.Landmark, error) {
	var landmark models.Landmark

	err := r.db.WithContext(ctx).Where("name::text ILIKE ?", "%"+name+"%").First(&landmark).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &landmark, nil
}

func (r *landmarkRepository) List(ctx context.Context) ([]models.Landmark, error) {
	var landmarks []models.Landmark

	err := r.db.WithContext(ctx).Order("id ASC").Find(&landmarks).Error
	return landmarks, err
}

func (r *landmarkRepository) Create(ctx context.Context, landmark *models.Landmark) error {
	return r.db.WithContext(ctx).Create(landmark).Error
}

func (r *landmarkRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Landmark{}).Count(&count).Error
	return count, err
}

// DBCatalogSource loads the catalog from the landmark table. Usage counters
// always start at zero for the session; the database keeps the seeded
// values only.
type DBCatalogSource struct {
	repo LandmarkRepository
}

func NewDBCatalogSource(repo LandmarkRepository) *DBCatalogSource {
	return &DBCatalogSource{repo: repo}
}

func (s *DBCatalogSource) Load(ctx context.Context) (*models.Catalog, error) {
	landmarks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apierrors.ErrDataLoad, err)
	}

	return normalizeCatalog(&models.Catalog{Landmarks: landmarks}), nil
}
