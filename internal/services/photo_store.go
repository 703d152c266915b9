package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"asir-guide-api/internal/config"
	"asir-guide-api/internal/models"
	apierrors "asir-guide-api/internal/pkg/errors"

	"github.com/redis/go-redis/v9"
)

// PhotoStore persists the per-landmark memory wall as an append-only
// sequence under the key "photos-<landmarkId>".
type PhotoStore interface {
	Load(ctx context.Context, landmarkID string) ([]models.Photo, error)
	Append(ctx context.Context, landmarkID string, photo models.Photo) ([]models.Photo, error)
}

func photoKey(landmarkID string) string {
	return "photos-" + landmarkID
}

type RedisPhotoStore struct {
	client *redis.Client
}

func NewRedisPhotoStore(cfg *config.CacheConfig) (*RedisPhotoStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &RedisPhotoStore{client: client}, nil
}

func (s *RedisPhotoStore) Load(ctx context.Context, landmarkID string) ([]models.Photo, error) {
	raw, err := s.client.Get(ctx, photoKey(landmarkID)).Result()
	if errors.Is(err, redis.Nil) {
		return []models.Photo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apierrors.ErrCacheError, err)
	}

	var photos []models.Photo
	if err := json.Unmarshal([]byte(raw), &photos); err != nil {
		return nil, fmt.Errorf("%w: %v", apierrors.ErrCacheError, err)
	}
	return photos, nil
}

func (s *RedisPhotoStore) Append(ctx context.Context, landmarkID string, photo models.Photo) ([]models.Photo, error) {
	photos, err := s.Load(ctx, landmarkID)
	if err != nil {
		return nil, err
	}

	photos = append(photos, photo)
	jsonData, err := json.Marshal(photos)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apierrors.ErrCacheError, err)
	}

	// Galleries never expire; the wall is an unbounded append-only log.
	if err := s.client.Set(ctx, photoKey(landmarkID), jsonData, 0).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apierrors.ErrCacheError, err)
	}
	return photos, nil
}

// MemoryPhotoStore keeps galleries in process memory. Used in tests and in
// deployments without redis.
type MemoryPhotoStore struct {
	mu        sync.RWMutex
	galleries map[string][]models.Photo
}

func NewMemoryPhotoStore() *MemoryPhotoStore {
	return &MemoryPhotoStore{galleries: make(map[string][]models.Photo)}
}

func (s *MemoryPhotoStore) Load(ctx context.Context, landmarkID string) ([]models.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	photos := s.galleries[photoKey(landmarkID)]
	out := make([]models.Photo, len(photos))
	copy(out, photos)
	return out, nil
}

func (s *MemoryPhotoStore) Append(ctx context.Context, landmarkID string, photo models.Photo) ([]models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := photoKey(landmarkID)
	s.galleries[key] = append(s.galleries[key], photo)

	out := make([]models.Photo, len(s.galleries[key]))
	copy(out, s.galleries[key])
	return out, nil
}
