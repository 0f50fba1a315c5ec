package services

import (
	"context"
	"log/slog"

	"github.com/amal-thomson/pixelphraser/internal/repository"
)

// ProductTypeAPI resolves a product-type id to its key on the platform.
type ProductTypeAPI interface {
	GetProductTypeKey(ctx context.Context, typeID string) (string, error)
}

// CachedTypeKeyResolver resolves product-type keys through an optional Redis
// cache. Cache errors degrade to a platform lookup, never to a failure.
type CachedTypeKeyResolver struct {
	api    ProductTypeAPI
	cache  *repository.TypeKeyCache
	logger *slog.Logger
}

func NewCachedTypeKeyResolver(api ProductTypeAPI, cache *repository.TypeKeyCache, logger *slog.Logger) *CachedTypeKeyResolver {
	return &CachedTypeKeyResolver{
		api:    api,
		cache:  cache,
		logger: logger,
	}
}

func (r *CachedTypeKeyResolver) Resolve(ctx context.Context, typeID string) (string, error) {
	if r.cache != nil {
		key, err := r.cache.Get(ctx, typeID)
		if err != nil {
			r.logger.Warn("type key cache read failed", slog.String("type_id", typeID), slog.Any("error", err))
		} else if key != "" {
			return key, nil
		}
	}

	key, err := r.api.GetProductTypeKey(ctx, typeID)
	if err != nil {
		return "", err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, typeID, key); err != nil {
			r.logger.Warn("type key cache write failed", slog.String("type_id", typeID), slog.Any("error", err))
		}
	}
	return key, nil
}
