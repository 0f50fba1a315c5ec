package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amal-thomson/pixelphraser/internal/commercetools"
	"github.com/amal-thomson/pixelphraser/internal/models"
)

// CustomObjectAPI is the subset of the platform client the store needs.
type CustomObjectAPI interface {
	GetCustomObject(ctx context.Context, container, key string) (*models.CustomObject, error)
	PostCustomObject(ctx context.Context, draft *models.CustomObject) (*models.CustomObject, error)
}

// DescriptionStore performs the two-phase durable write for generated
// descriptions: a placeholder record before the descriptions exist, then a
// versioned update once translation has succeeded.
type DescriptionStore struct {
	api    CustomObjectAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewDescriptionStore(api CustomObjectAPI, logger *slog.Logger) *DescriptionStore {
	return &DescriptionStore{
		api:    api,
		logger: logger,
		now:    time.Now,
	}
}

// CreatePlaceholder writes the description record with all description
// fields null. The record doubles as the progress marker for the invocation.
func (s *DescriptionStore) CreatePlaceholder(ctx context.Context, productID, imageURL, productName, productTypeKey string) (*models.CustomObject, error) {
	draft := &models.CustomObject{
		Container: models.DescriptionContainer,
		Key:       productID,
		Value: models.DescriptionValue{
			ImageURL:    imageURL,
			ProductType: productTypeKey,
			ProductName: productName,
		},
	}
	created, err := s.api.PostCustomObject(ctx, draft)
	if err != nil {
		s.logger.Error("failed to create description record",
			slog.String("product_id", productID), slog.Any("error", err))
		return nil, err
	}
	return created, nil
}

// UpdateWithTranslations reads the current record to obtain its version,
// then writes the filled record carrying that version forward. The store
// rejects the write when another writer got in between.
func (s *DescriptionStore) UpdateWithTranslations(ctx context.Context, productID, productName, imageURL string, translations *models.Translations, productTypeKey string) (*models.CustomObject, error) {
	current, err := s.api.GetCustomObject(ctx, models.DescriptionContainer, productID)
	if err != nil {
		if errors.Is(err, commercetools.ErrNotFound) {
			err = fmt.Errorf("description record missing for product %s, placeholder was never created: %w", productID, err)
		}
		s.logger.Error("failed to read description record before update",
			slog.String("product_id", productID), slog.Any("error", err))
		return nil, err
	}

	generatedAt := s.now().UTC()
	draft := &models.CustomObject{
		Container: models.DescriptionContainer,
		Key:       productID,
		Version:   current.Version,
		Value: models.DescriptionValue{
			USDescription: &translations.EnUS,
			GBDescription: &translations.EnGB,
			DEDescription: &translations.DeDE,
			ImageURL:      imageURL,
			ProductType:   productTypeKey,
			ProductName:   productName,
			GeneratedAt:   &generatedAt,
		},
	}
	updated, err := s.api.PostCustomObject(ctx, draft)
	if err != nil {
		s.logger.Error("failed to update description record",
			slog.String("product_id", productID),
			slog.Int64("version", current.Version),
			slog.Any("error", err))
		return nil, err
	}
	return updated, nil
}
