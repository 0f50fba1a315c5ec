package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amal-thomson/pixelphraser/internal/commercetools"
	"github.com/amal-thomson/pixelphraser/internal/models"
)

type fakeCustomObjects struct {
	current *models.CustomObject
	getErr  error
	postErr error

	posted []*models.CustomObject
}

func (f *fakeCustomObjects) GetCustomObject(ctx context.Context, container, key string) (*models.CustomObject, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.current, nil
}

func (f *fakeCustomObjects) PostCustomObject(ctx context.Context, draft *models.CustomObject) (*models.CustomObject, error) {
	if f.postErr != nil {
		return nil, f.postErr
	}
	copied := *draft
	f.posted = append(f.posted, &copied)
	returned := *draft
	returned.Version = draft.Version + 1
	return &returned, nil
}

func newStore(api CustomObjectAPI) *DescriptionStore {
	s := NewDescriptionStore(api, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestCreatePlaceholderWritesNullDescriptions(t *testing.T) {
	api := &fakeCustomObjects{}
	store := newStore(api)

	created, err := store.CreatePlaceholder(context.Background(), "P1", "https://x/img.jpg", "Red Shoe", "shoes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.posted) != 1 {
		t.Fatalf("expected one write, got %d", len(api.posted))
	}
	draft := api.posted[0]
	if draft.Container != models.DescriptionContainer || draft.Key != "P1" {
		t.Fatalf("unexpected record identity: %s/%s", draft.Container, draft.Key)
	}
	if draft.Value.USDescription != nil || draft.Value.GBDescription != nil || draft.Value.DEDescription != nil {
		t.Fatalf("placeholder descriptions must be null")
	}
	if draft.Value.GeneratedAt != nil {
		t.Fatalf("placeholder must not carry a generation timestamp")
	}
	if draft.Value.ImageURL != "https://x/img.jpg" || draft.Value.ProductName != "Red Shoe" || draft.Value.ProductType != "shoes" {
		t.Fatalf("unexpected placeholder value: %+v", draft.Value)
	}
	if created.Version == 0 {
		t.Fatalf("expected platform-assigned version")
	}
}

func TestUpdateCarriesCurrentVersionForward(t *testing.T) {
	api := &fakeCustomObjects{
		current: &models.CustomObject{
			Container: models.DescriptionContainer,
			Key:       "P1",
			Version:   3,
		},
	}
	store := newStore(api)
	translations := &models.Translations{EnUS: "us", EnGB: "gb", DeDE: "de"}

	updated, err := store.UpdateWithTranslations(context.Background(), "P1", "Red Shoe", "https://x/img.jpg", translations, "shoes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	draft := api.posted[0]
	if draft.Version != 3 {
		t.Fatalf("update must carry the version read before writing, got %d", draft.Version)
	}
	if updated.Version != 4 {
		t.Fatalf("expected the store-assigned next version, got %d", updated.Version)
	}
	if *draft.Value.USDescription != "us" || *draft.Value.GBDescription != "gb" || *draft.Value.DEDescription != "de" {
		t.Fatalf("unexpected locale values: %+v", draft.Value)
	}
	if draft.Value.GeneratedAt == nil || !draft.Value.GeneratedAt.Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected the generation timestamp to be set")
	}
	if draft.Value.ImageURL != "https://x/img.jpg" || draft.Value.ProductName != "Red Shoe" || draft.Value.ProductType != "shoes" {
		t.Fatalf("product metadata must be unchanged from creation: %+v", draft.Value)
	}
}

func TestUpdateFailsWhenPlaceholderMissing(t *testing.T) {
	api := &fakeCustomObjects{getErr: commercetools.ErrNotFound}
	store := newStore(api)

	_, err := store.UpdateWithTranslations(context.Background(), "P1", "Red Shoe", "https://x/img.jpg", &models.Translations{}, "shoes")
	if err == nil {
		t.Fatalf("expected error for missing placeholder")
	}
	if !errors.Is(err, commercetools.ErrNotFound) {
		t.Fatalf("expected the not-found kind to be preserved, got %v", err)
	}
}

func TestUpdateSurfacesVersionConflict(t *testing.T) {
	api := &fakeCustomObjects{
		current: &models.CustomObject{Version: 3},
		postErr: commercetools.ErrVersionConflict,
	}
	store := newStore(api)

	_, err := store.UpdateWithTranslations(context.Background(), "P1", "Red Shoe", "https://x/img.jpg", &models.Translations{}, "shoes")
	if !errors.Is(err, commercetools.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}
}
