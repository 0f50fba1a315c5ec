package commercetools

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amal-thomson/pixelphraser/internal/models"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewWithHTTPClient(srv.URL, "test-project", srv.Client())
}

func TestGetProduct(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/test-project/products/P1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":          "P1",
			"version":     7,
			"productType": map[string]string{"id": "T1"},
			"masterData": map[string]any{
				"current": map[string]any{
					"name": map[string]string{"en-US": "Red Shoe"},
				},
				"staged": map[string]any{
					"masterVariant": map[string]any{
						"attributes": []map[string]any{
							{"name": "generateDescription", "value": true},
						},
					},
				},
			},
		})
	})
	client := newTestClient(t, mux)

	product, err := client.GetProduct(context.Background(), "P1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.ID != "P1" || product.ProductType.ID != "T1" {
		t.Fatalf("unexpected product: %+v", product)
	}
	if product.Name("en-US") != "Red Shoe" {
		t.Fatalf("expected name, got %q", product.Name("en-US"))
	}
	attr := product.FindAttribute("generateDescription")
	if attr == nil || !attr.Truthy() {
		t.Fatalf("expected truthy generateDescription attribute")
	}
}

func TestGetProductTypeKey(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/test-project/product-types/T1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "T1", "key": "shoes"})
	})
	client := newTestClient(t, mux)

	key, err := client.GetProductTypeKey(context.Background(), "T1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "shoes" {
		t.Fatalf("expected shoes, got %q", key)
	}
}

func TestGetProductTypeKeyEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/test-project/product-types/T1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "T1"})
	})
	client := newTestClient(t, mux)

	if _, err := client.GetProductTypeKey(context.Background(), "T1"); err == nil {
		t.Fatalf("expected error for type without key")
	}
}

func TestGetCustomObjectNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	client := newTestClient(t, mux)

	_, err := client.GetCustomObject(context.Background(), models.DescriptionContainer, "P1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostCustomObjectVersionConflict(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/test-project/custom-objects", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	client := newTestClient(t, mux)

	draft := &models.CustomObject{Container: models.DescriptionContainer, Key: "P1", Version: 2}
	_, err := client.PostCustomObject(context.Background(), draft)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}

func TestPostCustomObjectRoundTrip(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/test-project/custom-objects", func(w http.ResponseWriter, r *http.Request) {
		var draft models.CustomObject
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			t.Errorf("decode draft: %v", err)
		}
		if draft.Container != models.DescriptionContainer || draft.Key != "P1" {
			t.Errorf("unexpected draft identity: %s/%s", draft.Container, draft.Key)
		}
		draft.Version++
		_ = json.NewEncoder(w).Encode(draft)
	})
	client := newTestClient(t, mux)

	saved, err := client.PostCustomObject(context.Background(), &models.CustomObject{
		Container: models.DescriptionContainer,
		Key:       "P1",
		Version:   1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Version != 2 {
		t.Fatalf("expected version 2, got %d", saved.Version)
	}
}
