package commercetools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/amal-thomson/pixelphraser/internal/config"
	"github.com/amal-thomson/pixelphraser/internal/models"
	"github.com/amal-thomson/pixelphraser/pkg/retry"
)

// Client is a thin HTTP client for the commerce platform endpoints the
// pipeline consumes: products, product types and custom objects.
type Client struct {
	baseURL    string
	projectKey string
	httpClient *http.Client
}

// New builds a Client authenticated via the client-credentials flow.
func New(ctx context.Context, cfg *config.Config) *Client {
	retryCfg := retry.Config{
		MaxAttempts:    cfg.TokenRetryMaxAttempts,
		InitialBackoff: cfg.TokenRetryInitialBackoff,
		MaxBackoff:     cfg.TokenRetryMaxBackoff,
	}
	source := newTokenSource(ctx, cfg.AuthURL, cfg.ClientID, cfg.ClientSecret, cfg.Scopes, retryCfg)
	timeout := cfg.ProviderTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		projectKey: cfg.ProjectKey,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &oauth2.Transport{Source: source},
		},
	}
}

// NewWithHTTPClient builds a Client over a caller-supplied HTTP client.
// Used by tests to point the client at a stub server without auth.
func NewWithHTTPClient(baseURL, projectKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		projectKey: projectKey,
		httpClient: httpClient,
	}
}

// GetProduct fetches the full product projection by id.
func (c *Client) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	var product models.Product
	if err := c.get(ctx, "/products/"+url.PathEscape(productID), &product); err != nil {
		return nil, fmt.Errorf("fetch product %s: %w", productID, err)
	}
	return &product, nil
}

// GetProductTypeKey resolves a product-type id to its human-readable key.
func (c *Client) GetProductTypeKey(ctx context.Context, typeID string) (string, error) {
	var pt struct {
		ID  string `json:"id"`
		Key string `json:"key"`
	}
	if err := c.get(ctx, "/product-types/"+url.PathEscape(typeID), &pt); err != nil {
		return "", fmt.Errorf("fetch product type %s: %w", typeID, err)
	}
	if pt.Key == "" {
		return "", fmt.Errorf("product type %s has no key", typeID)
	}
	return pt.Key, nil
}

// GetCustomObject reads a custom object by container and key. Returns
// ErrNotFound when no record exists.
func (c *Client) GetCustomObject(ctx context.Context, container, key string) (*models.CustomObject, error) {
	path := "/custom-objects/" + url.PathEscape(container) + "/" + url.PathEscape(key)
	var object models.CustomObject
	if err := c.get(ctx, path, &object); err != nil {
		return nil, fmt.Errorf("fetch custom object %s/%s: %w", container, key, err)
	}
	return &object, nil
}

// PostCustomObject creates or overwrites a custom object. A non-zero Version
// on the draft makes the write conditional; a stale version yields
// ErrVersionConflict.
func (c *Client) PostCustomObject(ctx context.Context, draft *models.CustomObject) (*models.CustomObject, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/custom-objects"), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("post custom object %s/%s: %w", draft.Container, draft.Key, err)
	}

	var saved models.CustomObject
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + c.projectKey + path
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return ErrVersionConflict
	case resp.StatusCode >= 400:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("platform returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return nil
}
