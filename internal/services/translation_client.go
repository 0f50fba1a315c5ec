package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/amal-thomson/pixelphraser/internal/models"
)

// TranslationClient calls the translation service that renders the canonical
// description into the three supported locales.
type TranslationClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewTranslationClient(baseURL, apiKey string, timeout time.Duration) *TranslationClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TranslationClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type translationRequest struct {
	Description string   `json:"description"`
	Locales     []string `json:"locales"`
}

type translationResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    *models.Translations `json:"data"`
}

func (c *TranslationClient) Translate(ctx context.Context, description string) (*models.Translations, error) {
	body, err := json.Marshal(translationRequest{
		Description: description,
		Locales:     []string{"en-US", "en-GB", "de-DE"},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/translations", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("translation service returned %d", resp.StatusCode)
	}

	var envelope translationResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	if !envelope.Success || envelope.Data == nil {
		return nil, fmt.Errorf("translation service error: %s", envelope.Message)
	}
	if envelope.Data.EnUS == "" || envelope.Data.EnGB == "" || envelope.Data.DeDE == "" {
		return nil, fmt.Errorf("translation service returned incomplete locales")
	}
	return envelope.Data, nil
}
