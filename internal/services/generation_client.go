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

// GenerationClient calls the generative service that turns a vision analysis
// plus product metadata into a single canonical description.
type GenerationClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewGenerationClient(baseURL, apiKey string, timeout time.Duration) *GenerationClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GenerationClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type generationRequest struct {
	Analysis    *models.ImageAnalysis `json:"analysis"`
	ProductName string                `json:"product_name"`
	ProductType string                `json:"product_type"`
}

type generationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *struct {
		Description string `json:"description"`
	} `json:"data"`
}

func (c *GenerationClient) Generate(ctx context.Context, analysis *models.ImageAnalysis, productName, productTypeKey string) (string, error) {
	body, err := json.Marshal(generationRequest{
		Analysis:    analysis,
		ProductName: productName,
		ProductType: productTypeKey,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/descriptions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation service returned %d", resp.StatusCode)
	}

	var envelope generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", err
	}
	if !envelope.Success || envelope.Data == nil || envelope.Data.Description == "" {
		return "", fmt.Errorf("generation service error: %s", envelope.Message)
	}
	return envelope.Data.Description, nil
}
