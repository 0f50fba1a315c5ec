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

// VisionClient calls the vision analysis service, which reads a product
// image and returns a structured account of its visual content.
type VisionClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewVisionClient(baseURL, apiKey string, timeout time.Duration) *VisionClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &VisionClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type visionRequest struct {
	ImageURL string `json:"image_url"`
}

type visionResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    *models.ImageAnalysis `json:"data"`
}

func (c *VisionClient) Analyze(ctx context.Context, imageURL string) (*models.ImageAnalysis, error) {
	body, err := json.Marshal(visionRequest{ImageURL: imageURL})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/analyze", bytes.NewReader(body))
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
		return nil, fmt.Errorf("vision service returned %d", resp.StatusCode)
	}

	var envelope visionResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	if !envelope.Success || envelope.Data == nil {
		return nil, fmt.Errorf("vision service error: %s", envelope.Message)
	}
	return envelope.Data, nil
}
