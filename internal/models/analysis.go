package models

// ImageAnalysis is the vision service's structured read of a product image.
// The pipeline treats it as opaque input for description generation.
type ImageAnalysis struct {
	Labels  []string `json:"labels"`
	Objects []string `json:"objects"`
	Colors  []string `json:"colors"`
	Text    string   `json:"text,omitempty"`
}
