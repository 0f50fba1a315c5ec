package models

import "time"

// DescriptionContainer is the custom-object container every description
// record lives in. The name is part of the storage contract shared with the
// merchant-center app and must not change.
const DescriptionContainer = "temporaryDescription"

// Translations holds the generated description in the three supported
// locales.
type Translations struct {
	EnUS string `json:"en-US"`
	EnGB string `json:"en-GB"`
	DeDE string `json:"de-DE"`
}

// DescriptionValue is the custom-object value. Description fields are
// pointers so the placeholder phase can persist explicit nulls.
type DescriptionValue struct {
	USDescription *string    `json:"usDescription"`
	GBDescription *string    `json:"gbDescription"`
	DEDescription *string    `json:"deDescription"`
	ImageURL      string     `json:"imageUrl"`
	ProductType   string     `json:"productType"`
	ProductName   string     `json:"productName"`
	GeneratedAt   *time.Time `json:"generatedAt,omitempty"`
}

// CustomObject is a platform key-value record with optimistic versioning.
type CustomObject struct {
	ID        string           `json:"id,omitempty"`
	Container string           `json:"container"`
	Key       string           `json:"key"`
	Version   int64            `json:"version,omitempty"`
	Value     DescriptionValue `json:"value"`
}
