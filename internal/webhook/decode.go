package webhook

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/amal-thomson/pixelphraser/internal/models"
)

// DecodeEvent extracts the notification payload from the push message.
// An absent or blank payload is a benign no-op, reported via ok=false.
// A payload that decodes to non-empty text but fails to parse is the one
// decode failure that surfaces as an error.
func DecodeEvent(message *models.PubSubMessage) (ev *models.ProductEvent, ok bool, err error) {
	if message.Data == "" {
		return nil, false, nil
	}

	raw, err := base64.StdEncoding.DecodeString(message.Data)
	if err != nil {
		return nil, false, fmt.Errorf("decode notification payload: %w", err)
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, false, nil
	}

	var event models.ProductEvent
	if err := json.Unmarshal([]byte(text), &event); err != nil {
		return nil, false, fmt.Errorf("parse notification payload: %w", err)
	}
	return &event, true, nil
}
