package webhook

import (
	"encoding/base64"
	"testing"

	"github.com/amal-thomson/pixelphraser/internal/models"
)

func encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestDecodeEventNoData(t *testing.T) {
	ev, ok, err := DecodeEvent(&models.PubSubMessage{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || ev != nil {
		t.Fatalf("expected no-op for empty data")
	}
}

func TestDecodeEventWhitespaceOnly(t *testing.T) {
	ev, ok, err := DecodeEvent(&models.PubSubMessage{Data: encode("   \n\t ")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || ev != nil {
		t.Fatalf("expected no-op for blank payload")
	}
}

func TestDecodeEventInvalidBase64(t *testing.T) {
	_, _, err := DecodeEvent(&models.PubSubMessage{Data: "%%%not-base64%%%"})
	if err == nil {
		t.Fatalf("expected error for invalid base64")
	}
}

func TestDecodeEventMalformedJSON(t *testing.T) {
	_, _, err := DecodeEvent(&models.PubSubMessage{Data: encode("{not json")})
	if err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}

func TestDecodeEventValid(t *testing.T) {
	payload := `{
		"notificationType": "ProductUpdated",
		"type": "ProductVariantAdded",
		"resource": {"id": "P1"},
		"variant": {"images": [{"url": "https://x/img.jpg"}]}
	}`
	ev, ok, err := DecodeEvent(&models.PubSubMessage{Data: encode(payload)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected decoded event")
	}
	if ev.NotificationType != "ProductUpdated" || ev.Type != "ProductVariantAdded" {
		t.Fatalf("unexpected event header: %+v", ev)
	}
	if ev.Resource.ID != "P1" {
		t.Fatalf("expected product id P1, got %q", ev.Resource.ID)
	}
	if got := ev.FirstImageURL(); got != "https://x/img.jpg" {
		t.Fatalf("expected image url, got %q", got)
	}
}
