package models

// PubSubEnvelope is the push-delivery wrapper posted by the notification
// subscription. Only Message.Data matters to the service; the rest is kept
// for logging.
type PubSubEnvelope struct {
	Message      PubSubMessage `json:"message"`
	Subscription string        `json:"subscription,omitempty"`
}

type PubSubMessage struct {
	Data        string            `json:"data,omitempty"`
	MessageID   string            `json:"messageId,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	PublishTime string            `json:"publishTime,omitempty"`
}

// ProductEvent is the decoded notification payload.
type ProductEvent struct {
	NotificationType string   `json:"notificationType"`
	Type             string   `json:"type"`
	Resource         Resource `json:"resource"`
	Variant          Variant  `json:"variant"`
}

type Resource struct {
	ID string `json:"id"`
}

type Variant struct {
	Images []Image `json:"images"`
}

type Image struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

// FirstImageURL returns the URL of the variant's first image, or "" when the
// event carries no imagery.
func (e *ProductEvent) FirstImageURL() string {
	if len(e.Variant.Images) == 0 {
		return ""
	}
	return e.Variant.Images[0].URL
}
