package services

import (
	"log/slog"

	"github.com/amal-thomson/pixelphraser/internal/models"
)

const (
	// GenerateDescriptionAttr is the staged product attribute that opts a
	// product into automatic description generation.
	GenerateDescriptionAttr = "generateDescription"

	// NameLocale is the locale the product display name is read from.
	NameLocale = "en-US"

	notificationResourceCreated = "ResourceCreated"
	eventProductVariantAdded    = "ProductVariantAdded"
)

// Decision is the outcome of the eligibility guard chain. A non-proceed
// decision carries the reason and the level it should be logged at; falsy
// opt-in is expected traffic and logs at info, shape problems log at error.
type Decision struct {
	Proceed bool
	Reason  string
	Level   slog.Level
}

func proceed() Decision {
	return Decision{Proceed: true}
}

func skip(reason string, level slog.Level) Decision {
	return Decision{Reason: reason, Level: level}
}

type eventGuard struct {
	reason string
	level  slog.Level
	skips  func(*models.ProductEvent) bool
}

// Guards run strictly in order and short-circuit on the first hit.
var eventGuards = []eventGuard{
	{
		reason: "resource creation notifications are not processed",
		level:  slog.LevelError,
		skips: func(ev *models.ProductEvent) bool {
			return ev.NotificationType == notificationResourceCreated
		},
	},
	{
		reason: "event type is not " + eventProductVariantAdded,
		level:  slog.LevelError,
		skips: func(ev *models.ProductEvent) bool {
			return ev.Type != eventProductVariantAdded
		},
	},
	{
		reason: "variant carries no image URL",
		level:  slog.LevelError,
		skips: func(ev *models.ProductEvent) bool {
			return ev.FirstImageURL() == ""
		},
	},
}

type productGuard struct {
	reason string
	level  slog.Level
	skips  func(*models.Product) bool
}

var productGuards = []productGuard{
	{
		reason: "product name or product type is missing",
		level:  slog.LevelError,
		skips: func(p *models.Product) bool {
			return p.Name(NameLocale) == "" || p.ProductType.ID == ""
		},
	},
	{
		reason: "product has no staged attributes",
		level:  slog.LevelError,
		skips: func(p *models.Product) bool {
			return len(p.StagedAttributes()) == 0
		},
	},
	{
		reason: "attribute " + GenerateDescriptionAttr + " is missing",
		level:  slog.LevelError,
		skips: func(p *models.Product) bool {
			return p.FindAttribute(GenerateDescriptionAttr) == nil
		},
	},
	{
		reason: "automatic description generation is not enabled",
		level:  slog.LevelInfo,
		skips: func(p *models.Product) bool {
			return !p.FindAttribute(GenerateDescriptionAttr).Truthy()
		},
	},
}

// CheckEvent evaluates the event-stage guards against the decoded event.
func CheckEvent(ev *models.ProductEvent) Decision {
	for _, g := range eventGuards {
		if g.skips(ev) {
			return skip(g.reason, g.level)
		}
	}
	return proceed()
}

// CheckProduct evaluates the product-stage guards against the fetched
// product record.
func CheckProduct(p *models.Product) Decision {
	for _, g := range productGuards {
		if g.skips(p) {
			return skip(g.reason, g.level)
		}
	}
	return proceed()
}
