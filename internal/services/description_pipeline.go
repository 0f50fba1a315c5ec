package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/amal-thomson/pixelphraser/internal/models"
	"github.com/amal-thomson/pixelphraser/pkg/metrics"
)

// ProductFetcher retrieves the full product record by id.
type ProductFetcher interface {
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
}

// TypeKeyResolver resolves a product-type id to its human-readable key.
type TypeKeyResolver interface {
	Resolve(ctx context.Context, typeID string) (string, error)
}

// VisionAnalyzer reads a product image.
type VisionAnalyzer interface {
	Analyze(ctx context.Context, imageURL string) (*models.ImageAnalysis, error)
}

// DescriptionGenerator produces a canonical description from an analysis.
type DescriptionGenerator interface {
	Generate(ctx context.Context, analysis *models.ImageAnalysis, productName, productTypeKey string) (string, error)
}

// Translator renders a description into the three supported locales.
type Translator interface {
	Translate(ctx context.Context, description string) (*models.Translations, error)
}

// DescriptionWriter performs the two-phase durable write.
type DescriptionWriter interface {
	CreatePlaceholder(ctx context.Context, productID, imageURL, productName, productTypeKey string) (*models.CustomObject, error)
	UpdateWithTranslations(ctx context.Context, productID, productName, imageURL string, translations *models.Translations, productTypeKey string) (*models.CustomObject, error)
}

// AckFunc commits the invocation to the caller. Once called, the upstream
// notification will not be re-delivered, so everything after it must run to
// completion or fail silently.
type AckFunc func()

// OutcomeKind classifies the exit path of a pipeline run so the transport
// layer can map it to a response.
type OutcomeKind int

const (
	// OutcomeCompleted means the full pipeline ran and the record was updated.
	OutcomeCompleted OutcomeKind = iota
	// OutcomeSkipped means a guard decided the event is not actionable.
	OutcomeSkipped
	// OutcomeFetchFailed means the product lookup failed before the ack.
	OutcomeFetchFailed
	// OutcomeResolveFailed means type-key resolution failed before the ack.
	OutcomeResolveFailed
	// OutcomeFailed means a step after the ack failed; the response channel
	// is already closed.
	OutcomeFailed
)

// Outcome is the terminal state of one invocation.
type Outcome struct {
	Kind   OutcomeKind
	Phase  Phase
	Reason string
	Err    error
}

// DescriptionPipeline drives one notification through eligibility checks,
// the AI stages and the two-phase record write, in a fixed order.
type DescriptionPipeline struct {
	products   ProductFetcher
	types      TypeKeyResolver
	vision     VisionAnalyzer
	generator  DescriptionGenerator
	translator Translator
	store      DescriptionWriter
	runs       *RunRecorder
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewDescriptionPipeline(
	products ProductFetcher,
	types TypeKeyResolver,
	vision VisionAnalyzer,
	generator DescriptionGenerator,
	translator Translator,
	store DescriptionWriter,
	runs *RunRecorder,
	metrics *metrics.Metrics,
	logger *slog.Logger,
) *DescriptionPipeline {
	return &DescriptionPipeline{
		products:   products,
		types:      types,
		vision:     vision,
		generator:  generator,
		translator: translator,
		store:      store,
		runs:       runs,
		metrics:    metrics,
		logger:     logger,
	}
}

// Run processes one decoded event. ack must send the caller-facing success
// response; the pipeline calls it exactly once, after type-key resolution
// and before any AI call or persistence.
func (p *DescriptionPipeline) Run(ctx context.Context, ev *models.ProductEvent, ack AckFunc) Outcome {
	p.metrics.IncConsumed()
	runID := uuid.NewString()
	productID := ev.Resource.ID
	log := p.logger.With(slog.String("run_id", runID), slog.String("product_id", productID))

	if d := CheckEvent(ev); !d.Proceed {
		return p.skipped(ctx, log, runID, productID, PhaseDecoded, d)
	}

	imageURL := ev.FirstImageURL()
	log.Info("processing event", slog.String("type", ev.Type), slog.String("image_url", imageURL))

	product, err := p.products.GetProduct(ctx, productID)
	if err != nil {
		log.Error("failed to fetch product", slog.Any("error", err))
		p.metrics.IncFailed()
		p.runs.MarkFailed(ctx, runID, productID, PhaseDecoded, err.Error())
		return Outcome{Kind: OutcomeFetchFailed, Phase: PhaseDecoded, Err: err}
	}

	if d := CheckProduct(product); !d.Proceed {
		return p.skipped(ctx, log, runID, productID, PhaseFilteredIn, d)
	}

	productName := product.Name(NameLocale)
	log.Info("product is eligible for generation",
		slog.String("product_name", productName),
		slog.String("product_type_id", product.ProductType.ID))

	productTypeKey, err := p.types.Resolve(ctx, product.ProductType.ID)
	if err != nil {
		log.Error("failed to resolve product type key",
			slog.String("product_type_id", product.ProductType.ID),
			slog.Any("error", err))
		p.metrics.IncFailed()
		p.runs.MarkFailed(ctx, runID, productID, PhaseFilteredIn, err.Error())
		return Outcome{Kind: OutcomeResolveFailed, Phase: PhaseFilteredIn, Err: err}
	}

	p.runs.MarkProcessing(ctx, runID, productID, PhaseTypeResolved, imageURL)

	// Commit point. After ack() the notification will not be re-delivered;
	// the remaining steps run detached from the inbound request's cancellation.
	ack()
	ctx = context.WithoutCancel(ctx)
	log.Info("acknowledged, starting generation", slog.String("product_type_key", productTypeKey))
	p.runs.MarkProcessing(ctx, runID, productID, PhaseAcknowledged, imageURL)

	analysis, err := p.vision.Analyze(ctx, imageURL)
	if err != nil {
		return p.failed(ctx, log, runID, productID, PhaseAcknowledged, "vision analysis", err)
	}

	description, err := p.generator.Generate(ctx, analysis, productName, productTypeKey)
	if err != nil {
		return p.failed(ctx, log, runID, productID, PhaseAnalyzed, "description generation", err)
	}

	translations, err := p.translator.Translate(ctx, description)
	if err != nil {
		return p.failed(ctx, log, runID, productID, PhaseDescribed, "translation", err)
	}

	if _, err := p.store.CreatePlaceholder(ctx, productID, imageURL, productName, productTypeKey); err != nil {
		return p.failed(ctx, log, runID, productID, PhaseTranslated, "placeholder create", err)
	}

	updated, err := p.store.UpdateWithTranslations(ctx, productID, productName, imageURL, translations, productTypeKey)
	if err != nil {
		return p.failed(ctx, log, runID, productID, PhaseCreated, "record update", err)
	}

	log.Info("description generated and persisted",
		slog.Int64("version", updated.Version),
		slog.String("product_type_key", productTypeKey))
	p.metrics.IncGenerated()
	p.runs.MarkCompleted(ctx, runID, productID, imageURL)
	return Outcome{Kind: OutcomeCompleted, Phase: PhaseDone}
}

func (p *DescriptionPipeline) skipped(ctx context.Context, log *slog.Logger, runID, productID string, phase Phase, d Decision) Outcome {
	log.Log(ctx, d.Level, "skipping event", slog.String("reason", d.Reason))
	p.metrics.IncSkipped()
	p.runs.MarkSkipped(ctx, runID, productID, phase, d.Reason)
	return Outcome{Kind: OutcomeSkipped, Phase: phase, Reason: d.Reason}
}

func (p *DescriptionPipeline) failed(ctx context.Context, log *slog.Logger, runID, productID string, phase Phase, step string, err error) Outcome {
	log.Error("pipeline step failed after acknowledgement",
		slog.String("step", step),
		slog.String("phase", phase.String()),
		slog.Any("error", err))
	p.metrics.IncFailed()
	p.runs.MarkFailed(ctx, runID, productID, phase, step+": "+err.Error())
	return Outcome{Kind: OutcomeFailed, Phase: phase, Err: err}
}
