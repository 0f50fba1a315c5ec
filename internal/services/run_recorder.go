package services

import (
	"context"
	"log/slog"

	"github.com/amal-thomson/pixelphraser/internal/repository"
)

const (
	StatusProcessing = "processing"
	StatusSkipped    = "skipped"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// RunRecorder writes the audit row for each invocation. Recording is
// fire-and-forget: a failed audit write is logged and never interrupts the
// pipeline. The recorder tolerates a nil store so the audit trail stays
// optional.
type RunRecorder struct {
	store  *repository.RunStore
	logger *slog.Logger
}

func NewRunRecorder(store *repository.RunStore, logger *slog.Logger) *RunRecorder {
	return &RunRecorder{
		store:  store,
		logger: logger,
	}
}

func (r *RunRecorder) MarkProcessing(ctx context.Context, runID, productID string, phase Phase, imageURL string) {
	r.mark(ctx, runID, productID, phase, StatusProcessing, "", imageURL)
}

func (r *RunRecorder) MarkSkipped(ctx context.Context, runID, productID string, phase Phase, reason string) {
	r.mark(ctx, runID, productID, phase, StatusSkipped, reason, "")
}

func (r *RunRecorder) MarkCompleted(ctx context.Context, runID, productID string, imageURL string) {
	r.mark(ctx, runID, productID, PhaseDone, StatusCompleted, "", imageURL)
}

func (r *RunRecorder) MarkFailed(ctx context.Context, runID, productID string, phase Phase, detail string) {
	r.mark(ctx, runID, productID, phase, StatusFailed, detail, "")
}

func (r *RunRecorder) mark(ctx context.Context, runID, productID string, phase Phase, status, detail, imageURL string) {
	if r == nil || r.store == nil {
		return
	}
	if err := r.store.UpsertRun(ctx, runID, productID, phase.String(), status, detail, imageURL); err != nil {
		r.logger.Error("failed to record pipeline run",
			slog.String("run_id", runID),
			slog.String("product_id", productID),
			slog.String("status", status),
			slog.Any("error", err))
	}
}
