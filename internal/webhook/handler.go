package webhook

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/amal-thomson/pixelphraser/internal/models"
	"github.com/amal-thomson/pixelphraser/internal/services"
)

// EventHandler is the inbound push endpoint. It owns the response-code
// mapping: 200 for every no-op, skip and success path, 500 only when
// type-key resolution fails before the acknowledgement.
type EventHandler struct {
	pipeline *services.DescriptionPipeline
	logger   *slog.Logger
}

func NewEventHandler(pipeline *services.DescriptionPipeline, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		pipeline: pipeline,
		logger:   logger,
	}
}

func (h *EventHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var envelope models.PubSubEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		h.logger.Error("failed to decode push envelope", slog.Any("error", err))
		w.WriteHeader(http.StatusOK)
		return
	}

	event, ok, err := DecodeEvent(&envelope.Message)
	if err != nil {
		// Malformed payload ends the invocation without an explicit status;
		// the event cannot be acted on and a retry would not change that.
		h.logger.Error("malformed notification payload",
			slog.String("message_id", envelope.Message.MessageID),
			slog.Any("error", err))
		return
	}
	if !ok {
		h.logger.Info("no data in notification, nothing to do",
			slog.String("message_id", envelope.Message.MessageID))
		w.WriteHeader(http.StatusOK)
		return
	}

	outcome := h.pipeline.Run(r.Context(), event, func() {
		w.WriteHeader(http.StatusOK)
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	})

	switch outcome.Kind {
	case services.OutcomeSkipped:
		w.WriteHeader(http.StatusOK)
	case services.OutcomeResolveFailed:
		w.WriteHeader(http.StatusInternalServerError)
	case services.OutcomeFetchFailed:
		// Logged in the pipeline; no explicit status is written.
	default:
		// Completed or failed after the ack: the response went out at the
		// commit point, nothing more may be written.
	}
}
