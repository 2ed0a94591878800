package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/klyra-app/ephemera-go/internal/api_context"
	"github.com/klyra-app/ephemera-go/internal/logger"
	"github.com/klyra-app/ephemera-go/internal/port"
	"github.com/klyra-app/ephemera-go/internal/usecase/media"
)

type ReportScreenshotRequest struct {
	// Captured is true when the screenshot actually went through, false
	// when the client blocked the attempt.
	Captured bool `json:"captured"`
}

// ReportScreenshotHandler ingests OS-level screenshot signals from clients.
func ReportScreenshotHandler(svc port.ScreenshotReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}
		actorID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}

		var req ReportScreenshotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request", fmt.Errorf("invalid JSON: %w", err))
			return
		}

		in := port.ReportScreenshotInput{MediaID: id, ActorID: actorID, Captured: req.Captured}
		if err := svc.ReportScreenshot(r.Context(), in); err != nil {
			switch {
			case errors.Is(err, media.ErrMediaNotFound):
				WriteError(w, http.StatusNotFound, "Media not found", nil)
			case errors.Is(err, media.ErrNotAuthorized):
				WriteError(w, http.StatusForbidden, "Only participants may report screenshots", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "Could not record screenshot", err)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
		logger.Infof(r.Context(), "✅  Recorded screenshot report on media #%s (captured=%t)", id, req.Captured)
	}
}
