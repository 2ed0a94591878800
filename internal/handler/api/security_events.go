package api

import (
	"errors"
	"net/http"

	"github.com/klyra-app/ephemera-go/internal/api_context"
	"github.com/klyra-app/ephemera-go/internal/logger"
	"github.com/klyra-app/ephemera-go/internal/port"
	"github.com/klyra-app/ephemera-go/internal/usecase/media"
)

// GetSecurityEventsHandler returns the media's audit trail to its owner.
func GetSecurityEventsHandler(renderer port.HTTPRenderer, svc port.SecurityEventsLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}
		requesterID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}

		raw, etag, err := renderer.RenderSecurityEvents(r.Context(), svc, id, requesterID)
		if err != nil {
			switch {
			case errors.Is(err, media.ErrMediaNotFound):
				WriteError(w, http.StatusNotFound, "Media not found", nil)
			case errors.Is(err, media.ErrNotAuthorized):
				WriteError(w, http.StatusForbidden, "Only the owner may read security events", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "Could not get security events", err)
			}
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "private, max-age=60")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			logger.Infof(r.Context(), "✅  Returning cached security events for media #%s", id)
			return
		}

		RespondRawJSON(w, http.StatusOK, raw)
		logger.Infof(r.Context(), "✅  Successfully returned security events for media #%s", id)
	}
}
