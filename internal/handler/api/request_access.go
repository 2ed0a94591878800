package api

import (
	"errors"
	"net/http"

	"github.com/klyra-app/ephemera-go/internal/api_context"
	"github.com/klyra-app/ephemera-go/internal/logger"
	"github.com/klyra-app/ephemera-go/internal/port"
	"github.com/klyra-app/ephemera-go/internal/usecase/media"
)

// RequestScreenshotAccessHandler records a recipient's ask for screenshot
// rights. It never changes any permission bit; the owner decides later.
func RequestScreenshotAccessHandler(svc port.AccessRequester) http.HandlerFunc {
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

		if err := svc.RequestScreenshotAccess(r.Context(), port.RequestScreenshotAccessInput{MediaID: id, RequesterID: requesterID}); err != nil {
			switch {
			case errors.Is(err, media.ErrMediaNotFound):
				WriteError(w, http.StatusNotFound, "Media not found", nil)
			case errors.Is(err, media.ErrNotAuthorized):
				WriteError(w, http.StatusForbidden, "Only recipients may request screenshot access", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "Could not record access request", err)
			}
			return
		}

		w.WriteHeader(http.StatusAccepted)
		logger.Infof(r.Context(), "✅  Recorded screenshot access request on media #%s", id)
	}
}
