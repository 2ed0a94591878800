package api

import (
	"errors"
	"net/http"

	"github.com/klyra-app/ephemera-go/internal/api_context"
	"github.com/klyra-app/ephemera-go/internal/logger"
	"github.com/klyra-app/ephemera-go/internal/port"
	"github.com/klyra-app/ephemera-go/internal/usecase/media"
)

// CloseMediaHandler triggers the explicit expiry of a media: every
// permission is revoked and ephemeral items get their blob burned.
func CloseMediaHandler(svc port.MediaCloser) http.HandlerFunc {
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

		if err := svc.CloseMedia(r.Context(), port.CloseMediaInput{MediaID: id, ActorID: actorID}); err != nil {
			switch {
			case errors.Is(err, media.ErrMediaNotFound):
				WriteError(w, http.StatusNotFound, "Media not found", nil)
			case errors.Is(err, media.ErrNotAuthorized):
				WriteError(w, http.StatusForbidden, "Only participants may close a media", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "Could not close media", err)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
		logger.Infof(r.Context(), "✅  Successfully closed media #%s", id)
	}
}
