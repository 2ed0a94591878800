package api

import (
	"errors"
	"net/http"

	"github.com/klyra-app/ephemera-go/internal/api_context"
	"github.com/klyra-app/ephemera-go/internal/logger"
	"github.com/klyra-app/ephemera-go/internal/port"
	"github.com/klyra-app/ephemera-go/internal/usecase/media"
)

// OpenMediaHandler starts a view session: on success it returns the
// short-lived download locator and the display flags the client must apply.
func OpenMediaHandler(svc port.MediaOpener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}
		viewerID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}

		out, err := svc.OpenMedia(r.Context(), port.OpenMediaInput{MediaID: id, ViewerID: viewerID})
		if err != nil {
			if ae, isAccess := media.AsAccessError(err); isAccess {
				WriteAccessDenied(r.Context(), w, ae)
				return
			}
			if errors.Is(err, media.ErrMediaNotFound) {
				WriteError(w, http.StatusNotFound, "Media not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not open media", err)
			return
		}

		w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
		RespondJSON(w, http.StatusOK, out)
		logger.Infof(r.Context(), "✅  Successfully opened media #%s", id)
	}
}
