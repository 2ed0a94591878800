package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	guuid "github.com/google/uuid"
	"github.com/klyra-app/ephemera-go/internal/api_context"
	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/logger"
	"github.com/klyra-app/ephemera-go/internal/model"
	"github.com/klyra-app/ephemera-go/internal/port"
	"github.com/klyra-app/ephemera-go/internal/usecase/media"
	"github.com/klyra-app/ephemera-go/internal/validation"
)

type SetScreenshotPermissionRequest struct {
	RecipientID string `json:"recipient_id" validate:"required,uuid"`
	Mode        string `json:"mode" validate:"required,oneof=off on on_for_10_min"`
}

// SetScreenshotPermissionHandler lets the owner change a recipient's
// screenshot rights.
func SetScreenshotPermissionHandler(svc port.ScreenshotGranter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}
		ownerID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}

		var req SetScreenshotPermissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request", fmt.Errorf("invalid JSON: %w", err))
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "Validation error (could not encode details)", fmt.Errorf("encoding validation errors: %w", err))
				return
			}

			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		recipientID, _ := guuid.Parse(req.RecipientID)
		in := port.SetScreenshotPermissionInput{
			MediaID:     id,
			OwnerID:     ownerID,
			RecipientID: db.UUID(recipientID),
			Mode:        model.ScreenshotMode(req.Mode),
		}
		if err := svc.SetScreenshotPermission(r.Context(), in); err != nil {
			switch {
			case errors.Is(err, media.ErrMediaNotFound):
				WriteError(w, http.StatusNotFound, "Media not found", nil)
			case errors.Is(err, media.ErrNotAuthorized):
				WriteError(w, http.StatusForbidden, "Only the owner may change screenshot rights", nil)
			case errors.Is(err, media.ErrPermissionNotFound):
				WriteError(w, http.StatusNotFound, "Recipient has no permission on this media", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "Could not update screenshot permission", err)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
		logger.Infof(r.Context(), "✅  Successfully set screenshot mode %q on media #%s", req.Mode, id)
	}
}
