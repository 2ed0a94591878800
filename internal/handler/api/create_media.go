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

type CreateMediaRequest struct {
	ContextID        string   `json:"context_id" validate:"required,uuid"`
	ObjectKey        string   `json:"object_key" validate:"required,max=512"`
	Kind             string   `json:"kind" validate:"required,oneof=image video"`
	Recipients       []string `json:"recipients" validate:"required,min=1,dive,uuid"`
	TimerSeconds     *int     `json:"timer_seconds" validate:"omitempty,gt=0"`
	ViewOnce         bool     `json:"view_once"`
	WatermarkEnabled bool     `json:"watermark_enabled"`
}

// CreateMediaHandler registers a protected media item and fans out one
// permission per recipient. The authenticated caller becomes the owner.
func CreateMediaHandler(svc port.MediaCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}

		var req CreateMediaRequest
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

			// return the validation errors payload directly
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		contextID, _ := guuid.Parse(req.ContextID)
		recipients := make([]db.UUID, 0, len(req.Recipients))
		for _, raw := range req.Recipients {
			rid, _ := guuid.Parse(raw)
			recipients = append(recipients, db.UUID(rid))
		}

		in := port.CreateMediaInput{
			ContextID:        db.UUID(contextID),
			OwnerID:          ownerID,
			ObjectKey:        req.ObjectKey,
			Kind:             model.MediaKind(req.Kind),
			Recipients:       recipients,
			TimerSeconds:     req.TimerSeconds,
			ViewOnce:         req.ViewOnce,
			WatermarkEnabled: req.WatermarkEnabled,
		}
		out, err := svc.CreateMedia(r.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, media.ErrInvalidTimer), errors.Is(err, media.ErrInvalidRecipient):
				WriteError(w, http.StatusBadRequest, err.Error(), nil)
			case errors.Is(err, media.ErrPermissionExists):
				WriteError(w, http.StatusConflict, "Duplicate recipient", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "Could not create media", err)
			}
			return
		}

		RespondJSON(w, http.StatusCreated, out)
		logger.Infof(r.Context(), "✅  Successfully created media #%s", out.MediaID)
	}
}
