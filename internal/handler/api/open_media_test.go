package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/klyra-app/ephemera-go/internal/api_context"
	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/mock"
	"github.com/klyra-app/ephemera-go/internal/port"
	mediaSvc "github.com/klyra-app/ephemera-go/internal/usecase/media"
)

var (
	handlerMediaID = db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	handlerActorID = db.UUID(uuid.MustParse("22222222-2222-2222-2222-222222222222"))
)

// withIdentity stashes the media ID and the authenticated actor in the
// request context the way the middleware chain does.
func withIdentity(r *http.Request, mediaID, actorID *db.UUID) *http.Request {
	ctx := r.Context()
	if mediaID != nil {
		ctx = context.WithValue(ctx, api_context.IDKey, *mediaID)
	}
	if actorID != nil {
		ctx = context.WithValue(ctx, api_context.AuthUserIDKey, *actorID)
	}
	return r.WithContext(ctx)
}

func TestOpenMediaHandler(t *testing.T) {
	tests := []struct {
		name       string
		mediaID    *db.UUID
		actorID    *db.UUID
		svcOut     port.OpenMediaOutput
		svcErr     error
		wantStatus int
		wantReason string
	}{
		{
			name:       "missing id in context",
			actorID:    &handlerActorID,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing actor in context",
			mediaID:    &handlerMediaID,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not found",
			mediaID:    &handlerMediaID,
			actorID:    &handlerActorID,
			svcErr:     mediaSvc.ErrMediaNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "expired access",
			mediaID:    &handlerMediaID,
			actorID:    &handlerActorID,
			svcErr:     mediaSvc.NewAccessError(mediaSvc.AccessExpired),
			wantStatus: http.StatusForbidden,
			wantReason: "expired",
		},
		{
			name:       "view once consumed",
			mediaID:    &handlerMediaID,
			actorID:    &handlerActorID,
			svcErr:     mediaSvc.NewAccessError(mediaSvc.AccessViewOnceConsumed),
			wantStatus: http.StatusForbidden,
			wantReason: "view_once_consumed",
		},
		{
			name:       "internal error",
			mediaID:    &handlerMediaID,
			actorID:    &handlerActorID,
			svcErr:     errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:    "success",
			mediaID: &handlerMediaID,
			actorID: &handlerActorID,
			svcOut: port.OpenMediaOutput{
				URL:             "https://minio.local/medias/chat-1/media.jpg?sig=abc",
				AllowScreenshot: false,
				ShouldBlur:      true,
				ViewCount:       1,
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mock.MediaOpener{Out: tc.svcOut, Err: tc.svcErr}
			handler := OpenMediaHandler(svc)

			req := httptest.NewRequest(http.MethodPost, "/medias/"+handlerMediaID.String()+"/open", nil)
			req = withIdentity(req, tc.mediaID, tc.actorID)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rr.Code, tc.wantStatus)
			}

			if tc.wantReason != "" {
				var resp ErrorResponse
				if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshal body: %v", err)
				}
				if resp.Reason != tc.wantReason {
					t.Errorf("reason = %q; want %q", resp.Reason, tc.wantReason)
				}
			}

			if tc.wantStatus == http.StatusOK {
				if cc := rr.Header().Get("Cache-Control"); cc != "no-store, max-age=0, must-revalidate" {
					t.Errorf("Cache-Control = %q; a locator response must never be cached", cc)
				}
				var out port.OpenMediaOutput
				if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
					t.Fatalf("unmarshal body: %v", err)
				}
				if out.URL != tc.svcOut.URL || out.ShouldBlur != tc.svcOut.ShouldBlur {
					t.Errorf("body = %+v; want %+v", out, tc.svcOut)
				}
				if svc.In.MediaID != handlerMediaID || svc.In.ViewerID != handlerActorID {
					t.Errorf("service input = %+v", svc.In)
				}
			}
		})
	}
}
