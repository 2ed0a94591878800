package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/mock"
	mediaSvc "github.com/klyra-app/ephemera-go/internal/usecase/media"
)

func TestRequestScreenshotAccessHandler(t *testing.T) {
	tests := []struct {
		name       string
		mediaID    *db.UUID
		actorID    *db.UUID
		svcErr     error
		wantStatus int
	}{
		{"missing id", nil, &handlerActorID, nil, http.StatusBadRequest},
		{"missing actor", &handlerMediaID, nil, nil, http.StatusUnauthorized},
		{"not found", &handlerMediaID, &handlerActorID, mediaSvc.ErrMediaNotFound, http.StatusNotFound},
		{"owner or stranger", &handlerMediaID, &handlerActorID, mediaSvc.ErrNotAuthorized, http.StatusForbidden},
		{"success", &handlerMediaID, &handlerActorID, nil, http.StatusAccepted},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mock.AccessRequester{Err: tc.svcErr}
			req := httptest.NewRequest(http.MethodPost, "/medias/"+handlerMediaID.String()+"/request_screenshot", nil)
			req = withIdentity(req, tc.mediaID, tc.actorID)
			rr := httptest.NewRecorder()
			RequestScreenshotAccessHandler(svc).ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rr.Code, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusAccepted {
				if svc.In.MediaID != handlerMediaID || svc.In.RequesterID != handlerActorID {
					t.Errorf("service input = %+v", svc.In)
				}
			}
		})
	}
}
