package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/mock"
	"github.com/klyra-app/ephemera-go/internal/task"
)

func TestNotifyScreenshotHandler_InvalidIDs(t *testing.T) {
	svc := &mock.ScreenshotNotifier{}

	err := NotifyScreenshotHandler(context.Background(), task.NotifyScreenshotPayload{MediaID: "invalid", ActorID: uuid.NewString()}, svc)
	if err == nil {
		t.Fatal("expected error for invalid media UUID")
	}
	err = NotifyScreenshotHandler(context.Background(), task.NotifyScreenshotPayload{MediaID: uuid.NewString(), ActorID: "invalid"}, svc)
	if err == nil {
		t.Fatal("expected error for invalid actor UUID")
	}
	if svc.Called {
		t.Error("service should not be called on invalid ids")
	}
}

func TestNotifyScreenshotHandler_ServiceError(t *testing.T) {
	svcErr := errors.New("svc fail")
	svc := &mock.ScreenshotNotifier{Err: svcErr}

	err := NotifyScreenshotHandler(context.Background(), task.NotifyScreenshotPayload{MediaID: uuid.NewString(), ActorID: uuid.NewString()}, svc)
	if !errors.Is(err, svcErr) {
		t.Fatalf("got error %v; want %v", err, svcErr)
	}
}

func TestNotifyScreenshotHandler_Success(t *testing.T) {
	mediaID := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	actorID := db.UUID(uuid.MustParse("22222222-2222-2222-2222-222222222222"))
	svc := &mock.ScreenshotNotifier{}

	err := NotifyScreenshotHandler(context.Background(), task.NotifyScreenshotPayload{MediaID: mediaID.String(), ActorID: actorID.String()}, svc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.Called {
		t.Error("service not called")
	}
	if svc.In.MediaID != mediaID || svc.In.ActorID != actorID {
		t.Errorf("service got (%s, %s); want (%s, %s)", svc.In.MediaID, svc.In.ActorID, mediaID, actorID)
	}
}
