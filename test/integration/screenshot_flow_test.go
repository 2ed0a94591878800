package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/klyra-app/ephemera-go/internal/model"
	"github.com/klyra-app/ephemera-go/internal/port"
	mediaSvc "github.com/klyra-app/ephemera-go/internal/usecase/media"
)

func TestScreenshotGrantIntegration(t *testing.T) {
	ctx := context.Background()
	svcs, cleanup := setupServices(t)
	defer cleanup()

	created := createMedia(t, svcs, nil)

	// only the owner controls screenshot rights
	err := svcs.granter.SetScreenshotPermission(ctx, port.SetScreenshotPermissionInput{
		MediaID: created.MediaID, OwnerID: aliceID, RecipientID: bobID, Mode: model.ScreenshotModeOn,
	})
	if !errors.Is(err, mediaSvc.ErrNotAuthorized) {
		t.Errorf("recipient grant error = %v; want %v", err, mediaSvc.ErrNotAuthorized)
	}

	// granting to a non-recipient targets no permission row
	err = svcs.granter.SetScreenshotPermission(ctx, port.SetScreenshotPermissionInput{
		MediaID: created.MediaID, OwnerID: ownerID, RecipientID: ownerID, Mode: model.ScreenshotModeOn,
	})
	if !errors.Is(err, mediaSvc.ErrPermissionNotFound) {
		t.Errorf("grant to stranger error = %v; want %v", err, mediaSvc.ErrPermissionNotFound)
	}

	if err := svcs.granter.SetScreenshotPermission(ctx, port.SetScreenshotPermissionInput{
		MediaID: created.MediaID, OwnerID: ownerID, RecipientID: aliceID, Mode: model.ScreenshotModeOn,
	}); err != nil {
		t.Fatalf("SetScreenshotPermission returned error: %v", err)
	}

	out, err := svcs.opener.OpenMedia(ctx, port.OpenMediaInput{MediaID: created.MediaID, ViewerID: aliceID})
	if err != nil {
		t.Fatalf("OpenMedia returned error: %v", err)
	}
	if !out.AllowScreenshot || out.ShouldBlur {
		t.Errorf("AllowScreenshot=%t ShouldBlur=%t; want granted, unblurred", out.AllowScreenshot, out.ShouldBlur)
	}

	// the grant is per recipient
	out, err = svcs.opener.OpenMedia(ctx, port.OpenMediaInput{MediaID: created.MediaID, ViewerID: bobID})
	if err != nil {
		t.Fatalf("bob OpenMedia returned error: %v", err)
	}
	if out.AllowScreenshot {
		t.Error("bob AllowScreenshot = true; grant to alice must not leak")
	}

	// flipping back off closes the gate again
	if err := svcs.granter.SetScreenshotPermission(ctx, port.SetScreenshotPermissionInput{
		MediaID: created.MediaID, OwnerID: ownerID, RecipientID: aliceID, Mode: model.ScreenshotModeOff,
	}); err != nil {
		t.Fatalf("revoke returned error: %v", err)
	}
	out, err = svcs.opener.OpenMedia(ctx, port.OpenMediaInput{MediaID: created.MediaID, ViewerID: aliceID})
	if err != nil {
		t.Fatalf("OpenMedia after revoke returned error: %v", err)
	}
	if out.AllowScreenshot {
		t.Error("AllowScreenshot = true after revoke; want false")
	}
}

func TestScreenshotReportIntegration(t *testing.T) {
	ctx := context.Background()
	svcs, cleanup := setupServices(t)
	defer cleanup()

	created := createMedia(t, svcs, nil)

	// the hook double-fires; both events land in the log
	for i := 0; i < 2; i++ {
		if err := svcs.reporter.ReportScreenshot(ctx, port.ReportScreenshotInput{
			MediaID: created.MediaID, ActorID: aliceID, Captured: true,
		}); err != nil {
			t.Fatalf("ReportScreenshot #%d returned error: %v", i+1, err)
		}
	}
	if err := svcs.reporter.ReportScreenshot(ctx, port.ReportScreenshotInput{
		MediaID: created.MediaID, ActorID: bobID, Captured: false,
	}); err != nil {
		t.Fatalf("blocked ReportScreenshot returned error: %v", err)
	}

	err := svcs.reporter.ReportScreenshot(ctx, port.ReportScreenshotInput{
		MediaID: created.MediaID, ActorID: mustUUID("99999999-9999-9999-9999-999999999999"), Captured: true,
	})
	if !errors.Is(err, mediaSvc.ErrNotAuthorized) {
		t.Errorf("stranger report error = %v; want %v", err, mediaSvc.ErrNotAuthorized)
	}

	out, err := svcs.lister.ListSecurityEvents(ctx, port.ListSecurityEventsInput{MediaID: created.MediaID, RequesterID: ownerID})
	if err != nil {
		t.Fatalf("ListSecurityEvents returned error: %v", err)
	}
	taken, attempted := 0, 0
	for _, ev := range out.Events {
		switch ev.Type {
		case model.EventScreenshotTaken:
			taken++
		case model.EventScreenshotAttempted:
			attempted++
		}
	}
	if taken != 2 {
		t.Errorf("screenshot_taken count = %d; want 2", taken)
	}
	if attempted != 1 {
		t.Errorf("screenshot_attempted count = %d; want 1", attempted)
	}
}
