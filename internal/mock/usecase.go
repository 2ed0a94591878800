package mock

import (
	"context"

	"github.com/klyra-app/ephemera-go/internal/port"
)

// MediaCreator implements port.MediaCreator for tests.
type MediaCreator struct {
	In     port.CreateMediaInput
	Out    port.CreateMediaOutput
	Err    error
	Called bool
}

func (m *MediaCreator) CreateMedia(ctx context.Context, in port.CreateMediaInput) (port.CreateMediaOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// MediaOpener implements port.MediaOpener for tests.
type MediaOpener struct {
	In     port.OpenMediaInput
	Out    port.OpenMediaOutput
	Err    error
	Called bool
}

func (m *MediaOpener) OpenMedia(ctx context.Context, in port.OpenMediaInput) (port.OpenMediaOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// MediaCloser implements port.MediaCloser for tests.
type MediaCloser struct {
	In     port.CloseMediaInput
	Err    error
	Called bool
}

func (m *MediaCloser) CloseMedia(ctx context.Context, in port.CloseMediaInput) error {
	m.Called = true
	m.In = in
	return m.Err
}

// ScreenshotGranter implements port.ScreenshotGranter for tests.
type ScreenshotGranter struct {
	In     port.SetScreenshotPermissionInput
	Err    error
	Called bool
}

func (m *ScreenshotGranter) SetScreenshotPermission(ctx context.Context, in port.SetScreenshotPermissionInput) error {
	m.Called = true
	m.In = in
	return m.Err
}

// AccessRequester implements port.AccessRequester for tests.
type AccessRequester struct {
	In     port.RequestScreenshotAccessInput
	Err    error
	Called bool
}

func (m *AccessRequester) RequestScreenshotAccess(ctx context.Context, in port.RequestScreenshotAccessInput) error {
	m.Called = true
	m.In = in
	return m.Err
}

// ScreenshotReporter implements port.ScreenshotReporter for tests.
type ScreenshotReporter struct {
	In     port.ReportScreenshotInput
	Err    error
	Called bool
}

func (m *ScreenshotReporter) ReportScreenshot(ctx context.Context, in port.ReportScreenshotInput) error {
	m.Called = true
	m.In = in
	return m.Err
}

// SecurityEventsLister implements port.SecurityEventsLister for tests.
type SecurityEventsLister struct {
	In     port.ListSecurityEventsInput
	Out    port.ListSecurityEventsOutput
	Err    error
	Called bool
}

func (m *SecurityEventsLister) ListSecurityEvents(ctx context.Context, in port.ListSecurityEventsInput) (port.ListSecurityEventsOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// ScreenshotNotifier implements port.ScreenshotNotifier for tests.
type ScreenshotNotifier struct {
	In     port.NotifyScreenshotInput
	Err    error
	Called bool
}

func (m *ScreenshotNotifier) NotifyScreenshot(ctx context.Context, in port.NotifyScreenshotInput) error {
	m.Called = true
	m.In = in
	return m.Err
}

// MediaBurner implements port.MediaBurner for tests.
type MediaBurner struct {
	In     port.BurnMediaInput
	Err    error
	Called bool
}

func (m *MediaBurner) BurnMedia(ctx context.Context, in port.BurnMediaInput) error {
	m.Called = true
	m.In = in
	return m.Err
}
