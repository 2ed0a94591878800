package media

import (
	"context"
	"time"

	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/model"
	"github.com/klyra-app/ephemera-go/internal/port"
)

type mockMediaRepo struct {
	mediaRecord *model.MediaItem

	getErr    error
	createErr error
	expireErr error

	expireRevoked int64

	getCalled    bool
	createdMedia *model.MediaItem
	createdPerms []*model.Permission
	expireCalled bool
	expireIn     port.ExpireMediaInput
}

func (m *mockMediaRepo) Create(ctx context.Context, media *model.MediaItem, perms []*model.Permission) error {
	m.createdMedia = media
	m.createdPerms = perms
	return m.createErr
}
func (m *mockMediaRepo) GetByID(ctx context.Context, id db.UUID) (*model.MediaItem, error) {
	m.getCalled = true
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.mediaRecord, nil
}
func (m *mockMediaRepo) Expire(ctx context.Context, in port.ExpireMediaInput) (int64, error) {
	m.expireCalled = true
	m.expireIn = in
	if m.expireErr != nil {
		return 0, m.expireErr
	}
	if m.expireRevoked > 0 && in.Event.Metadata != nil {
		in.Event.Metadata["revoked_permissions"] = m.expireRevoked
	}
	return m.expireRevoked, nil
}

type mockPermRepo struct {
	permRecord *model.Permission

	findErr          error
	createErr        error
	consumeErr       error
	setScreenshotErr error

	consumeApplied   bool
	consumeViewCount int

	findCalled          bool
	createdPerm         *model.Permission
	consumeCalled       bool
	consumeIn           port.ConsumeOpenInput
	setScreenshotCalled bool
	setCanScreenshot    bool
	setAllowedUntil     *time.Time

	// onConsume lets a test mutate the record the way the real guarded
	// update does, so a later re-read sees the post-consume state
	onConsume func()
}

func (m *mockPermRepo) Create(ctx context.Context, perm *model.Permission) error {
	m.createdPerm = perm
	return m.createErr
}
func (m *mockPermRepo) Find(ctx context.Context, mediaID, recipientID db.UUID) (*model.Permission, error) {
	m.findCalled = true
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.permRecord, nil
}
func (m *mockPermRepo) ConsumeOpen(ctx context.Context, in port.ConsumeOpenInput) (bool, int, error) {
	m.consumeCalled = true
	m.consumeIn = in
	if m.consumeErr != nil {
		return false, 0, m.consumeErr
	}
	if m.onConsume != nil {
		m.onConsume()
	}
	if !m.consumeApplied {
		return false, 0, nil
	}
	if in.Event.Metadata != nil {
		in.Event.Metadata["view_count"] = m.consumeViewCount
	}
	return true, m.consumeViewCount, nil
}
func (m *mockPermRepo) SetScreenshot(ctx context.Context, mediaID, recipientID db.UUID, canScreenshot bool, allowedUntil *time.Time) error {
	m.setScreenshotCalled = true
	m.setCanScreenshot = canScreenshot
	m.setAllowedUntil = allowedUntil
	return m.setScreenshotErr
}

type mockEventRepo struct {
	appendErr           error
	appendScreenshotErr error
	listErr             error

	screenshotFirst bool
	listOut         []model.SecurityEvent

	appended         []*model.SecurityEvent
	screenshotEvents []*model.SecurityEvent
	listCalled       bool
}

func (m *mockEventRepo) Append(ctx context.Context, ev *model.SecurityEvent) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.appended = append(m.appended, ev)
	return nil
}
func (m *mockEventRepo) AppendScreenshot(ctx context.Context, ev *model.SecurityEvent) (bool, error) {
	if m.appendScreenshotErr != nil {
		return false, m.appendScreenshotErr
	}
	m.screenshotEvents = append(m.screenshotEvents, ev)
	return m.screenshotFirst, nil
}
func (m *mockEventRepo) ListByMedia(ctx context.Context, mediaID db.UUID) ([]model.SecurityEvent, error) {
	m.listCalled = true
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listOut, nil
}

type mockStorage struct {
	url        string
	fileExists bool

	initErr     error
	downloadErr error
	existsErr   error
	removeErr   error

	downloadCalled bool
	downloadKey    string
	downloadTTL    time.Duration
	existsCalled   bool
	removeCalled   bool
	removedKey     string
}

func (m *mockStorage) InitBucket(bucket string) error { return m.initErr }
func (m *mockStorage) GeneratePresignedDownloadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error) {
	m.downloadCalled = true
	m.downloadKey = fileKey
	m.downloadTTL = expiry
	if m.downloadErr != nil {
		return "", m.downloadErr
	}
	return m.url, nil
}
func (m *mockStorage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	m.existsCalled = true
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.fileExists, nil
}
func (m *mockStorage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	m.removeCalled = true
	m.removedKey = fileKey
	return m.removeErr
}

type mockCache struct {
	delEventsCalled bool
	delEtagCalled   bool
}

func (m *mockCache) GetSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) ([]byte, error) {
	return nil, nil
}
func (m *mockCache) GetEtagSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) (string, error) {
	return "", nil
}
func (m *mockCache) SetSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID, data []byte, validUntil time.Time) {
}
func (m *mockCache) SetEtagSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID, etag string, validUntil time.Time) {
}
func (m *mockCache) DeleteSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) error {
	m.delEventsCalled = true
	return nil
}
func (m *mockCache) DeleteEtagSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) error {
	m.delEtagCalled = true
	return nil
}

type mockDispatcher struct {
	burnErr   error
	notifyErr error

	burnCalled    bool
	burnKey       string
	notifyCalled  bool
	notifiedActor db.UUID
}

func (m *mockDispatcher) EnqueueBurnMedia(ctx context.Context, mediaID db.UUID, objectKey string) error {
	m.burnCalled = true
	m.burnKey = objectKey
	return m.burnErr
}
func (m *mockDispatcher) EnqueueNotifyScreenshot(ctx context.Context, mediaID, actorID db.UUID) error {
	m.notifyCalled = true
	m.notifiedActor = actorID
	return m.notifyErr
}

type mockPublisher struct {
	publishErr error

	publishCalled    bool
	publishedContext db.UUID
	publishedMedia   db.UUID
	publishedActor   db.UUID
}

func (m *mockPublisher) PublishScreenshotAlert(ctx context.Context, contextID, mediaID, actorID db.UUID) error {
	m.publishCalled = true
	m.publishedContext = contextID
	m.publishedMedia = mediaID
	m.publishedActor = actorID
	return m.publishErr
}

// fixedClock returns a Clock pinned to the given instant.
func fixedClock(at time.Time) port.Clock {
	return func() time.Time { return at }
}
