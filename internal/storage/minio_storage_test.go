package storage

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/klyra-app/ephemera-go/internal/usecase/media"

	"github.com/minio/minio-go/v7"
)

type mockMinio struct {
	bucketExistsFn       func(ctx context.Context, bucketName string) (bool, error)
	makeBucketFn         func(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	removeObjectFn       func(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	presignedGetObjectFn func(ctx context.Context, bucket, key string, expiry time.Duration, params url.Values) (*url.URL, error)
	statObjectFn         func(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

func (m *mockMinio) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return m.bucketExistsFn(ctx, bucketName)
}
func (m *mockMinio) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return m.makeBucketFn(ctx, bucketName, opts)
}
func (m *mockMinio) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return m.removeObjectFn(ctx, bucketName, objectName, opts)
}
func (m *mockMinio) PresignedGetObject(ctx context.Context, bucket, key string, expiry time.Duration, params url.Values) (*url.URL, error) {
	return m.presignedGetObjectFn(ctx, bucket, key, expiry, params)
}
func (m *mockMinio) StatObject(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return m.statObjectFn(ctx, bucket, key, opts)
}

func TestInitBucket(t *testing.T) {
	tests := []struct {
		name           string
		exists         bool
		existsErr      error
		makeErr        error
		wantMakeCalled bool
		wantErr        bool
	}{
		{
			name:           "bucket exists, no create",
			exists:         true,
			wantMakeCalled: false,
		},
		{
			name:           "bucket does not exist, create succeeds",
			exists:         false,
			wantMakeCalled: true,
		},
		{
			name:      "BucketExists error bubbles up",
			existsErr: errors.New("exist fail"),
			wantErr:   true,
		},
		{
			name:           "MakeBucket error bubbles up",
			exists:         false,
			makeErr:        errors.New("make fail"),
			wantMakeCalled: true,
			wantErr:        true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			makeCalled := false

			mock := &mockMinio{
				bucketExistsFn: func(ctx context.Context, bucketName string) (bool, error) {
					return tc.exists, tc.existsErr
				},
				makeBucketFn: func(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
					makeCalled = true
					return tc.makeErr
				},
			}

			strg := &MinioStorage{client: mock}
			err := strg.InitBucket("my-bucket")

			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if makeCalled != tc.wantMakeCalled {
				t.Errorf("MakeBucket called = %t; want %t", makeCalled, tc.wantMakeCalled)
			}
		})
	}
}

func TestGeneratePresignedDownloadURL(t *testing.T) {
	want := "https://minio.local/my-bucket/chat-1/media.jpg?sig=abc"
	mock := &mockMinio{
		presignedGetObjectFn: func(ctx context.Context, bucket, key string, expiry time.Duration, params url.Values) (*url.URL, error) {
			if bucket != "my-bucket" || key != "chat-1/media.jpg" {
				t.Errorf("unexpected args: bucket=%q key=%q", bucket, key)
			}
			if expiry != 5*time.Minute {
				t.Errorf("expiry = %v; want 5m", expiry)
			}
			return url.Parse(want)
		},
	}

	strg := &MinioStorage{client: mock}
	got, err := strg.GeneratePresignedDownloadURL(context.Background(), "my-bucket", "chat-1/media.jpg", 5*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("url = %q; want %q", got, want)
	}
}

func TestFileExists(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		mock := &mockMinio{
			statObjectFn: func(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
				return minio.ObjectInfo{Size: 42}, nil
			},
		}
		strg := &MinioStorage{client: mock}
		ok, err := strg.FileExists(context.Background(), "my-bucket", "chat-1/media.jpg")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Error("expected the file to exist")
		}
	})

	t.Run("missing key is not an error", func(t *testing.T) {
		mock := &mockMinio{
			statObjectFn: func(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
				return minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"}
			},
		}
		strg := &MinioStorage{client: mock}
		ok, err := strg.FileExists(context.Background(), "my-bucket", "gone.jpg")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected the file to be missing")
		}
	})

	t.Run("access denied maps to ErrUnauthorized", func(t *testing.T) {
		mock := &mockMinio{
			statObjectFn: func(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
				return minio.ObjectInfo{}, minio.ErrorResponse{Code: "AccessDenied"}
			},
		}
		strg := &MinioStorage{client: mock}
		if _, err := strg.FileExists(context.Background(), "my-bucket", "secret.jpg"); !errors.Is(err, media.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestRemoveFile(t *testing.T) {
	var removedBucket, removedKey string
	mock := &mockMinio{
		removeObjectFn: func(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
			removedBucket, removedKey = bucketName, objectName
			return nil
		},
	}

	strg := &MinioStorage{client: mock}
	if err := strg.RemoveFile(context.Background(), "my-bucket", "chat-1/media.jpg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removedBucket != "my-bucket" || removedKey != "chat-1/media.jpg" {
		t.Errorf("removed %q/%q; want my-bucket/chat-1/media.jpg", removedBucket, removedKey)
	}
}
