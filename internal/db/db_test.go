package db

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestNew_PingError ensures that ping failures are propagated
// even when closing the connection succeeds.
func TestNew_PingError(t *testing.T) {
	// Use an unreachable DSN to trigger ping error quickly
	dsn := "invalid:invalid@tcp(127.0.0.1:0)/dbname"
	db, err := New(dsn, 1, 1, time.Second)
	if err == nil {
		if db != nil {
			db.Close()
		}
		t.Fatalf("expected error, got nil")
	}
}

func TestUUID_ScanRoundTrip(t *testing.T) {
	orig := UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))

	val, err := orig.Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}
	raw, ok := val.([]byte)
	if !ok || len(raw) != 16 {
		t.Fatalf("Value = %T of len %d; want 16 raw bytes", val, len(raw))
	}

	var scanned UUID
	if err := scanned.Scan(raw); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if scanned != orig {
		t.Errorf("Scan = %s; want %s", scanned, orig)
	}
}

func TestUUID_ScanRejectsNonBytes(t *testing.T) {
	var u UUID
	if err := u.Scan("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"); err == nil {
		t.Fatal("expected error for string source, got nil")
	}
}
