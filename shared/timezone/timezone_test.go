package timezone_test

import (
	"testing"
	"time"

	"guesthouse/shared/timezone"
)

func TestNow(t *testing.T) {
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}
}

func TestToAppTime(t *testing.T) {
	utcTime := time.Now().UTC()
	appTime := timezone.ToAppTime(utcTime)

	if appTime.Location() == nil {
		t.Error("expected converted time to have a location")
	}

	if !appTime.Equal(utcTime) {
		t.Error("expected conversion to preserve the instant")
	}
}

func TestFormat(t *testing.T) {
	testTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	formatted := timezone.Format(testTime, "2006-01-02 15:04:05")
	if formatted == "" {
		t.Error("Format() returned empty string")
	}

	if zero := timezone.Format(time.Time{}, "2006-01-02"); zero != "" {
		t.Errorf("expected empty string for zero time, got %s", zero)
	}
}
