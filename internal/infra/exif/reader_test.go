package exif

import (
	"context"
	"path/filepath"
	"testing"

	"e2fn/internal/testutil"
)

func TestCaptureTimeReadsDateTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jpg")
	testutil.WriteFile(t, path, testutil.JPEGWithDateTime("2020:05:01 10:00:00"))

	got, err := Reader{}.CaptureTime(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Present || got.Value != "2020:05:01 10:00:00" {
		t.Fatalf("unexpected capture time: %+v", got)
	}
}

func TestCaptureTimeReadsTIFF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jpg")
	testutil.WriteFile(t, path, testutil.TIFFWithASCIITag(testutil.DateTimeTag, "2021:01:02 03:04:05"))

	got, err := Reader{}.CaptureTime(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Present || got.Value != "2021:01:02 03:04:05" {
		t.Fatalf("unexpected capture time: %+v", got)
	}
}

func TestCaptureTimeAbsent(t *testing.T) {
	dir := t.TempDir()
	tests := map[string][]byte{
		"plain.jpg":    testutil.PlainJPEG(),
		"garbage.jpg":  []byte("not-a-real-jpeg-with-exif"),
		"empty.jpg":    {},
		"otherTag.jpg": testutil.JPEGWithTag(0x010F, "Canon"),
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			testutil.WriteFile(t, path, data)

			got, err := Reader{}.CaptureTime(context.Background(), path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Present {
				t.Fatalf("expected absent capture time, got %+v", got)
			}
		})
	}
}

func TestCaptureTimeMalformedValueIsPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jpg")
	testutil.WriteFile(t, path, testutil.JPEGWithDateTime("yesterday"))

	got, err := Reader{}.CaptureTime(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Present || got.Value != "yesterday" {
		t.Fatalf("unexpected capture time: %+v", got)
	}
	if _, err := got.Parse(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestCaptureTimeMissingFile(t *testing.T) {
	_, err := Reader{}.CaptureTime(context.Background(), filepath.Join(t.TempDir(), "missing.jpg"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestCaptureTimeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Reader{}).CaptureTime(ctx, "unused.jpg"); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
