package domain

import (
	"testing"
	"time"
)

func TestIsImageName(t *testing.T) {
	tests := []struct {
		name     string
		foldCase bool
		want     bool
	}{
		{"a.jpg", false, true},
		{"a.jpeg", false, true},
		{"a.JPG", false, false},
		{"a.JPG", true, true},
		{"a.Jpeg", true, true},
		{"a.png", true, false},
		{"jpg", false, false},
		{"a.jpg.txt", false, false},
	}

	for _, tt := range tests {
		if got := IsImageName(tt.name, tt.foldCase); got != tt.want {
			t.Errorf("IsImageName(%q, %v) = %v; want %v", tt.name, tt.foldCase, got, tt.want)
		}
	}
}

func TestCaptureTimeParse(t *testing.T) {
	got, err := Captured("2020:05:01 10:00:00").Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2020, 5, 1, 10, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, err := Captured("2020-05-01 10:00:00").Parse(); err == nil {
		t.Fatalf("expected error for dashed date")
	}
}

func TestNewImageEntry(t *testing.T) {
	entry := NewImageEntry("/photos/IMG_0001.jpeg")
	if entry.Name != "IMG_0001.jpeg" || entry.Ext != ".jpeg" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}
