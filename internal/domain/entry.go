package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// CaptureTimeLayout is the textual layout of the EXIF DateTime field.
const CaptureTimeLayout = "2006:01:02 15:04:05"

type ImageEntry struct {
	Path string
	Name string
	Ext  string
}

func NewImageEntry(path string) ImageEntry {
	name := filepath.Base(path)
	return ImageEntry{
		Path: path,
		Name: name,
		Ext:  filepath.Ext(name),
	}
}

// CaptureTime is the outcome of a metadata lookup. Value holds the raw tag
// text and is only meaningful when Present is true.
type CaptureTime struct {
	Value   string
	Present bool
}

func Captured(value string) CaptureTime {
	return CaptureTime{Value: value, Present: true}
}

func NoCaptureTime() CaptureTime {
	return CaptureTime{}
}

// Parse interprets the raw value using CaptureTimeLayout.
func (c CaptureTime) Parse() (time.Time, error) {
	return time.ParseInLocation(CaptureTimeLayout, c.Value, time.Local)
}

// IsImageName reports whether name carries a .jpg or .jpeg extension. The
// comparison is exact unless foldCase is set.
func IsImageName(name string, foldCase bool) bool {
	ext := filepath.Ext(name)
	if foldCase {
		ext = strings.ToLower(ext)
	}
	switch ext {
	case ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}
