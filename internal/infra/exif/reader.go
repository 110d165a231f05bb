package exif

import (
	"context"
	"os"
	"strings"

	"e2fn/internal/domain"

	goexif "github.com/rwcarlsen/goexif/exif"
)

// Reader extracts the IFD0 DateTime field from JPEG files.
type Reader struct{}

// CaptureTime returns an absent result when the file has no usable EXIF
// block or lacks the field. Only failing to open the file is an error.
func (Reader) CaptureTime(ctx context.Context, path string) (domain.CaptureTime, error) {
	select {
	case <-ctx.Done():
		return domain.NoCaptureTime(), ctx.Err()
	default:
	}

	file, err := os.Open(path)
	if err != nil {
		return domain.NoCaptureTime(), err
	}
	defer file.Close()

	x, err := goexif.Decode(file)
	if err != nil && (x == nil || goexif.IsCriticalError(err)) {
		return domain.NoCaptureTime(), nil
	}

	tag, err := x.Get(goexif.DateTime)
	if err != nil {
		return domain.NoCaptureTime(), nil
	}
	value, err := tag.StringVal()
	if err != nil {
		return domain.NoCaptureTime(), nil
	}

	return domain.Captured(strings.Trim(value, "\x00 ")), nil
}
