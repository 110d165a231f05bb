// Package naming turns capture timestamps into destination file names.
package naming

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
)

var (
	ErrEmptyPattern = errors.New("format must not be empty")
	ErrEmptyStem    = errors.New("format renders an empty file name")
	ErrPathInStem   = errors.New("format renders a path separator")
)

// probeTime is used to check what a pattern renders to before any file is seen.
var probeTime = time.Date(2006, time.January, 2, 15, 4, 5, 0, time.UTC)

type Formatter struct {
	raw     string
	pattern *strftime.Strftime
}

// NewFormatter compiles a strftime pattern such as "%Y%m%d_%H%M%S".
// Besides the POSIX verbs, %f renders zero-padded microseconds and %s
// the Unix time in seconds.
func NewFormatter(pattern string) (*Formatter, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, ErrEmptyPattern
	}
	compiled, err := strftime.New(pattern,
		strftime.WithMicroseconds('f'),
		strftime.WithUnixSeconds('s'),
	)
	if err != nil {
		return nil, fmt.Errorf("compile format %q: %w", pattern, err)
	}

	stem := compiled.FormatString(probeTime)
	if strings.TrimSpace(stem) == "" {
		return nil, ErrEmptyStem
	}
	if strings.ContainsAny(stem, `/\`) {
		return nil, ErrPathInStem
	}
	return &Formatter{raw: pattern, pattern: compiled}, nil
}

func (f *Formatter) Pattern() string {
	return f.raw
}

func (f *Formatter) Stem(t time.Time) string {
	return f.pattern.FormatString(t)
}

// Candidate returns the n-th name to try for stem. The first try (n == 0)
// is the bare stem; later ones carry a two-digit suffix starting at _01.
func Candidate(stem, ext string, n int) string {
	if n == 0 {
		return stem + ext
	}
	return fmt.Sprintf("%s_%02d%s", stem, n, ext)
}
