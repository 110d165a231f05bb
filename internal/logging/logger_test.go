package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestZeroLoggerIsSilent(t *testing.T) {
	var l Logger
	l.Infof("hello %d", 1)
	l.Verbosef("hello %d", 2)
	l.Measure("noop")()
}

func TestVerbosefRespectsFlag(t *testing.T) {
	var buf bytes.Buffer
	quiet := New(&buf, Options{})
	quiet.Verbosef("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	loud := New(&buf, Options{Verbose: true})
	loud.Verbosef("shown %s", "value")
	if !strings.Contains(buf.String(), "shown value") {
		t.Fatalf("expected verbose line, got %q", buf.String())
	}
}

func TestFileCopyAsJSON(t *testing.T) {
	var console, file bytes.Buffer
	l := New(&console, Options{File: &file, JSON: true})
	l.Infof("copied %s", "a.jpg")

	if !strings.Contains(console.String(), "copied a.jpg") {
		t.Fatalf("expected console line, got %q", console.String())
	}
	if !strings.Contains(file.String(), `"message":"copied a.jpg"`) {
		t.Fatalf("expected JSON line, got %q", file.String())
	}
}
