package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Logger provides optional verbose logging and lightweight timing helpers
// on top of zerolog. The zero value discards everything.
type Logger struct {
	log     *zerolog.Logger
	Verbose bool
}

type Options struct {
	Verbose bool
	// File receives a copy of every event when set.
	File io.Writer
	// JSON writes the file copy as JSON lines instead of console text.
	JSON bool
}

// New builds a logger writing human readable events to writer.
func New(writer io.Writer, opts Options) Logger {
	console := zerolog.ConsoleWriter{Out: writer, TimeFormat: time.TimeOnly}

	var out io.Writer = console
	if opts.File != nil {
		var fileOut io.Writer = zerolog.ConsoleWriter{Out: opts.File, NoColor: true, TimeFormat: time.DateTime}
		if opts.JSON {
			fileOut = opts.File
		}
		out = zerolog.MultiLevelWriter(console, fileOut)
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	zl := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return Logger{log: &zl, Verbose: opts.Verbose}
}

func (l Logger) Infof(format string, args ...any) {
	if l.log == nil {
		return
	}
	l.log.Info().Msgf(format, args...)
}

func (l Logger) Warnf(format string, args ...any) {
	if l.log == nil {
		return
	}
	l.log.Warn().Msgf(format, args...)
}

func (l Logger) Verbosef(format string, args ...any) {
	if !l.Verbose || l.log == nil {
		return
	}
	l.log.Debug().Msgf(format, args...)
}

// Measure returns a stop function that logs the elapsed time when called.
func (l Logger) Measure(label string) func() {
	if !l.Verbose || l.log == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		elapsed := time.Since(start).Round(time.Millisecond)
		l.log.Debug().Str("took", elapsed.String()).Msg(label)
	}
}
